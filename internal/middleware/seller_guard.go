package middleware

import (
	"net/http"

	"github.com/LamineSayad1/agriconnect/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// 出品・受注系のエンドポイントは farmer / supplier のみ。
// AuthJWT の後に使う。
func RequireSeller() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userType, ok := c.Get(CtxUserTypeKey).(string)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			if !model.UserType(userType).IsSeller() {
				return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
			}
			return next(c)
		}
	}
}
