package handler

import (
	"net/http"

	"github.com/LamineSayad1/agriconnect/internal/middleware"
	"github.com/LamineSayad1/agriconnect/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// usecaseのHTTPErrorをレスポンスへ
func writeError(c echo.Context, err error) error {
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func getUserIDFromContext(c echo.Context) (string, bool) {
	v, ok := c.Get(middleware.CtxUserIDKey).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
