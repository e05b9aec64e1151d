package server

import (
	"net/http"

	"github.com/LamineSayad1/agriconnect/internal/config"
	"github.com/LamineSayad1/agriconnect/internal/handler"

	"github.com/labstack/echo/v4"
)

// ルート登録に必要なもの一式
type Deps struct {
	Cfg     config.Config
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	Cart    *handler.CartHandler
	Order   *handler.OrderHandler
	Review  *handler.ReviewHandler
	Profile *handler.ProfileHandler
}

func RegisterRoutes(e *echo.Echo, deps Deps) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	deps.Auth.RegisterRoutes(e)
	deps.Product.RegisterRoutes(e, deps.Cfg)
	deps.Cart.RegisterRoutes(e, deps.Cfg)
	deps.Order.RegisterRoutes(e, deps.Cfg)
	deps.Review.RegisterRoutes(e, deps.Cfg)
	deps.Profile.RegisterRoutes(e, deps.Cfg)
}
