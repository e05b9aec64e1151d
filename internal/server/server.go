package server

import (
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/labstack/echo/v4"
)

// Echoを組み立てて起動する
func Start(addr string, deps Deps) error {
	e := New(deps)
	return e.Start(addr)
}

// テストから routes だけ組みたいので分ける
func New(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	RegisterRoutes(e, deps)
	return e
}
