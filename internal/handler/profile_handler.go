package handler

import (
	"net/http"

	"github.com/LamineSayad1/agriconnect/internal/config"
	"github.com/LamineSayad1/agriconnect/internal/middleware"
	"github.com/LamineSayad1/agriconnect/internal/usecase"

	"github.com/labstack/echo/v4"
)

// プロフィールのHTTP
type ProfileHandler struct {
	uc *usecase.ProfileUsecase
}

// DI
func NewProfileHandler(uc *usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

type UpdateProfileRequest struct {
	FullName        string `json:"full_name"`
	FarmName        string `json:"farm_name"`
	FarmDescription string `json:"farm_description"`
	FarmLocation    string `json:"farm_location"`
	Phone           string `json:"phone"`
	AvatarURL       string `json:"avatar_url"`
	ShippingAddress string `json:"shipping_address"`
}

func (h *ProfileHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/me")
	g.Use(middleware.AuthJWT(cfg))
	g.GET("", h.getMe)
	g.PUT("", h.updateMe)

	// 販売者の公開ページ
	e.GET("/sellers/:id", h.getSellerProfile)
}

func (h *ProfileHandler) getMe(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	p, err := h.uc.GetMe(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) updateMe(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.uc.UpdateMe(c.Request().Context(), userID, usecase.UpdateProfileInput{
		FullName:        req.FullName,
		FarmName:        req.FarmName,
		FarmDescription: req.FarmDescription,
		FarmLocation:    req.FarmLocation,
		Phone:           req.Phone,
		AvatarURL:       req.AvatarURL,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) getSellerProfile(c echo.Context) error {
	out, err := h.uc.GetSellerProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
