package handler

import (
	"net/http"

	"github.com/LamineSayad1/agriconnect/internal/config"
	"github.com/LamineSayad1/agriconnect/internal/middleware"
	"github.com/LamineSayad1/agriconnect/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /ordersと/seller/ordersのHTTP
type OrderHandler struct {
	checkout *usecase.CheckoutUsecase
	orders   *usecase.OrderUsecase
}

// DI
func NewOrderHandler(checkout *usecase.CheckoutUsecase, orders *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{checkout: checkout, orders: orders}
}

type DirectPurchaseRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("", h.checkoutCart)
	g.POST("/direct", h.purchaseDirect)
	g.GET("", h.listMyOrders)
	g.GET("/:id", h.getOrderDetail)

	s := e.Group("/seller/orders")
	s.Use(middleware.AuthJWT(cfg), middleware.RequireSeller())

	s.GET("", h.listSellerOrders)
	s.PATCH("/:id/status", h.updateStatus)
}

// カートから一括購入。販売者ごとに注文を分けてコミットする。
// 全部通れば201、部分成功は207、1件も通らなければ409。
func (h *OrderHandler) checkoutCart(c echo.Context) error {
	buyerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	idemKey := c.Request().Header.Get("X-Idempotency-Key")

	out, err := h.checkout.CheckoutCart(c.Request().Context(), buyerID, idemKey)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(checkoutStatus(out), out)
}

// カートを通さない即時購入
func (h *OrderHandler) purchaseDirect(c echo.Context) error {
	buyerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req DirectPurchaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	idemKey := c.Request().Header.Get("X-Idempotency-Key")

	out, err := h.checkout.PurchaseDirect(c.Request().Context(), buyerID, idemKey, req.ProductID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(checkoutStatus(out), out)
}

func checkoutStatus(out usecase.CheckoutOutput) int {
	switch {
	case out.AllCommitted():
		return http.StatusCreated
	case len(out.Committed) > 0:
		return http.StatusMultiStatus
	default:
		return http.StatusConflict
	}
}

func (h *OrderHandler) listMyOrders(c echo.Context) error {
	buyerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	outs, err := h.orders.ListMyOrders(c.Request().Context(), buyerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, outs)
}

func (h *OrderHandler) getOrderDetail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.orders.GetOrderDetail(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) listSellerOrders(c echo.Context) error {
	sellerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	outs, err := h.orders.ListSellerOrders(c.Request().Context(), sellerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, outs)
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	sellerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.orders.UpdateStatus(c.Request().Context(), sellerID, c.Param("id"), usecase.UpdateOrderStatusInput{
		Status: req.Status,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
