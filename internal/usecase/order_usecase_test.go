package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/LamineSayad1/agriconnect/internal/domain/model"
	"github.com/LamineSayad1/agriconnect/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func pendingOrder(id, buyer, seller string) model.Order {
	return model.Order{
		ID:          id,
		BuyerID:     buyer,
		SellerID:    seller,
		Status:      model.OrderStatusPending,
		TotalAmount: decimal.RequireFromString("10.00"),
		CreatedAt:   testNow,
	}
}

// =====================
// 一覧・詳細
// =====================

func TestListMyOrders_Success(t *testing.T) {
	ctx := context.Background()
	tx := newFakeTxManager()
	uc := usecase.NewOrderUsecase(tx)

	orders := []model.Order{pendingOrder("o-1", buyerID, sellerA)}
	tx.repos.orders.On("ListByBuyerID", mock.Anything, buyerID, 1, 50).Return(orders, int64(1), nil)
	tx.repos.orderItems.On("ListByOrderID", mock.Anything, "o-1").Return([]model.OrderItem{}, nil)

	outs, err := uc.ListMyOrders(ctx, buyerID)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(outs))
	assert.Equal(t, "o-1", outs[0].ID)
}

func TestGetOrderDetail_NotFoundForStranger(t *testing.T) {
	ctx := context.Background()
	tx := newFakeTxManager()
	uc := usecase.NewOrderUsecase(tx)

	tx.repos.orders.On("FindByID", mock.Anything, "o-1").Return(pendingOrder("o-1", buyerID, sellerA), nil)

	//当事者でないユーザーには存在しない扱い
	_, err := uc.GetOrderDetail(ctx, "someone-else", "o-1")
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestGetOrderDetail_VisibleToSeller(t *testing.T) {
	ctx := context.Background()
	tx := newFakeTxManager()
	uc := usecase.NewOrderUsecase(tx)

	tx.repos.orders.On("FindByID", mock.Anything, "o-1").Return(pendingOrder("o-1", buyerID, sellerA), nil)
	tx.repos.orderItems.On("ListByOrderID", mock.Anything, "o-1").Return([]model.OrderItem{}, nil)

	out, err := uc.GetOrderDetail(ctx, sellerA, "o-1")
	assert.NoError(t, err)
	assert.Equal(t, "o-1", out.ID)
}

// =====================
// ステータス遷移
// =====================

func TestUpdateStatus_PendingToShipped(t *testing.T) {
	ctx := context.Background()
	tx := newFakeTxManager()
	uc := usecase.NewOrderUsecase(tx)

	tx.repos.orders.On("FindByID", mock.Anything, "o-1").Return(pendingOrder("o-1", buyerID, sellerA), nil)
	tx.repos.orderItems.On("ListByOrderID", mock.Anything, "o-1").Return([]model.OrderItem{}, nil)
	tx.repos.orders.On("UpdateStatus", mock.Anything, "o-1", model.OrderStatusShipped).Return(nil)

	out, err := uc.UpdateStatus(ctx, sellerA, "o-1", usecase.UpdateOrderStatusInput{Status: "shipped"})
	assert.NoError(t, err)
	assert.Equal(t, string(model.OrderStatusShipped), out.Status)
}

func TestUpdateStatus_InvalidTransitionRejected(t *testing.T) {
	ctx := context.Background()
	tx := newFakeTxManager()
	uc := usecase.NewOrderUsecase(tx)

	//pending -> delivered は飛ばせない
	tx.repos.orders.On("FindByID", mock.Anything, "o-1").Return(pendingOrder("o-1", buyerID, sellerA), nil)

	_, err := uc.UpdateStatus(ctx, sellerA, "o-1", usecase.UpdateOrderStatusInput{Status: "delivered"})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	tx.repos.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_TerminalStateRejected(t *testing.T) {
	ctx := context.Background()
	tx := newFakeTxManager()
	uc := usecase.NewOrderUsecase(tx)

	o := pendingOrder("o-1", buyerID, sellerA)
	o.Status = model.OrderStatusDelivered
	tx.repos.orders.On("FindByID", mock.Anything, "o-1").Return(o, nil)

	_, err := uc.UpdateStatus(ctx, sellerA, "o-1", usecase.UpdateOrderStatusInput{Status: "cancelled"})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestUpdateStatus_UnknownStatusRejected(t *testing.T) {
	uc := usecase.NewOrderUsecase(newFakeTxManager())

	_, err := uc.UpdateStatus(context.Background(), sellerA, "o-1", usecase.UpdateOrderStatusInput{Status: "SHIPPED!!"})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

// 他人の注文は404（存在の漏えいを防ぐ）
func TestUpdateStatus_OtherSellersOrderNotFound(t *testing.T) {
	ctx := context.Background()
	tx := newFakeTxManager()
	uc := usecase.NewOrderUsecase(tx)

	tx.repos.orders.On("FindByID", mock.Anything, "o-1").Return(pendingOrder("o-1", buyerID, sellerA), nil)

	_, err := uc.UpdateStatus(ctx, sellerB, "o-1", usecase.UpdateOrderStatusInput{Status: "shipped"})
	assertHTTPStatus(t, err, http.StatusNotFound)
}

// 同じステータスへの再送は何も書かずに現状を返す
func TestUpdateStatus_SameStatusIsNoop(t *testing.T) {
	ctx := context.Background()
	tx := newFakeTxManager()
	uc := usecase.NewOrderUsecase(tx)

	tx.repos.orders.On("FindByID", mock.Anything, "o-1").Return(pendingOrder("o-1", buyerID, sellerA), nil)
	tx.repos.orderItems.On("ListByOrderID", mock.Anything, "o-1").Return([]model.OrderItem{}, nil)

	out, err := uc.UpdateStatus(ctx, sellerA, "o-1", usecase.UpdateOrderStatusInput{Status: "pending"})
	assert.NoError(t, err)
	assert.Equal(t, string(model.OrderStatusPending), out.Status)

	tx.repos.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

// キャンセルは明細ぶんの在庫を同一トランザクションで戻す
func TestUpdateStatus_CancelRestoresStock(t *testing.T) {
	ctx := context.Background()
	tx := newFakeTxManager()
	uc := usecase.NewOrderUsecase(tx)

	items := []model.OrderItem{
		{ProductID: prodTea, Quantity: 3},
		{ProductID: prodRice, Quantity: 1},
	}

	tx.repos.orders.On("FindByID", mock.Anything, "o-1").Return(pendingOrder("o-1", buyerID, sellerA), nil)
	tx.repos.orderItems.On("ListByOrderID", mock.Anything, "o-1").Return(items, nil)
	tx.repos.inventory.On("IncreaseStock", mock.Anything, prodTea, int64(3)).Return(nil)
	tx.repos.inventory.On("IncreaseStock", mock.Anything, prodRice, int64(1)).Return(nil)
	tx.repos.orders.On("UpdateStatus", mock.Anything, "o-1", model.OrderStatusCancelled).Return(nil)

	out, err := uc.UpdateStatus(ctx, sellerA, "o-1", usecase.UpdateOrderStatusInput{Status: "cancelled"})
	assert.NoError(t, err)
	assert.Equal(t, string(model.OrderStatusCancelled), out.Status)

	tx.repos.inventory.AssertExpectations(t)
}

// shipped以降のキャンセルは在庫を戻さず拒否
func TestUpdateStatus_CancelAfterShipRejected(t *testing.T) {
	ctx := context.Background()
	tx := newFakeTxManager()
	uc := usecase.NewOrderUsecase(tx)

	o := pendingOrder("o-1", buyerID, sellerA)
	o.Status = model.OrderStatusShipped
	tx.repos.orders.On("FindByID", mock.Anything, "o-1").Return(o, nil)

	_, err := uc.UpdateStatus(ctx, sellerA, "o-1", usecase.UpdateOrderStatusInput{Status: "cancelled"})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	tx.repos.inventory.AssertNotCalled(t, "IncreaseStock", mock.Anything, mock.Anything, mock.Anything)
}
