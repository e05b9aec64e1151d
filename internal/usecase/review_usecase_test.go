package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/LamineSayad1/agriconnect/internal/domain/model"
	"github.com/LamineSayad1/agriconnect/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newReviewUC(tx *fakeTxManager) *usecase.ReviewUsecase {
	return usecase.NewReviewUsecase(tx, &seqIDGen{}, &fixedClock{t: testNow})
}

func deliveredOrder(id, buyer, seller string) model.Order {
	o := pendingOrder(id, buyer, seller)
	o.Status = model.OrderStatusDelivered
	return o
}

func TestCreateReview_SuccessUpdatesRating(t *testing.T) {
	ctx := context.Background()
	tx := newFakeTxManager()
	uc := newReviewUC(tx)

	tx.repos.orders.On("FindByID", mock.Anything, "o-1").Return(deliveredOrder("o-1", buyerID, sellerA), nil)
	tx.repos.orderItems.On("ListByOrderID", mock.Anything, "o-1").Return([]model.OrderItem{{ProductID: prodTea, Quantity: 1}}, nil)
	tx.repos.reviews.On("ExistsByOrderID", mock.Anything, "o-1").Return(false, nil)
	tx.repos.reviews.On("Create", mock.Anything, mock.Anything).Return(nil)

	p := availableProduct(prodTea, sellerA, "Tea", "3.00")
	p.Rating = 4.0
	p.ReviewCount = 1
	tx.repos.products.On("FindByID", mock.Anything, prodTea).Return(p, nil)

	// (4.0*1 + 2) / 2 = 3.0
	tx.repos.products.On("UpdateRating", mock.Anything, prodTea, 3.0, int64(2)).Return(nil)

	review, err := uc.CreateReview(ctx, buyerID, usecase.CreateReviewInput{
		OrderID:   "o-1",
		ProductID: prodTea,
		Rating:    2,
		Comment:   " good ",
	})
	assert.NoError(t, err)
	assert.Equal(t, "good", review.Comment)
	assert.Equal(t, 2, review.Rating)

	tx.repos.products.AssertExpectations(t)
}

func TestCreateReview_RejectedWhenNotDelivered(t *testing.T) {
	ctx := context.Background()
	tx := newFakeTxManager()
	uc := newReviewUC(tx)

	tx.repos.orders.On("FindByID", mock.Anything, "o-1").Return(pendingOrder("o-1", buyerID, sellerA), nil)

	_, err := uc.CreateReview(ctx, buyerID, usecase.CreateReviewInput{OrderID: "o-1", ProductID: prodTea, Rating: 5})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	tx.repos.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReview_NotFoundForOthersOrder(t *testing.T) {
	ctx := context.Background()
	tx := newFakeTxManager()
	uc := newReviewUC(tx)

	tx.repos.orders.On("FindByID", mock.Anything, "o-1").Return(deliveredOrder("o-1", "other-buyer", sellerA), nil)

	_, err := uc.CreateReview(ctx, buyerID, usecase.CreateReviewInput{OrderID: "o-1", ProductID: prodTea, Rating: 5})
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestCreateReview_DuplicateConflict(t *testing.T) {
	ctx := context.Background()
	tx := newFakeTxManager()
	uc := newReviewUC(tx)

	tx.repos.orders.On("FindByID", mock.Anything, "o-1").Return(deliveredOrder("o-1", buyerID, sellerA), nil)
	tx.repos.orderItems.On("ListByOrderID", mock.Anything, "o-1").Return([]model.OrderItem{{ProductID: prodTea, Quantity: 1}}, nil)
	tx.repos.reviews.On("ExistsByOrderID", mock.Anything, "o-1").Return(true, nil)

	_, err := uc.CreateReview(ctx, buyerID, usecase.CreateReviewInput{OrderID: "o-1", ProductID: prodTea, Rating: 5})
	assertHTTPStatus(t, err, http.StatusConflict)

	tx.repos.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReview_ProductNotInOrder(t *testing.T) {
	ctx := context.Background()
	tx := newFakeTxManager()
	uc := newReviewUC(tx)

	tx.repos.orders.On("FindByID", mock.Anything, "o-1").Return(deliveredOrder("o-1", buyerID, sellerA), nil)
	tx.repos.orderItems.On("ListByOrderID", mock.Anything, "o-1").Return([]model.OrderItem{{ProductID: prodRice, Quantity: 1}}, nil)

	_, err := uc.CreateReview(ctx, buyerID, usecase.CreateReviewInput{OrderID: "o-1", ProductID: prodTea, Rating: 5})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestCreateReview_RatingOutOfRange(t *testing.T) {
	uc := newReviewUC(newFakeTxManager())

	_, err := uc.CreateReview(context.Background(), buyerID, usecase.CreateReviewInput{OrderID: "o-1", ProductID: prodTea, Rating: 6})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}
