package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/LamineSayad1/agriconnect/internal/domain/model"
	repo "github.com/LamineSayad1/agriconnect/internal/repository"
)

type ReviewUsecase struct {
	tx    repo.TransactionManager
	idGen IDGenerator
	clock Clock
}

func NewReviewUsecase(tx repo.TransactionManager, idGen IDGenerator, clock Clock) *ReviewUsecase {
	return &ReviewUsecase{tx: tx, idGen: idGen, clock: clock}
}

type CreateReviewInput struct {
	OrderID   string
	ProductID string
	Rating    int
	Comment   string
}

// レビュー投稿。
// 自分の配達済み（delivered）注文に対して1件だけ。
// 商品の rating / review_count も同じトランザクションで更新する。
func (u *ReviewUsecase) CreateReview(ctx context.Context, buyerID string, in CreateReviewInput) (model.Review, error) {
	if buyerID == "" {
		return model.Review{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.OrderID == "" || in.ProductID == "" {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "rating must be 1-5")
	}

	var created model.Review

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, in.OrderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.BuyerID != buyerID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if o.Status != model.OrderStatusDelivered {
			return NewHTTPError(http.StatusBadRequest, "order not delivered")
		}

		//注文に商品が含まれているか
		items, err := r.OrderItems().ListByOrderID(ctx, in.OrderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		inOrder := false
		for _, it := range items {
			if it.ProductID == in.ProductID {
				inOrder = true
				break
			}
		}
		if !inOrder {
			return NewHTTPError(http.StatusBadRequest, "product not in order")
		}

		//二重投稿チェック
		exists, err := r.Reviews().ExistsByOrderID(ctx, in.OrderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if exists {
			return NewHTTPError(http.StatusConflict, "already reviewed")
		}

		review := model.Review{
			ID:        u.idGen.NewID(),
			ProductID: in.ProductID,
			BuyerID:   buyerID,
			OrderID:   in.OrderID,
			Rating:    in.Rating,
			Comment:   strings.TrimSpace(in.Comment),
			CreatedAt: u.clock.Now(),
		}
		if err := r.Reviews().Create(ctx, review); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//集計更新（移動平均）
		p, err := r.Products().FindByID(ctx, in.ProductID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		newCount := p.ReviewCount + 1
		newRating := (p.Rating*float64(p.ReviewCount) + float64(in.Rating)) / float64(newCount)
		if err := r.Products().UpdateRating(ctx, in.ProductID, newRating, newCount); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created = review
		return nil
	})

	if err != nil {
		return model.Review{}, err
	}
	return created, nil
}

func (u *ReviewUsecase) ListByProduct(ctx context.Context, productID string) ([]model.Review, error) {
	if productID == "" {
		return []model.Review{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var outs []model.Review
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items, err := r.Reviews().ListByProductID(ctx, productID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		outs = items
		return nil
	})
	if err != nil {
		return []model.Review{}, err
	}
	return outs, nil
}
