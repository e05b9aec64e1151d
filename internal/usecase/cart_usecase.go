package usecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/LamineSayad1/agriconnect/internal/cart"
	"github.com/LamineSayad1/agriconnect/internal/domain/model"
	repo "github.com/LamineSayad1/agriconnect/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジック。
// 保存は CartStore（Redis）、商品と在庫の確認はDB。
type CartUsecase struct {
	store       CartStore
	productRepo repo.ProductRepository
}

func NewCartUsecase(store CartStore, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{
		store:       store,
		productRepo: productRepo,
	}
}

type CartResponse struct {
	Items []model.CartItem `json:"items"`
	Total decimal.Decimal  `json:"total"`
}

type AddCartInput struct {
	ProductID string
	Quantity  int64
}

func (u *CartUsecase) GetCart(ctx context.Context, buyerID string) (CartResponse, error) {
	if buyerID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.store.Items(ctx, buyerID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "cart error")
	}
	return CartResponse{Items: items, Total: cart.Total(items)}, nil
}

// AddToCart はカートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, buyerID string, in AddCartInput) (CartResponse, error) {
	if buyerID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	//商品チェック（公開のみ）
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsAvailable {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}

	//自分の商品はカートに入れられない（チェックアウトでも弾くが早めに返す）
	if p.SellerID == buyerID {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "self purchase not allowed")
	}

	//既存数量＋追加分が在庫を超えないか
	items, err := u.store.Items(ctx, buyerID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "cart error")
	}

	var existingQty int64 = 0
	for _, it := range items {
		if it.ProductID == in.ProductID {
			existingQty = it.Quantity
			break
		}
	}
	if existingQty+in.Quantity > p.Stock {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "stock exceeded")
	}

	//unit_price は「追加時点の価格」を保存する
	newItems, err := u.store.Add(ctx, buyerID, model.CartItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		SellerID:    p.SellerID,
		Category:    p.Category,
		UnitPrice:   p.Price,
		Quantity:    in.Quantity,
	})
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "cart error")
	}

	return CartResponse{Items: newItems, Total: cart.Total(newItems)}, nil
}

// 数量変更（1未満は拒否、在庫チェックあり）。
func (u *CartUsecase) UpdateQuantity(ctx context.Context, buyerID string, productID string, qty int64) (CartResponse, error) {
	if buyerID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if qty < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsAvailable {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}
	if qty > p.Stock {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "stock exceeded")
	}

	items, err := u.store.SetQuantity(ctx, buyerID, productID, qty)
	if errors.Is(err, cart.ErrItemNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if errors.Is(err, cart.ErrInvalidQuantity) {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "cart error")
	}

	return CartResponse{Items: items, Total: cart.Total(items)}, nil
}

// 明細削除
func (u *CartUsecase) RemoveItem(ctx context.Context, buyerID string, productID string) (CartResponse, error) {
	if buyerID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	items, err := u.store.Remove(ctx, buyerID, productID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "cart error")
	}
	return CartResponse{Items: items, Total: cart.Total(items)}, nil
}

func (u *CartUsecase) ClearCart(ctx context.Context, buyerID string) error {
	if buyerID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := u.store.Clear(ctx, buyerID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "cart error")
	}
	return nil
}
