package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/LamineSayad1/agriconnect/internal/domain/model"
	repo "github.com/LamineSayad1/agriconnect/internal/repository"

	"github.com/shopspring/decimal"
)

// グループ失敗の理由コード
const (
	ReasonValidation        = "VALIDATION_ERROR"
	ReasonInsufficientStock = "INSUFFICIENT_STOCK"
	ReasonSelfPurchase      = "SELF_PURCHASE_NOT_ALLOWED"
	ReasonDependency        = "DEPENDENCY_FAILURE"
)

var (
	errInsufficientStock = errors.New("insufficient stock")
	errInvalidProduct    = errors.New("invalid product")
	errDependency        = errors.New("dependency failure")
)

// カートの永続化（Redis実装は internal/cart）
type CartStore interface {
	Items(ctx context.Context, buyerID string) ([]model.CartItem, error)
	Add(ctx context.Context, buyerID string, item model.CartItem) ([]model.CartItem, error)
	SetQuantity(ctx context.Context, buyerID string, productID string, qty int64) ([]model.CartItem, error)
	Remove(ctx context.Context, buyerID string, productID string) ([]model.CartItem, error)
	RemoveSellers(ctx context.Context, buyerID string, sellerIDs []string) error
	Clear(ctx context.Context, buyerID string) error
}

// 購入明細の入力（1行＝1商品）
type PurchaseLine struct {
	ProductID string
	SellerID  string
	Quantity  int64
	UnitPrice decimal.Decimal
}

type FailedGroup struct {
	SellerID string `json:"seller_id"`
	Reason   string `json:"reason"`
}

type CheckoutOutput struct {
	Committed []OrderOutput `json:"committed"`
	Failed    []FailedGroup `json:"failed"`
}

func (o CheckoutOutput) AllCommitted() bool {
	return len(o.Failed) == 0 && len(o.Committed) > 0
}

type OrderItemOutput struct {
	ProductID  string          `json:"product_id"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int64           `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type OrderOutput struct {
	ID          string            `json:"id"`
	BuyerID     string            `json:"buyer_id"`
	SellerID    string            `json:"seller_id"`
	Status      string            `json:"status"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	CreatedAt   time.Time         `json:"created_at"`
	Items       []OrderItemOutput `json:"items"`
}

// CheckoutUsecase は注文確定の業務ロジック。
// 販売者ごとに1注文、在庫減算→注文→明細を1トランザクションで確定する。
type CheckoutUsecase struct {
	tx       repo.TransactionManager
	products repo.ProductRepository
	cart     CartStore
	idGen    IDGenerator
	clock    Clock
}

func NewCheckoutUsecase(
	tx repo.TransactionManager,
	products repo.ProductRepository,
	cart CartStore,
	idGen IDGenerator,
	clock Clock,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		tx:       tx,
		products: products,
		cart:     cart,
		idGen:    idGen,
		clock:    clock,
	}
}

// 販売者グループ（同じ販売者の明細のまとまり＝1注文）
type sellerGroup struct {
	SellerID string
	Lines    []PurchaseLine
}

// PlaceOrder は購入明細を販売者ごとに分けて注文を作る。
// グループは独立していて、1つの失敗は他を止めない。
// 全体の成否は Committed / Failed を見て呼び出し側が決める。
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, buyerID string, idemKey string, lines []PurchaseLine) (CheckoutOutput, error) {
	if buyerID == "" {
		return CheckoutOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	key := strings.TrimSpace(idemKey)
	if key == "" || len(key) > 255 {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "invalid idempotency_key")
	}
	if len(lines) == 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "no purchase lines")
	}

	//書き込み前のバリデーション（1行でも不正なら全体を拒否）
	for _, ln := range lines {
		if ln.ProductID == "" || ln.SellerID == "" {
			return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "invalid line")
		}
		if ln.Quantity < 1 {
			return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
		}
		if !ln.UnitPrice.IsPositive() {
			return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "invalid price")
		}
		//自分の商品は買えない
		if ln.SellerID == buyerID {
			return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "self purchase not allowed")
		}
	}

	out := CheckoutOutput{
		Committed: []OrderOutput{},
		Failed:    []FailedGroup{},
	}

	//販売者ごとにグループ化して、グループ単位でコミット
	for _, g := range groupBySeller(lines) {
		o, err := u.commitGroup(ctx, buyerID, key, g)
		if err != nil {
			out.Failed = append(out.Failed, FailedGroup{
				SellerID: g.SellerID,
				Reason:   reasonFor(err),
			})
			continue
		}
		out.Committed = append(out.Committed, o)
	}

	return out, nil
}

// CheckoutCart はカートの中身で PlaceOrder を実行する。
// カートは全グループ成功のときだけ空にする。部分失敗なら
// 失敗グループの明細だけ残す（リトライできるように）。
func (u *CheckoutUsecase) CheckoutCart(ctx context.Context, buyerID string, idemKey string) (CheckoutOutput, error) {
	if buyerID == "" {
		return CheckoutOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.cart.Items(ctx, buyerID)
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "cart error")
	}
	if len(items) == 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	lines := make([]PurchaseLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, PurchaseLine{
			ProductID: it.ProductID,
			SellerID:  it.SellerID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	out, err := u.PlaceOrder(ctx, buyerID, idemKey, lines)
	if err != nil {
		return CheckoutOutput{}, err
	}

	//注文は確定済みなので、カート掃除の失敗は致命傷にしない。
	//クリア前にクラッシュしても同じキーの再送は同じ注文になる。
	if len(out.Failed) == 0 {
		_ = u.cart.Clear(ctx, buyerID)
	} else if len(out.Committed) > 0 {
		committed := make([]string, 0, len(out.Committed))
		for _, o := range out.Committed {
			committed = append(committed, o.SellerID)
		}
		_ = u.cart.RemoveSellers(ctx, buyerID, committed)
	}

	return out, nil
}

// PurchaseDirect は商品詳細からの即時購入（カートを経由しない）。
func (u *CheckoutUsecase) PurchaseDirect(ctx context.Context, buyerID string, idemKey string, productID string, qty int64) (CheckoutOutput, error) {
	if buyerID == "" {
		return CheckoutOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID == "" {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if qty < 1 {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return CheckoutOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsAvailable {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}

	return u.PlaceOrder(ctx, buyerID, idemKey, []PurchaseLine{{
		ProductID: p.ID,
		SellerID:  p.SellerID,
		Quantity:  qty,
		UnitPrice: p.Price,
	}})
}

// 1グループ＝1トランザクション。
// 在庫減算→注文ヘッダ→明細の順で、どれか失敗したら全部ロールバック。
// 減算が先なので、在庫不足で注文行だけ残ることはない。
func (u *CheckoutUsecase) commitGroup(ctx context.Context, buyerID string, key string, g sellerGroup) (OrderOutput, error) {
	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//同じキーなら既存注文を返す（再送しても二重注文にならない）
		existing, found, err := r.Orders().FindByIdempotencyKey(ctx, buyerID, g.SellerID, key)
		if err != nil {
			return errDependency
		}
		if found {
			items, err := r.OrderItems().ListByOrderID(ctx, existing.ID)
			if err != nil {
				return errDependency
			}
			out = toOrderOutput(existing, items)
			return nil
		}

		now := u.clock.Now()
		total := decimal.Zero
		orderItems := make([]model.OrderItem, 0, len(g.Lines))

		for _, ln := range g.Lines {
			p, err := r.Products().FindByID(ctx, ln.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return errInvalidProduct
			}
			if err != nil {
				return errDependency
			}
			if !p.IsAvailable || p.SellerID != g.SellerID {
				return errInvalidProduct
			}

			//在庫減算（足りないなら false）
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, ln.ProductID, ln.Quantity)
			if err != nil {
				return errDependency
			}
			if !ok {
				return errInsufficientStock
			}

			//スナップショット（入力の単価＝カート追加時点の価格を記録する）
			lineTotal := ln.UnitPrice.Mul(decimal.NewFromInt(ln.Quantity))
			orderItems = append(orderItems, model.OrderItem{
				ID:                  u.idGen.NewID(),
				ProductID:           ln.ProductID,
				ProductNameSnapshot: p.Name,
				UnitPriceSnapshot:   ln.UnitPrice,
				Quantity:            ln.Quantity,
				TotalPrice:          lineTotal,
				CreatedAt:           now,
			})
			total = total.Add(lineTotal)
		}

		order := model.Order{
			ID:             u.idGen.NewID(),
			BuyerID:        buyerID,
			SellerID:       g.SellerID,
			Status:         model.OrderStatusPending,
			TotalAmount:    total,
			IdempotencyKey: key,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := r.Orders().Create(ctx, order); err != nil {
			return errDependency
		}
		if err := r.OrderItems().CreateBulk(ctx, order.ID, orderItems); err != nil {
			return errDependency
		}

		out = toOrderOutput(order, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 入力順を保ったまま販売者ごとに分ける
func groupBySeller(lines []PurchaseLine) []sellerGroup {
	index := make(map[string]int, len(lines))
	groups := make([]sellerGroup, 0, len(lines))

	for _, ln := range lines {
		i, ok := index[ln.SellerID]
		if !ok {
			i = len(groups)
			index[ln.SellerID] = i
			groups = append(groups, sellerGroup{SellerID: ln.SellerID})
		}
		groups[i].Lines = append(groups[i].Lines, ln)
	}
	return groups
}

func reasonFor(err error) string {
	switch {
	case errors.Is(err, errInsufficientStock):
		return ReasonInsufficientStock
	case errors.Is(err, errInvalidProduct):
		return ReasonValidation
	default:
		return ReasonDependency
	}
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID:  it.ProductID,
			Name:       it.ProductNameSnapshot,
			UnitPrice:  it.UnitPriceSnapshot,
			Quantity:   it.Quantity,
			TotalPrice: it.TotalPrice,
		})
	}

	return OrderOutput{
		ID:          o.ID,
		BuyerID:     o.BuyerID,
		SellerID:    o.SellerID,
		Status:      string(o.Status),
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt,
		Items:       outItems,
	}
}
