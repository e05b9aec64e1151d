package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/LamineSayad1/agriconnect/internal/domain/model"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

var (
	ErrItemNotFound    = errors.New("cart item not found")
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// カートはRedisの cart:<buyerID> にJSON配列で保存する。
// チェックアウト後のクリア漏れ（クラッシュ）は再送で済む。データは失わない。
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	//30日でカートを破棄
	return &RedisStore{rdb: rdb, ttl: 30 * 24 * time.Hour}
}

func key(buyerID string) string {
	return "cart:" + buyerID
}

func (s *RedisStore) Items(ctx context.Context, buyerID string) ([]model.CartItem, error) {
	data, err := s.rdb.Get(ctx, key(buyerID)).Result()
	if errors.Is(err, redis.Nil) {
		return []model.CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []model.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *RedisStore) save(ctx context.Context, buyerID string, items []model.CartItem) error {
	if len(items) == 0 {
		return s.rdb.Del(ctx, key(buyerID)).Err()
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key(buyerID), data, s.ttl).Err()
}

// 追加（同一商品は数量加算）
func (s *RedisStore) Add(ctx context.Context, buyerID string, item model.CartItem) ([]model.CartItem, error) {
	if item.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	items, err := s.Items(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	items = mergeAdd(items, item)
	if err := s.save(ctx, buyerID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// 数量変更（1未満は拒否）
func (s *RedisStore) SetQuantity(ctx context.Context, buyerID string, productID string, qty int64) ([]model.CartItem, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}
	items, err := s.Items(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = qty
			found = true
			break
		}
	}
	if !found {
		return nil, ErrItemNotFound
	}

	if err := s.save(ctx, buyerID, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *RedisStore) Remove(ctx context.Context, buyerID string, productID string) ([]model.CartItem, error) {
	items, err := s.Items(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	items = removeProduct(items, productID)
	if err := s.save(ctx, buyerID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// コミット済み販売者グループの明細だけ落とす（部分失敗時）
func (s *RedisStore) RemoveSellers(ctx context.Context, buyerID string, sellerIDs []string) error {
	items, err := s.Items(ctx, buyerID)
	if err != nil {
		return err
	}
	return s.save(ctx, buyerID, removeSellers(items, sellerIDs))
}

func (s *RedisStore) Clear(ctx context.Context, buyerID string) error {
	return s.rdb.Del(ctx, key(buyerID)).Err()
}

// ---- 純粋ロジック（テストしやすいよう分離） ----

func mergeAdd(items []model.CartItem, item model.CartItem) []model.CartItem {
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			return items
		}
	}
	return append(items, item)
}

func removeProduct(items []model.CartItem, productID string) []model.CartItem {
	out := make([]model.CartItem, 0, len(items))
	for _, it := range items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	return out
}

func removeSellers(items []model.CartItem, sellerIDs []string) []model.CartItem {
	drop := make(map[string]struct{}, len(sellerIDs))
	for _, id := range sellerIDs {
		drop[id] = struct{}{}
	}
	out := make([]model.CartItem, 0, len(items))
	for _, it := range items {
		if _, ok := drop[it.SellerID]; !ok {
			out = append(out, it)
		}
	}
	return out
}

// 合計＝Σ(単価×数量)
func Total(items []model.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}
