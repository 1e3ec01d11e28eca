package services

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tebele-dev/tailor-made-couture/apperrors"
	"github.com/tebele-dev/tailor-made-couture/models"
	"github.com/tebele-dev/tailor-made-couture/pricing"
	"github.com/tebele-dev/tailor-made-couture/repository"
	"go.uber.org/zap"
)

const cartKeyPrefix = "tmc_cart:"

const (
	msgInvalidProductOrQuantity = "Invalid product or quantity"
	msgInvalidProductID         = "Invalid product ID"
	msgInvalidProductIDOrQty    = "Invalid product ID or quantity"
	msgProductNotInCart         = "Product not found in cart"
)

// NotifierProvider resolves the notifier for a cart owner or session.
type NotifierProvider interface {
	For(key string) Notifier
}

// CartService owns every cart, keyed by owner. Rejected calls leave the cart
// untouched and raise exactly one error notification for the owner.
type CartService interface {
	Add(ctx context.Context, owner string, product *models.Product, quantity int) error
	Remove(ctx context.Context, owner, productID string) error
	SetQuantity(ctx context.Context, owner, productID string, quantity int) error
	Clear(ctx context.Context, owner string)
	Items(ctx context.Context, owner string) []models.CartItem
	Count(ctx context.Context, owner string) int
	Total(ctx context.Context, owner string) decimal.Decimal
	View(ctx context.Context, owner string) models.CartView
}

// cartServiceImpl reads every cart through the store. unsaved holds only carts
// whose last write failed, until a later write succeeds.
type cartServiceImpl struct {
	mu            sync.Mutex
	unsaved       map[string][]models.CartItem
	store         repository.KVStore
	ttl           time.Duration
	notifications NotifierProvider
	logger        *zap.Logger
}

func NewCartService(store repository.KVStore, ttl time.Duration, notifications NotifierProvider, logger *zap.Logger) CartService {
	return &cartServiceImpl{
		unsaved:       make(map[string][]models.CartItem),
		store:         store,
		ttl:           ttl,
		notifications: notifications,
		logger:        logger,
	}
}

func cartKey(owner string) string {
	return cartKeyPrefix + owner
}

func (s *cartServiceImpl) Add(ctx context.Context, owner string, product *models.Product, quantity int) error {
	if product == nil || strings.TrimSpace(product.ID) == "" || quantity <= 0 {
		return s.reject(owner, apperrors.Validation(msgInvalidProductOrQuantity))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.loadLocked(ctx, owner)
	merged := false
	for i := range items {
		if items[i].Product.ID == product.ID {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, models.CartItem{Product: *product, Quantity: quantity})
	}
	s.commitLocked(ctx, owner, items)
	return nil
}

func (s *cartServiceImpl) Remove(ctx context.Context, owner, productID string) error {
	if strings.TrimSpace(productID) == "" {
		return s.reject(owner, apperrors.Validation(msgInvalidProductID))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.loadLocked(ctx, owner)
	kept := make([]models.CartItem, 0, len(items))
	for _, it := range items {
		if it.Product.ID != productID {
			kept = append(kept, it)
		}
	}
	s.commitLocked(ctx, owner, kept)
	return nil
}

func (s *cartServiceImpl) SetQuantity(ctx context.Context, owner, productID string, quantity int) error {
	if strings.TrimSpace(productID) == "" || quantity < 0 {
		return s.reject(owner, apperrors.Validation(msgInvalidProductIDOrQty))
	}

	s.mu.Lock()
	items := s.loadLocked(ctx, owner)
	idx := -1
	for i := range items {
		if items[i].Product.ID == productID {
			idx = i
			break
		}
	}

	switch {
	case quantity == 0:
		if idx >= 0 {
			items = append(items[:idx], items[idx+1:]...)
		}
	case idx < 0:
		s.mu.Unlock()
		return s.reject(owner, apperrors.NotFound(msgProductNotInCart))
	default:
		items[idx].Quantity = quantity
	}
	s.commitLocked(ctx, owner, items)
	s.mu.Unlock()
	return nil
}

func (s *cartServiceImpl) Clear(ctx context.Context, owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitLocked(ctx, owner, []models.CartItem{})
}

func (s *cartServiceImpl) Items(ctx context.Context, owner string) []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CartItem{}, s.loadLocked(ctx, owner)...)
}

func (s *cartServiceImpl) Count(ctx context.Context, owner string) int {
	return pricing.Count(s.Items(ctx, owner))
}

func (s *cartServiceImpl) Total(ctx context.Context, owner string) decimal.Decimal {
	return pricing.Subtotal(s.Items(ctx, owner)).Round(2)
}

func (s *cartServiceImpl) View(ctx context.Context, owner string) models.CartView {
	items := s.Items(ctx, owner)
	return models.CartView{
		Items: items,
		Count: pricing.Count(items),
		Total: pricing.Subtotal(items).Round(2),
	}
}

func (s *cartServiceImpl) reject(owner string, err *apperrors.Error) error {
	return reportError(s.notifications, owner, err)
}

// loadLocked returns the owner's cart: the unsaved copy when the last write
// failed, the stored cart otherwise.
func (s *cartServiceImpl) loadLocked(ctx context.Context, owner string) []models.CartItem {
	if items, ok := s.unsaved[owner]; ok {
		return append([]models.CartItem(nil), items...)
	}
	return s.hydrate(ctx, owner)
}

// storedCartItem mirrors CartItem loosely so malformed entries can be detected.
type storedCartItem struct {
	Product  *models.Product `json:"product"`
	Quantity any             `json:"quantity"`
}

func (s *cartServiceImpl) hydrate(ctx context.Context, owner string) []models.CartItem {
	data, err := s.store.Get(ctx, cartKey(owner))
	if err != nil {
		s.logger.Error("Failed to read cart", zap.String("owner", owner), zap.Error(err))
		return []models.CartItem{}
	}
	if data == nil {
		return []models.CartItem{}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		storageErr := apperrors.Storage("Stored cart is corrupt", err)
		s.logger.Warn("Discarding stored cart", zap.String("owner", owner), zap.Error(storageErr))
		if delErr := s.store.Delete(ctx, cartKey(owner)); delErr != nil {
			s.logger.Error("Failed to clear corrupt cart", zap.String("owner", owner), zap.Error(delErr))
		}
		return []models.CartItem{}
	}

	items := make([]models.CartItem, 0, len(raw))
	for _, r := range raw {
		var si storedCartItem
		if err := json.Unmarshal(r, &si); err != nil {
			continue
		}
		qty, ok := si.Quantity.(float64)
		if si.Product == nil || si.Product.ID == "" || !ok || qty <= 0 || qty != float64(int(qty)) {
			continue
		}
		items = append(items, models.CartItem{Product: *si.Product, Quantity: int(qty)})
	}
	return items
}

// commitLocked persists items. A failed write is logged and the cart is kept
// in memory so this instance still reflects the change.
func (s *cartServiceImpl) commitLocked(ctx context.Context, owner string, items []models.CartItem) {
	if err := repository.SaveJSON(ctx, s.store, cartKey(owner), items, s.ttl); err != nil {
		s.logger.Error("Failed to persist cart", zap.String("owner", owner), zap.Error(err))
		s.unsaved[owner] = items
		return
	}
	delete(s.unsaved, owner)
}
