package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tebele-dev/tailor-made-couture/apperrors"
	"github.com/tebele-dev/tailor-made-couture/models"
	awspkg "github.com/tebele-dev/tailor-made-couture/pkg/aws"
	"go.uber.org/zap"
)

const (
	msgInventoryFieldsRequired = "Please fill in all required fields"
	defaultInventoryImage      = unsplash + "photo-1594938291221-94f18cbb5660?w=800&h=1000&fit=crop"
	dateLayout                 = "2006-01-02"
)

// InventoryService tracks stock and supplier for every catalog product and
// edits the catalog through it.
type InventoryService interface {
	Summary(ctx context.Context, query, category string) models.InventorySummary
	Add(ctx context.Context, req models.InventoryRequest) (*models.InventoryItem, error)
	Update(ctx context.Context, id string, req models.InventoryRequest) (*models.InventoryItem, error)
	Delete(ctx context.Context, id string) error
}

type stockRecord struct {
	stock       int
	supplier    string
	lastUpdated string
}

type inventoryServiceImpl struct {
	mu        sync.Mutex
	stock     map[string]stockRecord
	catalog   CatalogService
	threshold int
	metrics   awspkg.MetricsRecorder
	now       func() time.Time
	logger    *zap.Logger
}

func NewInventoryService(catalog CatalogService, lowStockThreshold int, metrics awspkg.MetricsRecorder, logger *zap.Logger) InventoryService {
	s := &inventoryServiceImpl{
		stock:     make(map[string]stockRecord),
		catalog:   catalog,
		threshold: lowStockThreshold,
		metrics:   metrics,
		now:       time.Now,
		logger:    logger,
	}
	today := s.now().Format(dateLayout)
	for i, p := range catalog.AllProducts(context.Background()) {
		s.stock[p.ID] = stockRecord{
			stock:       10 + (i*37)%90,
			supplier:    inventorySuppliers[i%len(inventorySuppliers)],
			lastUpdated: today,
		}
	}
	return s
}

// Summary filters items like the catalog search; the totals and low-stock
// list always cover the whole inventory.
func (s *inventoryServiceImpl) Summary(ctx context.Context, query, category string) models.InventorySummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := models.InventorySummary{
		Items:          []models.InventoryItem{},
		InventoryValue: decimal.Zero,
		LowStock:       []string{},
	}
	for _, p := range s.catalog.AllProducts(ctx) {
		item := s.itemLocked(ctx, p.ID)
		if item == nil {
			continue
		}
		summary.TotalStock += item.Stock
		summary.InventoryValue = summary.InventoryValue.Add(item.StockValue())
		if item.Stock <= s.threshold {
			summary.LowStock = append(summary.LowStock, item.ID)
		}
	}
	summary.InventoryValue = summary.InventoryValue.Round(2)

	for _, p := range s.catalog.Search(ctx, query, category) {
		if item := s.itemLocked(ctx, p.ID); item != nil {
			summary.Items = append(summary.Items, *item)
		}
	}
	return summary
}

func (s *inventoryServiceImpl) itemLocked(ctx context.Context, id string) *models.InventoryItem {
	detail, err := s.catalog.ProductByID(ctx, id)
	if err != nil {
		return nil
	}
	rec := s.stock[id]
	return &models.InventoryItem{
		ProductDetail: *detail,
		Stock:         rec.stock,
		Supplier:      rec.supplier,
		LastUpdated:   rec.lastUpdated,
	}
}

func validateInventory(req models.InventoryRequest) error {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Category) == "" || !req.Price.IsPositive() {
		return apperrors.Validation(msgInventoryFieldsRequired)
	}
	if req.Stock < 0 {
		return apperrors.Validation("Stock cannot be negative")
	}
	return nil
}

func (s *inventoryServiceImpl) Add(ctx context.Context, req models.InventoryRequest) (*models.InventoryItem, error) {
	if err := validateInventory(req); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	ms := now.UnixMilli()
	id := fmt.Sprintf("prod_%d", ms)
	for {
		if _, taken := s.stock[id]; !taken {
			break
		}
		ms++
		id = fmt.Sprintf("prod_%d", ms)
	}
	image := req.Image
	if image == "" {
		image = defaultInventoryImage
	}

	detail := models.ProductDetail{
		Product: models.Product{
			ID:       id,
			Name:     strings.TrimSpace(req.Name),
			Price:    req.Price,
			Image:    image,
			Category: strings.TrimSpace(req.Category),
			Rating:   req.Rating,
			IsCustom: req.IsCustom,
		},
		Description: req.Description,
		Images:      []string{image},
	}
	s.catalog.Upsert(ctx, detail)
	s.stock[id] = stockRecord{stock: req.Stock, supplier: req.Supplier, lastUpdated: now.Format(dateLayout)}
	s.checkLowStock(ctx, id, req.Stock)

	s.logger.Info("Added inventory item", zap.String("product_id", id), zap.Int("stock", req.Stock))
	return s.itemLocked(ctx, id), nil
}

func (s *inventoryServiceImpl) Update(ctx context.Context, id string, req models.InventoryRequest) (*models.InventoryItem, error) {
	if err := validateInventory(req); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	detail, err := s.catalog.ProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Name = strings.TrimSpace(req.Name)
	detail.Price = req.Price
	detail.Category = strings.TrimSpace(req.Category)
	detail.Rating = req.Rating
	detail.IsCustom = req.IsCustom
	if req.Image != "" {
		detail.Image = req.Image
	}
	if req.Description != "" {
		detail.Description = req.Description
	}
	s.catalog.Upsert(ctx, *detail)
	s.stock[id] = stockRecord{stock: req.Stock, supplier: req.Supplier, lastUpdated: s.now().Format(dateLayout)}
	s.checkLowStock(ctx, id, req.Stock)

	return s.itemLocked(ctx, id), nil
}

func (s *inventoryServiceImpl) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.catalog.Delete(ctx, id); err != nil {
		return err
	}
	delete(s.stock, id)
	return nil
}

func (s *inventoryServiceImpl) checkLowStock(ctx context.Context, id string, stock int) {
	if stock > s.threshold {
		return
	}
	s.logger.Warn("Low stock", zap.String("product_id", id), zap.Int("stock", stock))
	if s.metrics == nil {
		return
	}
	if err := s.metrics.RecordValue(ctx, awspkg.MetricInventoryLow, float64(stock), map[string]string{"ProductID": id}); err != nil {
		s.logger.Warn("Failed to record low stock metric", zap.Error(err))
	}
}
