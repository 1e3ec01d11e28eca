package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/tebele-dev/tailor-made-couture/apperrors"
	"github.com/tebele-dev/tailor-made-couture/models"
	"go.uber.org/zap"
)

const msgProductNotFound = "Product not found"

// CatalogService is the only writer of product data. Every read hands out a
// deep copy.
type CatalogService interface {
	AllProducts(ctx context.Context) []models.Product
	FeaturedProducts(ctx context.Context) []models.Product
	ProductByID(ctx context.Context, id string) (*models.ProductDetail, error)
	ReadyToWear(ctx context.Context) []models.Product
	CustomProducts(ctx context.Context) []models.Product
	CustomPropertiesByCategory(ctx context.Context, productID string, category models.PropertyCategory) []models.CustomProperty
	HasCustomPropertiesInCategory(ctx context.Context, productID string, category models.PropertyCategory) bool
	Search(ctx context.Context, query, category string) []models.Product
	Categories(ctx context.Context) []string
	UpdateCustomProperties(ctx context.Context, productID string, props []models.CustomProperty) error
	ApplyDraft(ctx context.Context, draft models.DesignDraft) (*models.ProductDetail, error)
	Upsert(ctx context.Context, detail models.ProductDetail) models.ProductDetail
	Delete(ctx context.Context, id string) error
}

type catalogServiceImpl struct {
	mu       sync.RWMutex
	products []models.ProductDetail
	featured map[string]models.Product
	logger   *zap.Logger
}

// NewCatalogService builds a catalog from products. With no products it loads
// the storefront seed.
func NewCatalogService(logger *zap.Logger, products ...models.ProductDetail) CatalogService {
	if len(products) == 0 {
		products = seedProducts()
	}
	s := &catalogServiceImpl{
		products: make([]models.ProductDetail, 0, len(products)),
		featured: make(map[string]models.Product),
		logger:   logger,
	}
	for _, p := range products {
		s.products = append(s.products, p.Clone())
	}
	for _, f := range featuredOverrides {
		if idx := s.indexLocked(f.id); idx >= 0 {
			p := s.products[idx].Product
			p.Name = f.name
			s.featured[f.id] = p
		}
	}
	return s
}

func (s *catalogServiceImpl) indexLocked(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *catalogServiceImpl) filter(keep func(models.ProductDetail) bool) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Product{}
	for _, p := range s.products {
		if keep(p) {
			out = append(out, p.Product)
		}
	}
	return out
}

func (s *catalogServiceImpl) AllProducts(_ context.Context) []models.Product {
	return s.filter(func(models.ProductDetail) bool { return true })
}

// FeaturedProducts returns the featured rail in seed order, with the rail's
// shorter names. Featured products deleted from the catalog are skipped.
func (s *catalogServiceImpl) FeaturedProducts(_ context.Context) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Product{}
	for _, f := range featuredOverrides {
		idx := s.indexLocked(f.id)
		p, ok := s.featured[f.id]
		if idx < 0 || !ok {
			continue
		}
		p.Price = s.products[idx].Price
		p.Image = s.products[idx].Image
		out = append(out, p)
	}
	return out
}

func (s *catalogServiceImpl) ProductByID(_ context.Context, id string) (*models.ProductDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return nil, apperrors.NotFound(msgProductNotFound)
	}
	p := s.products[idx].Clone()
	return &p, nil
}

func (s *catalogServiceImpl) ReadyToWear(_ context.Context) []models.Product {
	return s.filter(func(p models.ProductDetail) bool { return !p.IsCustom })
}

func (s *catalogServiceImpl) CustomProducts(_ context.Context) []models.Product {
	return s.filter(func(p models.ProductDetail) bool { return p.IsCustom })
}

func (s *catalogServiceImpl) CustomPropertiesByCategory(_ context.Context, productID string, category models.PropertyCategory) []models.CustomProperty {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.CustomProperty{}
	idx := s.indexLocked(productID)
	if idx < 0 {
		return out
	}
	for _, prop := range s.products[idx].CustomProperties {
		if prop.Category == category {
			out = append(out, prop)
		}
	}
	return models.CloneProperties(out)
}

func (s *catalogServiceImpl) HasCustomPropertiesInCategory(ctx context.Context, productID string, category models.PropertyCategory) bool {
	return len(s.CustomPropertiesByCategory(ctx, productID, category)) > 0
}

// Search matches query case-insensitively against name and category, then
// narrows to category when one is given.
func (s *catalogServiceImpl) Search(_ context.Context, query, category string) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	return s.filter(func(p models.ProductDetail) bool {
		if category != "" && !strings.EqualFold(p.Category, category) {
			return false
		}
		if q == "" {
			return true
		}
		return strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q)
	})
}

func (s *catalogServiceImpl) Categories(_ context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	out := []string{}
	for _, p := range s.products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out
}

// UpdateCustomProperties replaces a product's properties in memory. Nothing is
// persisted beyond the process.
func (s *catalogServiceImpl) UpdateCustomProperties(_ context.Context, productID string, props []models.CustomProperty) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(productID)
	if idx < 0 {
		return apperrors.NotFound(msgProductNotFound)
	}
	s.products[idx].CustomProperties = models.CloneProperties(props)
	s.logger.Info("Updated custom properties",
		zap.String("product_id", productID),
		zap.Int("properties", len(props)),
	)
	return nil
}

// ApplyDraft commits an admin design draft to its product.
func (s *catalogServiceImpl) ApplyDraft(_ context.Context, draft models.DesignDraft) (*models.ProductDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(draft.ProductID)
	if idx < 0 {
		return nil, apperrors.NotFound(msgProductNotFound)
	}
	p := &s.products[idx]
	p.Measurements = append([]string(nil), draft.Measurements...)
	p.CustomProperties = models.CloneProperties(draft.CustomProperties)
	p.FabricOptions = append([]models.FabricOption(nil), draft.FabricOptions...)
	s.logger.Info("Applied design draft",
		zap.String("product_id", draft.ProductID),
		zap.Int("measurements", len(p.Measurements)),
		zap.Int("properties", len(p.CustomProperties)),
		zap.Int("fabrics", len(p.FabricOptions)),
	)
	out := p.Clone()
	return &out, nil
}

// Upsert replaces the product with the same id or appends a new one.
func (s *catalogServiceImpl) Upsert(_ context.Context, detail models.ProductDetail) models.ProductDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := detail.Clone()
	if idx := s.indexLocked(detail.ID); idx >= 0 {
		s.products[idx] = stored
	} else {
		s.products = append(s.products, stored)
	}
	return stored.Clone()
}

func (s *catalogServiceImpl) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return apperrors.NotFound(msgProductNotFound)
	}
	s.products = append(s.products[:idx], s.products[idx+1:]...)
	return nil
}
