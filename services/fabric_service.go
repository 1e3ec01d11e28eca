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
	"github.com/tebele-dev/tailor-made-couture/pricing"
	"go.uber.org/zap"
)

// FabricService manages the shared fabric library admins price garments against.
type FabricService interface {
	List(ctx context.Context) []models.FabricOption
	ByCategory(ctx context.Context, category models.FabricCategory) []models.FabricOption
	Add(ctx context.Context, req models.FabricOptionRequest) (*models.FabricOption, error)
	Update(ctx context.Context, id string, req models.FabricOptionRequest) (*models.FabricOption, error)
	Delete(ctx context.Context, id string) error
	Price(ctx context.Context, productID string, selection map[models.FabricCategory]string) (decimal.Decimal, error)
}

type fabricServiceImpl struct {
	mu      sync.RWMutex
	fabrics []models.FabricOption
	catalog CatalogService
	now     func() time.Time
	logger  *zap.Logger
}

func NewFabricService(catalog CatalogService, logger *zap.Logger) FabricService {
	return &fabricServiceImpl{
		fabrics: seedFabricLibrary(),
		catalog: catalog,
		now:     time.Now,
		logger:  logger,
	}
}

func (s *fabricServiceImpl) List(_ context.Context) []models.FabricOption {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.FabricOption{}, s.fabrics...)
}

func (s *fabricServiceImpl) ByCategory(_ context.Context, category models.FabricCategory) []models.FabricOption {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.FabricOption{}
	for _, f := range s.fabrics {
		if f.Category == category {
			out = append(out, f)
		}
	}
	return out
}

func validateFabric(req models.FabricOptionRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.Validation("Fabric name is required")
	}
	if !req.Category.Valid() {
		return apperrors.Validation("Invalid fabric category")
	}
	return nil
}

func (s *fabricServiceImpl) Add(_ context.Context, req models.FabricOptionRequest) (*models.FabricOption, error) {
	if err := validateFabric(req); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := s.now().UnixMilli()
	id := fmt.Sprintf("fabric_%d", ms)
	for s.indexLocked(id) >= 0 {
		ms++
		id = fmt.Sprintf("fabric_%d", ms)
	}
	f := models.FabricOption{
		ID:            id,
		Name:          strings.TrimSpace(req.Name),
		Category:      req.Category,
		Image:         req.Image,
		PriceModifier: req.PriceModifier,
		Description:   req.Description,
		SwatchColor:   req.SwatchColor,
	}
	s.fabrics = append(s.fabrics, f)
	s.logger.Info("Added fabric", zap.String("fabric_id", f.ID), zap.String("category", string(f.Category)))
	return &f, nil
}

func (s *fabricServiceImpl) Update(_ context.Context, id string, req models.FabricOptionRequest) (*models.FabricOption, error) {
	if err := validateFabric(req); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return nil, apperrors.NotFound("Fabric not found")
	}
	f := &s.fabrics[i]
	f.Name = strings.TrimSpace(req.Name)
	f.Category = req.Category
	f.Image = req.Image
	f.PriceModifier = req.PriceModifier
	f.Description = req.Description
	f.SwatchColor = req.SwatchColor
	out := *f
	return &out, nil
}

func (s *fabricServiceImpl) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return apperrors.NotFound("Fabric not found")
	}
	s.fabrics = append(s.fabrics[:i], s.fabrics[i+1:]...)
	return nil
}

// Price applies the selected library fabrics, at most one per category, to
// the product's base price. Categories left unselected add nothing.
func (s *fabricServiceImpl) Price(ctx context.Context, productID string, selection map[models.FabricCategory]string) (decimal.Decimal, error) {
	product, err := s.catalog.ProductByID(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	selected := make([]models.FabricOption, 0, len(selection))
	for category, id := range selection {
		i := s.indexLocked(id)
		if i < 0 || s.fabrics[i].Category != category {
			return decimal.Zero, apperrors.NotFound("Fabric not found")
		}
		selected = append(selected, s.fabrics[i])
	}
	return pricing.FabricPrice(product.Price, selected), nil
}

func (s *fabricServiceImpl) indexLocked(id string) int {
	for i, f := range s.fabrics {
		if f.ID == id {
			return i
		}
	}
	return -1
}
