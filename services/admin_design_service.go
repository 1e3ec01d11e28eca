package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/tebele-dev/tailor-made-couture/apperrors"
	"github.com/tebele-dev/tailor-made-couture/design"
	"github.com/tebele-dev/tailor-made-couture/models"
	"go.uber.org/zap"
)

// AdminDesignService holds each admin's uncommitted blueprint drafts. Nothing
// reaches the catalog until Commit.
type AdminDesignService interface {
	Blueprints(ctx context.Context) []models.DesignDraft
	Draft(ctx context.Context, account, productID string) (*models.DesignDraft, error)
	AddMeasurement(ctx context.Context, account, productID, name string) (*models.DesignDraft, error)
	RemoveMeasurement(ctx context.Context, account, productID, name string) (*models.DesignDraft, error)
	AddCustomProperty(ctx context.Context, account, productID string, req models.CustomPropertyRequest) (*models.DesignDraft, error)
	RemoveCustomProperty(ctx context.Context, account, productID, propertyID string) (*models.DesignDraft, error)
	AddPropertyOption(ctx context.Context, account, productID, propertyID, option string) (*models.DesignDraft, error)
	RemovePropertyOption(ctx context.Context, account, productID, propertyID, option string) (*models.DesignDraft, error)
	AddFabricOption(ctx context.Context, account, productID string, req models.FabricOptionRequest) (*models.DesignDraft, error)
	RemoveFabricOption(ctx context.Context, account, productID, fabricID string) (*models.DesignDraft, error)
	Commit(ctx context.Context, account, productID string) (*models.ProductDetail, error)
	Discard(ctx context.Context, account, productID string)
}

type adminDesignServiceImpl struct {
	mu            sync.Mutex
	drafts        map[string]*design.Draft
	catalog       CatalogService
	notifications NotifierProvider
	logger        *zap.Logger
}

func NewAdminDesignService(catalog CatalogService, notifications NotifierProvider, logger *zap.Logger) AdminDesignService {
	return &adminDesignServiceImpl{
		drafts:        make(map[string]*design.Draft),
		catalog:       catalog,
		notifications: notifications,
		logger:        logger,
	}
}

func draftKey(account, productID string) string {
	return account + "|" + productID
}

// Blueprints lists the committed schema of every custom product.
func (s *adminDesignServiceImpl) Blueprints(ctx context.Context) []models.DesignDraft {
	out := []models.DesignDraft{}
	for _, p := range s.catalog.CustomProducts(ctx) {
		detail, err := s.catalog.ProductByID(ctx, p.ID)
		if err != nil {
			continue
		}
		out = append(out, design.NewDraft(*detail).Snapshot())
	}
	return out
}

func (s *adminDesignServiceImpl) Draft(ctx context.Context, account, productID string) (*models.DesignDraft, error) {
	return s.edit(ctx, account, productID, func(*design.Draft) error { return nil })
}

func (s *adminDesignServiceImpl) AddMeasurement(ctx context.Context, account, productID, name string) (*models.DesignDraft, error) {
	return s.edit(ctx, account, productID, func(d *design.Draft) error { return d.AddMeasurement(name) })
}

func (s *adminDesignServiceImpl) RemoveMeasurement(ctx context.Context, account, productID, name string) (*models.DesignDraft, error) {
	return s.edit(ctx, account, productID, func(d *design.Draft) error { return d.RemoveMeasurement(name) })
}

func (s *adminDesignServiceImpl) AddCustomProperty(ctx context.Context, account, productID string, req models.CustomPropertyRequest) (*models.DesignDraft, error) {
	return s.edit(ctx, account, productID, func(d *design.Draft) error {
		_, err := d.AddCustomProperty(req)
		return err
	})
}

func (s *adminDesignServiceImpl) RemoveCustomProperty(ctx context.Context, account, productID, propertyID string) (*models.DesignDraft, error) {
	return s.edit(ctx, account, productID, func(d *design.Draft) error { return d.RemoveCustomProperty(propertyID) })
}

func (s *adminDesignServiceImpl) AddPropertyOption(ctx context.Context, account, productID, propertyID, option string) (*models.DesignDraft, error) {
	return s.edit(ctx, account, productID, func(d *design.Draft) error { return d.AddPropertyOption(propertyID, option) })
}

func (s *adminDesignServiceImpl) RemovePropertyOption(ctx context.Context, account, productID, propertyID, option string) (*models.DesignDraft, error) {
	return s.edit(ctx, account, productID, func(d *design.Draft) error { return d.RemovePropertyOption(propertyID, option) })
}

func (s *adminDesignServiceImpl) AddFabricOption(ctx context.Context, account, productID string, req models.FabricOptionRequest) (*models.DesignDraft, error) {
	return s.edit(ctx, account, productID, func(d *design.Draft) error {
		_, err := d.AddFabricOption(req)
		return err
	})
}

func (s *adminDesignServiceImpl) RemoveFabricOption(ctx context.Context, account, productID, fabricID string) (*models.DesignDraft, error) {
	return s.edit(ctx, account, productID, func(d *design.Draft) error { return d.RemoveFabricOption(fabricID) })
}

// Commit applies the draft to the catalog and closes it.
func (s *adminDesignServiceImpl) Commit(ctx context.Context, account, productID string) (*models.ProductDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[draftKey(account, productID)]
	if !ok {
		return nil, s.reject(account, apperrors.NotFound("No draft for this product"))
	}
	updated, err := s.catalog.ApplyDraft(ctx, d.Snapshot())
	if err != nil {
		return nil, s.reject(account, err)
	}
	delete(s.drafts, draftKey(account, productID))

	s.logger.Info("Committed blueprint", zap.String("product_id", productID), zap.String("account", account))
	s.notifications.For(account).Success(fmt.Sprintf("Blueprint configuration for %s has been saved!", updated.Name))
	return updated, nil
}

func (s *adminDesignServiceImpl) Discard(_ context.Context, account, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, draftKey(account, productID))
}

// edit opens the draft on first use, applies fn and returns the draft contents.
func (s *adminDesignServiceImpl) edit(ctx context.Context, account, productID string, fn func(*design.Draft) error) (*models.DesignDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := draftKey(account, productID)
	d, ok := s.drafts[key]
	if !ok {
		product, err := s.catalog.ProductByID(ctx, productID)
		if err != nil {
			return nil, s.reject(account, err)
		}
		d = design.NewDraft(*product)
		s.drafts[key] = d
	}
	if err := fn(d); err != nil {
		return nil, s.reject(account, err)
	}
	snap := d.Snapshot()
	return &snap, nil
}

func (s *adminDesignServiceImpl) reject(account string, err error) error {
	return reportError(s.notifications, account, err)
}
