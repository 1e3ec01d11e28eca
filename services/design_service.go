package services

import (
	"context"

	"github.com/tebele-dev/tailor-made-couture/design"
	"github.com/tebele-dev/tailor-made-couture/models"
	"go.uber.org/zap"
)

// DesignService prices a complete custom design.
type DesignService interface {
	Quote(ctx context.Context, productID string, req models.DesignRequest) (*models.DesignQuote, error)
}

type designServiceImpl struct {
	catalog CatalogService
	logger  *zap.Logger
}

func NewDesignService(catalog CatalogService, logger *zap.Logger) DesignService {
	return &designServiceImpl{catalog: catalog, logger: logger}
}

// Quote runs req through every wizard step, so an incomplete design is
// rejected with the message of the first step that fails.
func (s *designServiceImpl) Quote(ctx context.Context, productID string, req models.DesignRequest) (*models.DesignQuote, error) {
	product, err := s.catalog.ProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	w, err := design.NewWizard(*product)
	if err != nil {
		return nil, err
	}
	if err := w.Apply(req); err != nil {
		return nil, err
	}
	for w.Step() != design.StepReview {
		if err := w.Next(); err != nil {
			return nil, err
		}
	}

	quote := w.Summary()
	s.logger.Debug("Quoted custom design",
		zap.String("product_id", productID),
		zap.String("price", quote.Price.StringFixed(2)),
	)
	return &quote, nil
}
