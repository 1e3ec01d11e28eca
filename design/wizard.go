// Package design holds the custom garment configuration flow and the admin
// draft editor for a product's customization schema.
package design

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tebele-dev/tailor-made-couture/apperrors"
	"github.com/tebele-dev/tailor-made-couture/models"
	"github.com/tebele-dev/tailor-made-couture/pricing"
)

type Step int

const (
	StepDesign Step = iota + 1
	StepMeasurements
	StepFabric
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepDesign:
		return "design"
	case StepMeasurements:
		return "measurements"
	case StepFabric:
		return "fabric"
	case StepReview:
		return "review"
	}
	return "unknown"
}

const (
	msgNotCustomizable     = "Product is not customizable"
	msgUnknownProperty     = "Unknown design option"
	msgUnknownMeasurement  = "Unknown measurement"
	msgUnknownFabric       = "Fabric not available for this product"
	msgDesignIncomplete    = "Please complete all required design options"
	msgMeasurementsMissing = "Please enter all measurements"
	msgFabricsMissing      = "Please select a fabric for each category"
)

// Wizard walks a shopper through configuring one custom product. Each step
// must validate before Next moves past it.
type Wizard struct {
	product      models.ProductDetail
	step         Step
	properties   map[string]any
	measurements map[string]float64
	fabrics      map[models.FabricCategory]string
}

func NewWizard(product models.ProductDetail) (*Wizard, error) {
	if !product.IsCustom {
		return nil, apperrors.Validation(msgNotCustomizable)
	}
	w := &Wizard{
		product:      product.Clone(),
		step:         StepDesign,
		properties:   make(map[string]any),
		measurements: make(map[string]float64),
		fabrics:      make(map[models.FabricCategory]string),
	}
	for _, p := range w.product.CustomProperties {
		w.properties[p.ID] = initialValue(p)
	}
	return w, nil
}

// initialValue is the property's default, or the zero value for its type.
// Selections fall back to their first option.
func initialValue(p models.CustomProperty) any {
	if p.DefaultValue != nil {
		return p.DefaultValue
	}
	switch p.Type {
	case models.PropertyNumber:
		return float64(0)
	case models.PropertyBoolean:
		return false
	case models.PropertySelection:
		if len(p.Options) > 0 {
			return p.Options[0]
		}
		return ""
	default:
		return ""
	}
}

func (w *Wizard) Step() Step { return w.step }

func (w *Wizard) property(id string) (models.CustomProperty, bool) {
	for _, p := range w.product.CustomProperties {
		if p.ID == id {
			return p, true
		}
	}
	return models.CustomProperty{}, false
}

func (w *Wizard) SetProperty(id string, value any) error {
	if _, ok := w.property(id); !ok {
		return apperrors.NotFound(msgUnknownProperty)
	}
	w.properties[id] = value
	return nil
}

func (w *Wizard) SetMeasurement(name string, value float64) error {
	for _, m := range w.product.Measurements {
		if m == name {
			w.measurements[name] = value
			return nil
		}
	}
	return apperrors.NotFound(msgUnknownMeasurement)
}

// SelectFabric chooses fabricID for category, replacing any earlier choice.
func (w *Wizard) SelectFabric(category models.FabricCategory, fabricID string) error {
	f, ok := w.product.FabricByID(fabricID)
	if !ok || f.Category != category {
		return apperrors.NotFound(msgUnknownFabric)
	}
	w.fabrics[category] = fabricID
	return nil
}

// Apply loads a complete request into the wizard without moving steps.
func (w *Wizard) Apply(req models.DesignRequest) error {
	for id, v := range req.Properties {
		if err := w.SetProperty(id, v); err != nil {
			return err
		}
	}
	for name, v := range req.Measurements {
		if err := w.SetMeasurement(name, v); err != nil {
			return err
		}
	}
	for cat, id := range req.Fabrics {
		if err := w.SelectFabric(cat, id); err != nil {
			return err
		}
	}
	return nil
}

// Next validates the current step and advances. Review is terminal.
func (w *Wizard) Next() error {
	switch w.step {
	case StepDesign:
		if !w.designComplete() {
			return apperrors.Validation(msgDesignIncomplete)
		}
	case StepMeasurements:
		if !w.measurementsComplete() {
			return apperrors.Validation(msgMeasurementsMissing)
		}
	case StepFabric:
		if !w.fabricsComplete() {
			return apperrors.Validation(msgFabricsMissing)
		}
	case StepReview:
		return nil
	}
	w.step++
	return nil
}

func (w *Wizard) Back() {
	if w.step > StepDesign {
		w.step--
	}
}

func (w *Wizard) designComplete() bool {
	for _, p := range w.product.CustomProperties {
		if !p.Required {
			continue
		}
		v, ok := w.properties[p.ID]
		if !ok || v == nil {
			return false
		}
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			return false
		}
	}
	return true
}

func (w *Wizard) measurementsComplete() bool {
	for _, m := range w.product.Measurements {
		if w.measurements[m] <= 0 {
			return false
		}
	}
	return true
}

func (w *Wizard) fabricsComplete() bool {
	for _, cat := range w.product.FabricCategories() {
		if _, ok := w.fabrics[cat]; !ok {
			return false
		}
	}
	return true
}

func (w *Wizard) selectedFabrics() []models.FabricOption {
	out := make([]models.FabricOption, 0, len(w.fabrics))
	for _, cat := range w.product.FabricCategories() {
		if id, ok := w.fabrics[cat]; ok {
			if f, found := w.product.FabricByID(id); found {
				out = append(out, f)
			}
		}
	}
	return out
}

// Price is the base price adjusted by every selected fabric's modifier.
func (w *Wizard) Price() decimal.Decimal {
	return pricing.FabricPrice(w.product.Price, w.selectedFabrics())
}

func (w *Wizard) Summary() models.DesignQuote {
	props := make(map[string]any, len(w.properties))
	for k, v := range w.properties {
		props[k] = v
	}
	measurements := make(map[string]float64, len(w.measurements))
	for k, v := range w.measurements {
		measurements[k] = v
	}
	fabrics := make(map[models.FabricCategory]string, len(w.fabrics))
	for k, v := range w.fabrics {
		fabrics[k] = v
	}
	return models.DesignQuote{
		ProductID:    w.product.ID,
		ProductName:  w.product.Name,
		BasePrice:    w.product.Price,
		Price:        w.Price(),
		Properties:   props,
		Measurements: measurements,
		Fabrics:      fabrics,
	}
}
