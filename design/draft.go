package design

import (
	"fmt"
	"strings"
	"time"

	"github.com/tebele-dev/tailor-made-couture/apperrors"
	"github.com/tebele-dev/tailor-made-couture/models"
)

const (
	msgMeasurementRequired = "Measurement name is required"
	msgMeasurementExists   = "Measurement already exists"
	msgMeasurementNotFound = "Measurement not found"
	msgPropertyName        = "Property name is required"
	msgPropertyType        = "Invalid property type"
	msgPropertyCategory    = "Invalid property category"
	msgPropertyNotFound    = "Property not found"
	msgOptionRequired      = "Option is required"
	msgOptionsNotSupported = "Options are only supported for selection properties"
	msgOptionNotFound      = "Option not found"
	msgFabricName          = "Fabric name is required"
	msgFabricCategory      = "Invalid fabric category"
	msgFabricNotFound      = "Fabric option not found"
)

// Draft is an uncommitted copy of a product's customization schema. Edits
// stay in the draft until it is committed to the catalog.
type Draft struct {
	data models.DesignDraft
	now  func() time.Time
}

func NewDraft(product models.ProductDetail) *Draft {
	p := product.Clone()
	return &Draft{
		data: models.DesignDraft{
			ProductID:        p.ID,
			Measurements:     append([]string{}, p.Measurements...),
			CustomProperties: append([]models.CustomProperty{}, p.CustomProperties...),
			FabricOptions:    append([]models.FabricOption{}, p.FabricOptions...),
		},
		now: time.Now,
	}
}

// Snapshot returns a copy of the draft contents.
func (d *Draft) Snapshot() models.DesignDraft {
	return models.DesignDraft{
		ProductID:        d.data.ProductID,
		Measurements:     append([]string{}, d.data.Measurements...),
		CustomProperties: append([]models.CustomProperty{}, models.CloneProperties(d.data.CustomProperties)...),
		FabricOptions:    append([]models.FabricOption{}, d.data.FabricOptions...),
	}
}

func (d *Draft) AddMeasurement(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.Validation(msgMeasurementRequired)
	}
	for _, m := range d.data.Measurements {
		if strings.EqualFold(m, name) {
			return apperrors.Validation(msgMeasurementExists)
		}
	}
	d.data.Measurements = append(d.data.Measurements, name)
	return nil
}

func (d *Draft) RemoveMeasurement(name string) error {
	for i, m := range d.data.Measurements {
		if m == name {
			d.data.Measurements = append(d.data.Measurements[:i], d.data.Measurements[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound(msgMeasurementNotFound)
}

// nextID returns prefix_<unixmillis>, stepping forward past ids already taken.
func (d *Draft) nextID(prefix string, taken func(string) bool) string {
	ms := d.now().UnixMilli()
	for {
		id := fmt.Sprintf("%s_%d", prefix, ms)
		if !taken(id) {
			return id
		}
		ms++
	}
}

func (d *Draft) AddCustomProperty(req models.CustomPropertyRequest) (models.CustomProperty, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.CustomProperty{}, apperrors.Validation(msgPropertyName)
	}
	if req.Type == "" {
		req.Type = models.PropertyText
	}
	if !req.Type.Valid() {
		return models.CustomProperty{}, apperrors.Validation(msgPropertyType)
	}
	if req.Category == "" {
		req.Category = models.CategoryMeasurements
	}
	if !req.Category.Valid() {
		return models.CustomProperty{}, apperrors.Validation(msgPropertyCategory)
	}

	prop := models.CustomProperty{
		ID: d.nextID("prop", func(id string) bool {
			_, i := d.propertyIndex(id)
			return i >= 0
		}),
		Name:         name,
		Type:         req.Type,
		Required:     req.Required,
		Category:     req.Category,
		DefaultValue: req.DefaultValue,
	}
	if req.Type == models.PropertySelection {
		prop.Options = []string{}
		for _, o := range req.Options {
			if o = strings.TrimSpace(o); o != "" {
				prop.Options = append(prop.Options, o)
			}
		}
	}
	d.data.CustomProperties = append(d.data.CustomProperties, prop)
	return prop, nil
}

func (d *Draft) propertyIndex(id string) (*models.CustomProperty, int) {
	for i := range d.data.CustomProperties {
		if d.data.CustomProperties[i].ID == id {
			return &d.data.CustomProperties[i], i
		}
	}
	return nil, -1
}

func (d *Draft) RemoveCustomProperty(id string) error {
	_, i := d.propertyIndex(id)
	if i < 0 {
		return apperrors.NotFound(msgPropertyNotFound)
	}
	d.data.CustomProperties = append(d.data.CustomProperties[:i], d.data.CustomProperties[i+1:]...)
	return nil
}

func (d *Draft) AddPropertyOption(propertyID, option string) error {
	prop, i := d.propertyIndex(propertyID)
	if i < 0 {
		return apperrors.NotFound(msgPropertyNotFound)
	}
	if prop.Type != models.PropertySelection {
		return apperrors.Validation(msgOptionsNotSupported)
	}
	option = strings.TrimSpace(option)
	if option == "" {
		return apperrors.Validation(msgOptionRequired)
	}
	prop.Options = append(append([]string{}, prop.Options...), option)
	return nil
}

func (d *Draft) RemovePropertyOption(propertyID, option string) error {
	prop, i := d.propertyIndex(propertyID)
	if i < 0 {
		return apperrors.NotFound(msgPropertyNotFound)
	}
	for j, o := range prop.Options {
		if o == option {
			kept := append([]string{}, prop.Options[:j]...)
			prop.Options = append(kept, prop.Options[j+1:]...)
			return nil
		}
	}
	return apperrors.NotFound(msgOptionNotFound)
}

func (d *Draft) AddFabricOption(req models.FabricOptionRequest) (models.FabricOption, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.FabricOption{}, apperrors.Validation(msgFabricName)
	}
	if !req.Category.Valid() {
		return models.FabricOption{}, apperrors.Validation(msgFabricCategory)
	}

	f := models.FabricOption{
		ID: d.nextID("fabric", func(id string) bool {
			return d.fabricIndex(id) >= 0
		}),
		Name:          name,
		Category:      req.Category,
		Image:         req.Image,
		PriceModifier: req.PriceModifier,
		Description:   req.Description,
		SwatchColor:   req.SwatchColor,
	}
	d.data.FabricOptions = append(d.data.FabricOptions, f)
	return f, nil
}

func (d *Draft) fabricIndex(id string) int {
	for i, f := range d.data.FabricOptions {
		if f.ID == id {
			return i
		}
	}
	return -1
}

func (d *Draft) RemoveFabricOption(id string) error {
	i := d.fabricIndex(id)
	if i < 0 {
		return apperrors.NotFound(msgFabricNotFound)
	}
	d.data.FabricOptions = append(d.data.FabricOptions[:i], d.data.FabricOptions[i+1:]...)
	return nil
}
