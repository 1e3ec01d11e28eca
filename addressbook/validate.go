package addressbook

import (
	"regexp"
	"strings"

	"github.com/tebele-dev/tailor-made-couture/apperrors"
	"github.com/tebele-dev/tailor-made-couture/models"
)

const DefaultCountry = "United States"

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// ValidateAddress checks the required fields and the ZIP format, returning a normalized copy.
func ValidateAddress(form models.AddressForm) (models.AddressForm, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Street = strings.TrimSpace(form.Street)
	form.City = strings.TrimSpace(form.City)
	form.State = strings.TrimSpace(form.State)
	form.Zip = strings.TrimSpace(form.Zip)
	form.Country = strings.TrimSpace(form.Country)

	if form.Name == "" || form.Street == "" || form.City == "" || form.State == "" || form.Zip == "" {
		return form, apperrors.Validation("Please fill in all required address fields")
	}
	if !zipPattern.MatchString(form.Zip) {
		return form, apperrors.Format("Please enter a valid ZIP code")
	}
	if form.Country == "" {
		form.Country = DefaultCountry
	}
	return form, nil
}

// AddressFromForm builds an address record from a validated form.
func AddressFromForm(id string, form models.AddressForm) models.Address {
	return models.Address{
		ID:        id,
		Name:      form.Name,
		Street:    form.Street,
		City:      form.City,
		State:     form.State,
		Zip:       form.Zip,
		Country:   form.Country,
		IsDefault: form.IsDefault,
	}
}
