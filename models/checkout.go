package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CheckoutStep int

const (
	StepCart CheckoutStep = iota + 1
	StepShipping
	StepPayment
	StepConfirmation
)

const TotalCheckoutSteps = 4

func (s CheckoutStep) String() string {
	switch s {
	case StepCart:
		return "cart"
	case StepShipping:
		return "shipping"
	case StepPayment:
		return "payment"
	case StepConfirmation:
		return "confirmation"
	}
	return "unknown"
}

type Address struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	IsDefault bool   `json:"is_default"`
}

func (a Address) RecordID() string { return a.ID }
func (a Address) IsDefaultRecord() bool { return a.IsDefault }
func (a Address) WithDefault(d bool) Address {
	a.IsDefault = d
	return a
}
func (a Address) WithID(id string) Address {
	a.ID = id
	return a
}

type PaymentMethod struct {
	ID             string `json:"id"`
	CardNumber     string `json:"card_number"`
	CardholderName string `json:"cardholder_name"`
	ExpiryMonth    string `json:"expiry_month"`
	ExpiryYear     string `json:"expiry_year"`
	IsDefault      bool   `json:"is_default"`
}

func (p PaymentMethod) RecordID() string { return p.ID }
func (p PaymentMethod) IsDefaultRecord() bool { return p.IsDefault }
func (p PaymentMethod) WithDefault(d bool) PaymentMethod {
	p.IsDefault = d
	return p
}
func (p PaymentMethod) WithID(id string) PaymentMethod {
	p.ID = id
	return p
}

type AddressForm struct {
	Name      string `json:"name"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	IsDefault bool   `json:"is_default"`
}

type PaymentForm struct {
	CardNumber     string `json:"card_number"`
	CardholderName string `json:"cardholder_name"`
	ExpiryMonth    string `json:"expiry_month"`
	ExpiryYear     string `json:"expiry_year"`
	CVV            string `json:"cvv"`
}

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

type OrderConfirmation struct {
	OrderNumber string        `json:"order_number"`
	Items       []CartItem    `json:"items"`
	Totals      Totals        `json:"totals"`
	Address     Address       `json:"address"`
	Payment     PaymentMethod `json:"payment"`
	PlacedAt    time.Time     `json:"placed_at"`
}

// CheckoutState is the read view of one checkout session.
type CheckoutState struct {
	Step              CheckoutStep       `json:"step"`
	StepName          string             `json:"step_name"`
	TotalSteps        int                `json:"total_steps"`
	User              User               `json:"user"`
	Items             []CartItem         `json:"items"`
	Totals            Totals             `json:"totals"`
	Addresses         []Address          `json:"addresses"`
	PaymentMethods    []PaymentMethod    `json:"payment_methods"`
	SelectedAddressID string             `json:"selected_address_id"`
	SelectedPaymentID string             `json:"selected_payment_id"`
	Confirmation      *OrderConfirmation `json:"confirmation,omitempty"`
}

type StepRequest struct {
	Step int `json:"step"`
}

type SelectRequest struct {
	ID string `json:"id"`
}
