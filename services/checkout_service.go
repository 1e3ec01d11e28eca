package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tebele-dev/tailor-made-couture/addressbook"
	"github.com/tebele-dev/tailor-made-couture/apperrors"
	"github.com/tebele-dev/tailor-made-couture/models"
	awspkg "github.com/tebele-dev/tailor-made-couture/pkg/aws"
	"github.com/tebele-dev/tailor-made-couture/pricing"
	"github.com/tebele-dev/tailor-made-couture/repository"
	"go.uber.org/zap"
)

const (
	msgNoCheckout            = "No checkout in progress"
	msgPaymentFieldsRequired = "Please fill in all required payment fields"
	msgInvalidCardNumber     = "Please enter a valid card number"
	msgInvalidCVV            = "Please enter a valid CVV"
	msgInvalidExpiry         = "Please enter a valid expiry date"
	msgInvalidCardholder     = "Please enter a valid cardholder name"
	msgSelectAddress         = "Please select a shipping address"
	msgSelectPayment         = "Please select a payment method"
	msgCartEmpty             = "Your cart is empty"
	msgOrderPlaced           = "Order placed successfully! Thank you for your purchase."

	orderPlacedEvent = "order.placed"
)

var (
	nonDigits   = regexp.MustCompile(`\D`)
	digitGroups = regexp.MustCompile(`(\d{4})`)
)

type CheckoutConfig struct {
	ShippingFlatRate decimal.Decimal
	TaxRate          decimal.Decimal
	OrderTopicARN    string
	// SessionTTL bounds how long an idle checkout is kept. Zero means
	// defaultCheckoutIdle.
	SessionTTL time.Duration
}

const defaultCheckoutIdle = 30 * time.Minute

// CheckoutService runs one four-step checkout per account.
type CheckoutService interface {
	Begin(ctx context.Context, user *models.User) (*models.CheckoutState, error)
	State(ctx context.Context, account string) (*models.CheckoutState, error)
	GoToStep(ctx context.Context, account string, step int) (*models.CheckoutState, error)
	NextStep(ctx context.Context, account string) (*models.CheckoutState, error)
	PrevStep(ctx context.Context, account string) (*models.CheckoutState, error)
	AddAddress(ctx context.Context, account string, form models.AddressForm) (*models.CheckoutState, error)
	SelectAddress(ctx context.Context, account, id string) (*models.CheckoutState, error)
	AddPaymentMethod(ctx context.Context, account string, form models.PaymentForm) (*models.CheckoutState, error)
	SelectPaymentMethod(ctx context.Context, account, id string) (*models.CheckoutState, error)
	PlaceOrder(ctx context.Context, account string) (*models.OrderConfirmation, error)
	Orders(ctx context.Context, account string, page, limit int) ([]models.Order, int64, error)
}

type checkoutSession struct {
	user              models.User
	step              models.CheckoutStep
	items             []models.CartItem
	addresses         *addressbook.Book[models.Address]
	payments          *addressbook.Book[models.PaymentMethod]
	selectedAddressID string
	selectedPaymentID string
	confirmation      *models.OrderConfirmation
	touched           time.Time
}

type checkoutServiceImpl struct {
	mu            sync.Mutex
	sessions      map[string]*checkoutSession
	cart          CartService
	addressBook   AddressBookService
	orders        repository.OrderRepository
	publisher     awspkg.SNSPublisher
	metrics       awspkg.MetricsRecorder
	notifications NotifierProvider
	cfg           CheckoutConfig
	now           func() time.Time
	lastSweep     time.Time
	logger        *zap.Logger
}

func NewCheckoutService(
	cart CartService,
	addressBook AddressBookService,
	orders repository.OrderRepository,
	publisher awspkg.SNSPublisher,
	metrics awspkg.MetricsRecorder,
	notifications NotifierProvider,
	cfg CheckoutConfig,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		sessions:      make(map[string]*checkoutSession),
		cart:          cart,
		addressBook:   addressBook,
		orders:        orders,
		publisher:     publisher,
		metrics:       metrics,
		notifications: notifications,
		cfg:           cfg,
		now:           time.Now,
		logger:        logger,
	}
}

func demoPaymentMethod() models.PaymentMethod {
	return models.PaymentMethod{
		ID:             "1",
		CardNumber:     "**** **** **** 1234",
		CardholderName: "John Doe",
		ExpiryMonth:    "12",
		ExpiryYear:     "2027",
		IsDefault:      true,
	}
}

// Begin snapshots the account's cart and saved addresses and starts at step 1.
// Later cart changes are not reflected in the session.
func (s *checkoutServiceImpl) Begin(ctx context.Context, user *models.User) (*models.CheckoutState, error) {
	if !user.IsAuthenticated() {
		return nil, apperrors.ErrUnauthorized
	}
	account := user.AccountKey()

	saved := s.addressBook.List(ctx, account)
	if len(saved) == 0 {
		saved = demoAddresses()[:1]
	}

	sess := &checkoutSession{
		user:      *user,
		step:      models.StepCart,
		items:     s.cart.Items(ctx, account),
		addresses: addressbook.New(saved...),
		payments:  addressbook.New(demoPaymentMethod()),
		touched:   s.now(),
	}
	if a, ok := sess.addresses.Default(); ok {
		sess.selectedAddressID = a.ID
	}
	if p, ok := sess.payments.Default(); ok {
		sess.selectedPaymentID = p.ID
	}

	s.mu.Lock()
	s.sweepLocked(sess.touched)
	s.sessions[account] = sess
	s.mu.Unlock()

	if s.metrics != nil {
		if err := s.metrics.RecordCount(ctx, awspkg.MetricCartCheckouts, map[string]string{"Service": "storefront"}); err != nil {
			s.logger.Warn("Failed to record checkout metric", zap.Error(err))
		}
	}
	return s.view(sess), nil
}

func (s *checkoutServiceImpl) State(_ context.Context, account string) (*models.CheckoutState, error) {
	return s.with(account, func(*checkoutSession) error { return nil })
}

// GoToStep jumps without validation. Out-of-range steps are ignored.
func (s *checkoutServiceImpl) GoToStep(_ context.Context, account string, step int) (*models.CheckoutState, error) {
	return s.with(account, func(sess *checkoutSession) error {
		if step >= int(models.StepCart) && step <= models.TotalCheckoutSteps {
			sess.step = models.CheckoutStep(step)
		}
		return nil
	})
}

func (s *checkoutServiceImpl) NextStep(_ context.Context, account string) (*models.CheckoutState, error) {
	return s.with(account, func(sess *checkoutSession) error {
		advance(sess)
		return nil
	})
}

func (s *checkoutServiceImpl) PrevStep(_ context.Context, account string) (*models.CheckoutState, error) {
	return s.with(account, func(sess *checkoutSession) error {
		if sess.step > models.StepCart {
			sess.step--
		}
		return nil
	})
}

func advance(sess *checkoutSession) {
	if int(sess.step) < models.TotalCheckoutSteps {
		sess.step++
	}
}

func (s *checkoutServiceImpl) AddAddress(_ context.Context, account string, form models.AddressForm) (*models.CheckoutState, error) {
	return s.with(account, func(sess *checkoutSession) error {
		valid, err := addressbook.ValidateAddress(form)
		if err != nil {
			return s.reject(account, err)
		}
		rec := sess.addresses.AddStamped("addr", s.now(), addressbook.AddressFromForm("", valid), false)
		sess.selectedAddressID = rec.ID
		s.notifications.For(account).Success("Address added successfully")
		advance(sess)
		return nil
	})
}

func (s *checkoutServiceImpl) SelectAddress(_ context.Context, account, id string) (*models.CheckoutState, error) {
	return s.with(account, func(sess *checkoutSession) error {
		if _, ok := sess.addresses.Get(id); !ok {
			return s.reject(account, apperrors.NotFound("Address not found"))
		}
		sess.selectedAddressID = id
		return nil
	})
}

func (s *checkoutServiceImpl) AddPaymentMethod(_ context.Context, account string, form models.PaymentForm) (*models.CheckoutState, error) {
	return s.with(account, func(sess *checkoutSession) error {
		pm, err := s.validatePayment(form)
		if err != nil {
			return s.reject(account, err)
		}
		pm = sess.payments.AddStamped("pm", s.now(), pm, false)
		sess.selectedPaymentID = pm.ID
		s.notifications.For(account).Success("Payment method added successfully")
		advance(sess)
		return nil
	})
}

// validatePayment applies the card checks in order and returns the masked record.
func (s *checkoutServiceImpl) validatePayment(form models.PaymentForm) (models.PaymentMethod, error) {
	if form.CardNumber == "" || form.ExpiryMonth == "" || form.ExpiryYear == "" || form.CVV == "" || form.CardholderName == "" {
		return models.PaymentMethod{}, apperrors.Validation(msgPaymentFieldsRequired)
	}

	digits := nonDigits.ReplaceAllString(form.CardNumber, "")
	if len(digits) < 13 || len(digits) > 19 {
		return models.PaymentMethod{}, apperrors.Format(msgInvalidCardNumber)
	}
	if len(form.CVV) < 3 || len(form.CVV) > 4 {
		return models.PaymentMethod{}, apperrors.Format(msgInvalidCVV)
	}

	month, mErr := strconv.Atoi(strings.TrimSpace(form.ExpiryMonth))
	year, yErr := strconv.Atoi(strings.TrimSpace(form.ExpiryYear))
	now := s.now()
	currentYear := now.Year() % 100
	currentMonth := int(now.Month())
	if mErr != nil || yErr != nil || month < 1 || month > 12 ||
		year < currentYear || (year == currentYear && month < currentMonth) {
		return models.PaymentMethod{}, apperrors.Format(msgInvalidExpiry)
	}

	if len(form.CardholderName) < 2 {
		return models.PaymentMethod{}, apperrors.Validation(msgInvalidCardholder)
	}

	return models.PaymentMethod{
		CardNumber:     "**** **** **** " + digits[len(digits)-4:],
		CardholderName: form.CardholderName,
		ExpiryMonth:    form.ExpiryMonth,
		ExpiryYear:     form.ExpiryYear,
	}, nil
}

func (s *checkoutServiceImpl) SelectPaymentMethod(_ context.Context, account, id string) (*models.CheckoutState, error) {
	return s.with(account, func(sess *checkoutSession) error {
		if _, ok := sess.payments.Get(id); !ok {
			return s.reject(account, apperrors.NotFound("Payment method not found"))
		}
		sess.selectedPaymentID = id
		return nil
	})
}

// PlaceOrder checks address, payment and items before touching anything. The
// order record, event and metrics are best-effort; the cart is always cleared
// once the order number is issued.
func (s *checkoutServiceImpl) PlaceOrder(ctx context.Context, account string) (*models.OrderConfirmation, error) {
	var confirmation *models.OrderConfirmation
	_, err := s.with(account, func(sess *checkoutSession) error {
		address, ok := sess.addresses.Get(sess.selectedAddressID)
		if !ok {
			return s.reject(account, apperrors.Validation(msgSelectAddress))
		}
		payment, ok := sess.payments.Get(sess.selectedPaymentID)
		if !ok {
			return s.reject(account, apperrors.Validation(msgSelectPayment))
		}
		if len(sess.items) == 0 {
			return s.reject(account, apperrors.Validation(msgCartEmpty))
		}

		placedAt := s.now()
		confirmation = &models.OrderConfirmation{
			OrderNumber: fmt.Sprintf("ORD-%d", placedAt.UnixMilli()),
			Items:       sess.items,
			Totals:      s.totals(sess.items),
			Address:     address,
			Payment:     payment,
			PlacedAt:    placedAt,
		}

		s.recordOrder(ctx, sess.user, confirmation)

		s.cart.Clear(ctx, account)
		sess.items = nil
		sess.confirmation = confirmation
		sess.step = models.StepConfirmation
		s.notifications.For(account).Success(msgOrderPlaced)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return confirmation, nil
}

func (s *checkoutServiceImpl) recordOrder(ctx context.Context, user models.User, c *models.OrderConfirmation) {
	lines := make([]models.OrderLine, 0, len(c.Items))
	for _, it := range c.Items {
		lines = append(lines, models.OrderLine{
			ProductID: it.Product.ID,
			Name:      it.Product.Name,
			Quantity:  it.Quantity,
			Price:     it.Product.Price,
		})
	}

	order := &models.Order{
		ID:          uuid.New(),
		OrderNumber: c.OrderNumber,
		AccountKey:  user.AccountKey(),
		UserID:      user.ID,
		Subtotal:    c.Totals.Subtotal,
		Shipping:    c.Totals.Shipping,
		Tax:         c.Totals.Tax,
		Total:       c.Totals.Total,
		ShipTo:      fmt.Sprintf("%s, %s, %s %s %s", c.Address.Name, c.Address.Street, c.Address.City, c.Address.State, c.Address.Zip),
		PaymentCard: c.Payment.CardNumber,
		Status:      models.OrderStatusPlaced,
		Items:       lines,
		CreatedAt:   c.PlacedAt,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error("Failed to save order", zap.String("order_number", c.OrderNumber), zap.Error(err))
	}

	if s.publisher != nil && s.cfg.OrderTopicARN != "" {
		event := models.OrderPlacedEvent{
			Event:       orderPlacedEvent,
			OrderNumber: c.OrderNumber,
			UserID:      user.ID,
			Email:       user.Email,
			Items:       lines,
			Total:       c.Totals.Total.StringFixed(2),
			Timestamp:   c.PlacedAt,
		}
		if err := s.publisher.Publish(ctx, s.cfg.OrderTopicARN, orderPlacedEvent, event); err != nil {
			s.logger.Warn("Order event publish failed", zap.String("order_number", c.OrderNumber), zap.Error(err))
		}
	}

	if s.metrics != nil {
		metricCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		dims := map[string]string{"Service": "storefront"}
		if err := s.metrics.RecordCount(metricCtx, awspkg.MetricOrdersCreated, dims); err != nil {
			s.logger.Warn("Failed to record order metric", zap.Error(err))
		}
		total, _ := c.Totals.Total.Float64()
		if err := s.metrics.RecordValue(metricCtx, awspkg.MetricOrderValue, total, dims); err != nil {
			s.logger.Warn("Failed to record order value metric", zap.Error(err))
		}
	}

	s.logger.Info("Order placed",
		zap.String("order_number", c.OrderNumber),
		zap.String("user_id", user.ID),
		zap.String("total", c.Totals.Total.StringFixed(2)),
	)
}

func (s *checkoutServiceImpl) Orders(ctx context.Context, account string, page, limit int) ([]models.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	orders, total, err := s.orders.FindByAccount(ctx, account, page, limit)
	if err != nil {
		s.logger.Error("Failed to load orders", zap.String("account", account), zap.Error(err))
		return nil, 0, apperrors.Storage("Failed to load orders", err)
	}
	return orders, total, nil
}

// with runs fn against the account's session under the lock and returns the
// resulting view.
func (s *checkoutServiceImpl) with(account string, fn func(*checkoutSession) error) (*models.CheckoutState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweepLocked(now)
	sess, ok := s.sessions[account]
	if ok && now.Sub(sess.touched) >= s.idleTTL() {
		delete(s.sessions, account)
		ok = false
	}
	if !ok {
		return nil, apperrors.NotFound(msgNoCheckout)
	}
	sess.touched = now
	if err := fn(sess); err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

func (s *checkoutServiceImpl) idleTTL() time.Duration {
	if s.cfg.SessionTTL > 0 {
		return s.cfg.SessionTTL
	}
	return defaultCheckoutIdle
}

// sweepLocked drops sessions idle for longer than the TTL, scanning the map
// at most once per TTL.
func (s *checkoutServiceImpl) sweepLocked(now time.Time) {
	ttl := s.idleTTL()
	if now.Sub(s.lastSweep) < ttl {
		return
	}
	s.lastSweep = now
	for account, sess := range s.sessions {
		if now.Sub(sess.touched) >= ttl {
			delete(s.sessions, account)
		}
	}
}

func (s *checkoutServiceImpl) reject(account string, err error) error {
	return reportError(s.notifications, account, err)
}

func (s *checkoutServiceImpl) totals(items []models.CartItem) models.Totals {
	return pricing.CheckoutTotals(items, s.cfg.ShippingFlatRate, s.cfg.TaxRate)
}

// view derives totals on every read.
func (s *checkoutServiceImpl) view(sess *checkoutSession) *models.CheckoutState {
	items := append([]models.CartItem{}, sess.items...)
	return &models.CheckoutState{
		Step:              sess.step,
		StepName:          sess.step.String(),
		TotalSteps:        models.TotalCheckoutSteps,
		User:              sess.user,
		Items:             items,
		Totals:            s.totals(items),
		Addresses:         sess.addresses.All(),
		PaymentMethods:    sess.payments.All(),
		SelectedAddressID: sess.selectedAddressID,
		SelectedPaymentID: sess.selectedPaymentID,
		Confirmation:      sess.confirmation,
	}
}

// FormatCardNumber strips whitespace and puts a space after every run of four digits.
func FormatCardNumber(cardNumber string) string {
	compact := strings.Join(strings.Fields(cardNumber), "")
	return strings.TrimSpace(digitGroups.ReplaceAllString(compact, "${1} "))
}
