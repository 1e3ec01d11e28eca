package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/tebele-dev/tailor-made-couture/addressbook"
	"github.com/tebele-dev/tailor-made-couture/apperrors"
	"github.com/tebele-dev/tailor-made-couture/models"
	"github.com/tebele-dev/tailor-made-couture/repository"
	"go.uber.org/zap"
)

const addressKeyPrefix = "tmc_addresses:"

// AddressBookService manages the saved shipping addresses of each account.
type AddressBookService interface {
	List(ctx context.Context, account string) []models.Address
	Save(ctx context.Context, account, id string, form models.AddressForm) (*models.Address, error)
	Delete(ctx context.Context, account, id string) error
	SetDefault(ctx context.Context, account, id string) error
}

type addressBookServiceImpl struct {
	mu            sync.Mutex
	store         repository.KVStore
	notifications NotifierProvider
	now           func() time.Time
	logger        *zap.Logger
}

func NewAddressBookService(store repository.KVStore, notifications NotifierProvider, logger *zap.Logger) AddressBookService {
	return &addressBookServiceImpl{
		store:         store,
		notifications: notifications,
		now:           time.Now,
		logger:        logger,
	}
}

func addressKey(account string) string {
	return addressKeyPrefix + account
}

// demoAddresses is what a new account starts with.
func demoAddresses() []models.Address {
	return []models.Address{
		{ID: "1", Name: "John Doe", Street: "123 Main St", City: "New York", State: "NY", Zip: "10001", Country: addressbook.DefaultCountry, IsDefault: true},
		{ID: "2", Name: "John Doe", Street: "456 Park Ave", City: "New York", State: "NY", Zip: "10022", Country: addressbook.DefaultCountry},
	}
}

func (s *addressBookServiceImpl) List(ctx context.Context, account string) []models.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, account).All()
}

// Save adds a new address when id is empty and replaces the stored one otherwise.
func (s *addressBookServiceImpl) Save(ctx context.Context, account, id string, form models.AddressForm) (*models.Address, error) {
	form, err := addressbook.ValidateAddress(form)
	if err != nil {
		return nil, s.reject(account, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	book := s.load(ctx, account)

	var saved models.Address
	if id == "" {
		saved = book.AddStamped("addr", s.now(), addressbook.AddressFromForm("", form), form.IsDefault)
		s.persist(ctx, account, book)
		s.notifications.For(account).Success("Address added successfully")
		return &saved, nil
	}

	saved, err = book.Update(addressbook.AddressFromForm(id, form))
	if err != nil {
		return nil, s.reject(account, err)
	}
	s.persist(ctx, account, book)
	s.notifications.For(account).Success("Address updated successfully")
	return &saved, nil
}

func (s *addressBookServiceImpl) Delete(ctx context.Context, account, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	book := s.load(ctx, account)
	if err := book.Delete(id); err != nil {
		return s.reject(account, err)
	}
	s.persist(ctx, account, book)
	s.notifications.For(account).Success("Address deleted successfully")
	return nil
}

func (s *addressBookServiceImpl) SetDefault(ctx context.Context, account, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	book := s.load(ctx, account)
	if err := book.SetDefault(id); err != nil {
		return s.reject(account, err)
	}
	s.persist(ctx, account, book)
	s.notifications.For(account).Success("Default address updated successfully")
	return nil
}

func (s *addressBookServiceImpl) reject(account string, err error) error {
	return reportError(s.notifications, account, err)
}

// load reads the stored book. Accounts with nothing stored get the demo
// addresses; an unreadable record is discarded the same way.
func (s *addressBookServiceImpl) load(ctx context.Context, account string) *addressbook.Book[models.Address] {
	data, err := s.store.Get(ctx, addressKey(account))
	if err != nil {
		s.logger.Error("Failed to read address book", zap.String("account", account), zap.Error(err))
		return addressbook.New(demoAddresses()...)
	}
	if data == nil {
		return addressbook.New(demoAddresses()...)
	}

	var items []models.Address
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("Discarding stored address book",
			zap.String("account", account),
			zap.Error(apperrors.Storage("Stored address book is corrupt", err)),
		)
		if delErr := s.store.Delete(ctx, addressKey(account)); delErr != nil {
			s.logger.Error("Failed to clear corrupt address book", zap.String("account", account), zap.Error(delErr))
		}
		return addressbook.New(demoAddresses()...)
	}
	return addressbook.New(items...)
}

func (s *addressBookServiceImpl) persist(ctx context.Context, account string, book *addressbook.Book[models.Address]) {
	if err := repository.SaveJSON(ctx, s.store, addressKey(account), book.All(), 0); err != nil {
		s.logger.Error("Failed to persist address book", zap.String("account", account), zap.Error(err))
	}
}
