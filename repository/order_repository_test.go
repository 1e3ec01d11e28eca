package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tebele-dev/tailor-made-couture/models"
	"github.com/tebele-dev/tailor-made-couture/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type OrderRepositoryTestSuite struct {
	suite.Suite
	mock sqlmock.Sqlmock
	repo repository.OrderRepository
}

func (s *OrderRepositoryTestSuite) SetupTest() {
	db, mock, err := sqlmock.New()
	s.Require().NoError(err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	s.Require().NoError(err)

	s.mock = mock
	s.repo = repository.NewGormOrderRepository(gormDB)
}

func (s *OrderRepositoryTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestOrderRepository(t *testing.T) {
	suite.Run(t, new(OrderRepositoryTestSuite))
}

func (s *OrderRepositoryTestSuite) TestCreate() {
	order := &models.Order{
		ID:          uuid.New(),
		OrderNumber: "ORD-1700000000000",
		AccountKey:  "customer@tailormade.com",
		UserID:      "u_1700000000000",
		Subtotal:    decimal.RequireFromString("250.00"),
		Shipping:    decimal.RequireFromString("15.00"),
		Tax:         decimal.RequireFromString("21.20"),
		Total:       decimal.RequireFromString("286.20"),
		ShipTo:      "John Doe, 123 Main St, New York, NY 10001",
		Status:      models.OrderStatusPlaced,
		Items:       []models.OrderLine{{ProductID: "1", Name: "Classic Navy Suit", Quantity: 1, Price: decimal.RequireFromString("599.99")}},
	}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "orders"`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	s.mock.ExpectCommit()

	s.NoError(s.repo.Create(context.Background(), order))
}

func (s *OrderRepositoryTestSuite) TestFindByAccount() {
	now := time.Now()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "orders"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows([]string{"id", "order_number", "account_key", "user_id", "subtotal", "shipping", "tax", "total", "ship_to", "payment_card", "status", "items", "created_at", "updated_at"}).
		AddRow(uuid.NewString(), "ORD-1", "customer@tailormade.com", "u_1", "250.00", "15.00", "21.20", "286.20", "John Doe", "**** **** **** 1234", "placed",
			[]byte(`[{"product_id":"1","name":"Classic Navy Suit","quantity":1,"price":"599.99"}]`), now, now)
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders"`)).
		WillReturnRows(rows)

	orders, total, err := s.repo.FindByAccount(context.Background(), "customer@tailormade.com", 1, 10)
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(orders, 1)
	s.Equal("ORD-1", orders[0].OrderNumber)
	s.Equal("286.2", orders[0].Total.String())
	s.Require().Len(orders[0].Items, 1)
	s.Equal("Classic Navy Suit", orders[0].Items[0].Name)
}

func (s *OrderRepositoryTestSuite) TestFindByOrderNumber_NotFound() {
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders"`)).
		WillReturnRows(sqlmock.NewRows([]string{}))

	o, err := s.repo.FindByOrderNumber(context.Background(), "ORD-404")
	s.ErrorIs(err, gorm.ErrRecordNotFound)
	s.Nil(o)
}

func TestMemoryOrderRepository_Pagination(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryOrderRepository()
	base := time.Now()
	for i := 0; i < 3; i++ {
		_ = repo.Create(ctx, &models.Order{
			OrderNumber: "ORD-" + string(rune('a'+i)),
			AccountKey:  "customer@tailormade.com",
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
	}
	_ = repo.Create(ctx, &models.Order{OrderNumber: "ORD-other", AccountKey: "someone@else.com"})

	page, total, err := repo.FindByAccount(ctx, "customer@tailormade.com", 1, 2)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []string{"ORD-c", "ORD-b"}, []string{page[0].OrderNumber, page[1].OrderNumber})

	page, _, _ = repo.FindByAccount(ctx, "customer@tailormade.com", 3, 2)
	assert.Empty(t, page)

	found, err := repo.FindByOrderNumber(ctx, "ORD-other")
	assert.NoError(t, err)
	assert.Equal(t, "someone@else.com", found.AccountKey)

	_, err = repo.FindByOrderNumber(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
