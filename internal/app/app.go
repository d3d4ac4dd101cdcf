package app

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mkarpenko/storefront/internal/config"
	"github.com/mkarpenko/storefront/internal/domain"
	"github.com/mkarpenko/storefront/internal/memstore"
	"github.com/mkarpenko/storefront/internal/postgres"
	"github.com/mkarpenko/storefront/internal/service"
	"github.com/mkarpenko/storefront/pkg/kafka"
	"github.com/mkarpenko/storefront/pkg/logger"
	"github.com/mkarpenko/storefront/pkg/metrics"
	"github.com/shopspring/decimal"
)

// repository is what both storage backends provide. The services declare
// their own narrower interfaces; this union only exists so either backend
// can be plugged in whole.
type repository interface {
	CreateUser(name, email, username, hashedPassword string) (int64, error)
	UserByUsername(username string) (*domain.User, error)

	Balance(userID int64) (decimal.Decimal, error)
	Credit(userID int64, amount decimal.Decimal, kind domain.TransactionKind) (decimal.Decimal, error)
	Debit(userID int64, amount decimal.Decimal, kind domain.TransactionKind) (decimal.Decimal, error)
	Transactions(userID int64) ([]domain.WalletTransaction, error)

	Products(brandID int64) ([]domain.Product, error)
	Product(id int64) (*domain.Product, error)
	Brands() ([]domain.Brand, error)
	Shops() ([]domain.Shop, error)

	CreateCartItem(item domain.CartItem) (*domain.CartItem, error)
	CartItem(id int64) (*domain.CartItem, error)
	UpdateCartItem(item domain.CartItem) (*domain.CartItem, error)
	DeleteCartItem(id int64) error
	CartLines(userID int64) ([]domain.CartLine, error)
	ClearCart(userID int64) error

	CreateOrders(orders []domain.Order) ([]domain.Order, error)
	Orders(userID int64) ([]domain.Order, error)
	Order(id int64) (*domain.Order, error)
	UpdateOrderStatus(id int64, status domain.OrderStatus, paid bool) (*domain.Order, error)

	CreateReturn(ret domain.Return) (*domain.Return, error)
	Return(id int64) (*domain.Return, error)
	Returns(userID int64) ([]domain.Return, error)
	ActiveReturnExists(orderID int64) (bool, error)
	UpdateReturnStatus(id int64, status domain.ReturnStatus) (*domain.Return, error)

	Close() error
}

type App struct {
	Config  *config.Config
	Store   repository
	Events  *service.EventPublisher
	Metrics *metrics.ServerMetrics
}

func New(cfg *config.Config) (*App, error) {
	store, err := initStore(cfg)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:  cfg,
		Store:   store,
		Events:  service.NewEventPublisher(kafka.NewClient(cfg.KafkaBrokers), cfg.OrderEventsTopic),
		Metrics: metrics.NewServerMetrics("storefront"),
	}, nil
}

func initStore(cfg *config.Config) (repository, error) {
	if cfg.DatabaseURL == "" {
		logger.Log.Warn("no database configured, using the in-memory store")
		store := memstore.New()
		if err := store.Seed(); err != nil {
			return nil, err
		}
		return store, nil
	}

	db, err := initDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	store := postgres.New(db)
	if err = store.Bootstrap(); err != nil {
		return nil, err
	}

	return store, nil
}

func initDB(url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(time.Hour)

	if err = db.Ping(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("error closing database after ping failure: %w", closeErr)
		}
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	return db, nil
}

func (app *App) Close() {
	if err := app.Events.Close(); err != nil {
		logger.Log.Error("error closing event publisher", logger.Error(err))
	}

	if err := app.Store.Close(); err != nil {
		logger.Log.Error("error closing store", logger.Error(err))
	}
}
