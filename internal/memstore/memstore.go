// Package memstore is the in-memory storage backend. It backs the service
// when no database is configured and serves as the repository used by the
// service tests. All operations are individually atomic under one mutex;
// multi-step business sequences are serialized per user by the services.
package memstore

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mkarpenko/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

type MemStore struct {
	mu sync.RWMutex

	users        map[int64]domain.User
	brands       map[int64]domain.Brand
	products     map[int64]domain.Product
	shops        map[int64]domain.Shop
	cartItems    map[int64]domain.CartItem
	orders       map[int64]domain.Order
	returns      map[int64]domain.Return
	transactions map[int64][]domain.WalletTransaction

	nextUserID     int64
	nextBrandID    int64
	nextProductID  int64
	nextShopID     int64
	nextCartItemID int64
	nextOrderID    int64
	nextReturnID   int64
}

func New() *MemStore {
	return &MemStore{
		users:        map[int64]domain.User{},
		brands:       map[int64]domain.Brand{},
		products:     map[int64]domain.Product{},
		shops:        map[int64]domain.Shop{},
		cartItems:    map[int64]domain.CartItem{},
		orders:       map[int64]domain.Order{},
		returns:      map[int64]domain.Return{},
		transactions: map[int64][]domain.WalletTransaction{},
	}
}

func (m *MemStore) Close() error {
	return nil
}

// Users

func (m *MemStore) CreateUser(name, email, username, hashedPassword string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email || u.Username == username {
			return 0, domain.ErrUserExists
		}
	}

	m.nextUserID++
	user := domain.User{
		ID:            m.nextUserID,
		Name:          name,
		Email:         email,
		Username:      username,
		Password:      hashedPassword,
		WalletBalance: decimal.Zero,
		CreatedAt:     time.Now(),
	}
	m.users[user.ID] = user

	return user.ID, nil
}

func (m *MemStore) UserByUsername(username string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}

	return nil, domain.ErrIncorrectCredentials
}

// Wallet

func (m *MemStore) Balance(userID int64) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[userID]
	if !ok {
		return decimal.Zero, domain.ErrUserNotFound
	}

	return user.WalletBalance, nil
}

func (m *MemStore) Credit(userID int64, amount decimal.Decimal, kind domain.TransactionKind) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[userID]
	if !ok {
		return decimal.Zero, domain.ErrUserNotFound
	}

	user.WalletBalance = user.WalletBalance.Add(amount)
	m.users[userID] = user
	m.record(userID, amount, kind)

	return user.WalletBalance, nil
}

func (m *MemStore) Debit(userID int64, amount decimal.Decimal, kind domain.TransactionKind) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[userID]
	if !ok {
		return decimal.Zero, domain.ErrUserNotFound
	}

	if user.WalletBalance.LessThan(amount) {
		return decimal.Zero, domain.ErrInsufficientFunds
	}

	user.WalletBalance = user.WalletBalance.Sub(amount)
	m.users[userID] = user
	m.record(userID, amount.Neg(), kind)

	return user.WalletBalance, nil
}

func (m *MemStore) Transactions(userID int64) ([]domain.WalletTransaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.users[userID]; !ok {
		return nil, domain.ErrUserNotFound
	}

	txs := make([]domain.WalletTransaction, len(m.transactions[userID]))
	copy(txs, m.transactions[userID])

	return txs, nil
}

func (m *MemStore) record(userID int64, amount decimal.Decimal, kind domain.TransactionKind) {
	m.transactions[userID] = append(m.transactions[userID], domain.WalletTransaction{
		ID:        uuid.NewString(),
		UserID:    userID,
		Amount:    amount,
		Kind:      kind,
		CreatedAt: time.Now(),
	})
}

// Catalog

func (m *MemStore) CreateBrand(brand domain.Brand) (*domain.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextBrandID++
	brand.ID = m.nextBrandID
	brand.CreatedAt = time.Now()
	m.brands[brand.ID] = brand

	return &brand, nil
}

func (m *MemStore) CreateProduct(product domain.Product) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextProductID++
	product.ID = m.nextProductID
	product.CreatedAt = time.Now()
	m.products[product.ID] = product

	return &product, nil
}

func (m *MemStore) CreateShop(shop domain.Shop) (*domain.Shop, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextShopID++
	shop.ID = m.nextShopID
	shop.CreatedAt = time.Now()
	m.shops[shop.ID] = shop

	return &shop, nil
}

func (m *MemStore) UpdateProduct(product domain.Product) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[product.ID]; !ok {
		return nil, domain.ErrProductNotFound
	}
	m.products[product.ID] = product

	return &product, nil
}

func (m *MemStore) Products(brandID int64) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var products []domain.Product
	for _, p := range m.products {
		if brandID != 0 && p.BrandID != brandID {
			continue
		}
		products = append(products, p)
	}
	sortByID(products, func(p domain.Product) int64 { return p.ID })

	return products, nil
}

func (m *MemStore) Product(id int64) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	product, ok := m.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}

	return &product, nil
}

func (m *MemStore) Brands() ([]domain.Brand, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var brands []domain.Brand
	for _, b := range m.brands {
		brands = append(brands, b)
	}
	sortByID(brands, func(b domain.Brand) int64 { return b.ID })

	return brands, nil
}

func (m *MemStore) Shops() ([]domain.Shop, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var shops []domain.Shop
	for _, s := range m.shops {
		shops = append(shops, s)
	}
	sortByID(shops, func(s domain.Shop) int64 { return s.ID })

	return shops, nil
}

// Cart

func (m *MemStore) CreateCartItem(item domain.CartItem) (*domain.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextCartItemID++
	item.ID = m.nextCartItemID
	item.CreatedAt = time.Now()
	m.cartItems[item.ID] = item

	return &item, nil
}

func (m *MemStore) CartItem(id int64) (*domain.CartItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.cartItems[id]
	if !ok {
		return nil, domain.ErrCartItemNotFound
	}

	return &item, nil
}

func (m *MemStore) UpdateCartItem(item domain.CartItem) (*domain.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.cartItems[item.ID]; !ok {
		return nil, domain.ErrCartItemNotFound
	}
	m.cartItems[item.ID] = item

	return &item, nil
}

func (m *MemStore) DeleteCartItem(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.cartItems[id]; !ok {
		return domain.ErrCartItemNotFound
	}
	delete(m.cartItems, id)

	return nil
}

// CartLines joins product and shop into each line at read time; nothing is
// denormalized into the stored item.
func (m *MemStore) CartLines(userID int64) ([]domain.CartLine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var lines []domain.CartLine
	for _, item := range m.cartItems {
		if item.UserID != userID {
			continue
		}

		product, ok := m.products[item.ProductID]
		if !ok {
			return nil, domain.ErrProductNotFound
		}

		lines = append(lines, domain.CartLine{
			CartItem: item,
			Product:  product,
			Shop:     m.shops[item.ShopID],
		})
	}
	sortByID(lines, func(l domain.CartLine) int64 { return l.ID })

	return lines, nil
}

func (m *MemStore) ClearCart(userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, item := range m.cartItems {
		if item.UserID == userID {
			delete(m.cartItems, id)
		}
	}

	return nil
}

// Orders

func (m *MemStore) CreateOrders(orders []domain.Order) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	created := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		m.nextOrderID++
		order.ID = m.nextOrderID
		order.CreatedAt = time.Now()
		m.orders[order.ID] = order
		created = append(created, order)
	}

	return created, nil
}

func (m *MemStore) Orders(userID int64) ([]domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var orders []domain.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	sortByID(orders, func(o domain.Order) int64 { return o.ID })

	return orders, nil
}

func (m *MemStore) Order(id int64) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	order, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}

	return &order, nil
}

func (m *MemStore) UpdateOrderStatus(id int64, status domain.OrderStatus, paid bool) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}

	order.Status = status
	order.Paid = paid
	m.orders[id] = order

	return &order, nil
}

// Returns

func (m *MemStore) CreateReturn(ret domain.Return) (*domain.Return, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextReturnID++
	ret.ID = m.nextReturnID
	ret.CreatedAt = time.Now()
	m.returns[ret.ID] = ret

	return &ret, nil
}

func (m *MemStore) Return(id int64) (*domain.Return, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ret, ok := m.returns[id]
	if !ok {
		return nil, domain.ErrReturnNotFound
	}

	return &ret, nil
}

func (m *MemStore) Returns(userID int64) ([]domain.Return, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var returns []domain.Return
	for _, ret := range m.returns {
		order, ok := m.orders[ret.OrderID]
		if !ok || order.UserID != userID {
			continue
		}
		returns = append(returns, ret)
	}
	sortByID(returns, func(r domain.Return) int64 { return r.ID })

	return returns, nil
}

func (m *MemStore) ActiveReturnExists(orderID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, ret := range m.returns {
		if ret.OrderID == orderID && ret.Status != domain.ReturnStatusRejected {
			return true, nil
		}
	}

	return false, nil
}

func (m *MemStore) UpdateReturnStatus(id int64, status domain.ReturnStatus) (*domain.Return, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ret, ok := m.returns[id]
	if !ok {
		return nil, domain.ErrReturnNotFound
	}

	ret.Status = status
	m.returns[id] = ret

	return &ret, nil
}

func sortByID[T any](items []T, id func(T) int64) {
	sort.Slice(items, func(i, j int) bool {
		return id(items[i]) < id(items[j])
	})
}
