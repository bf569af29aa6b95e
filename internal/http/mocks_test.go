package httpapi_test

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/Al-Ghoul/KarasChan/internal/cart"
	"github.com/Al-Ghoul/KarasChan/internal/catalog"
	"github.com/Al-Ghoul/KarasChan/internal/order"
	"github.com/Al-Ghoul/KarasChan/internal/user"
)

type userRepoMock struct {
	CreateFunc     func(ctx context.Context, u *user.User) error
	GetByEmailFunc func(ctx context.Context, email string) (*user.User, error)
}

func (m *userRepoMock) Create(ctx context.Context, u *user.User) error {
	return m.CreateFunc(ctx, u)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

type cartRepoMock struct {
	GetActiveCartFunc      func(ctx context.Context, userID string) (*cart.Cart, error)
	CreateCartFunc         func(ctx context.Context, userID string) (*cart.Cart, error)
	AddItemFunc            func(ctx context.Context, cartID, productID int64, quantity int) (*cart.Item, error)
	GetItemFunc            func(ctx context.Context, cartID, itemID int64) (*cart.Item, error)
	ListItemsFunc          func(ctx context.Context, cartID int64, limit, offset int) ([]cart.Item, error)
	CountItemsFunc         func(ctx context.Context, cartID int64) (int, error)
	DeleteItemFunc         func(ctx context.Context, cartID, itemID int64) (*cart.Item, error)
	UpdateItemQuantityFunc func(ctx context.Context, cartID, itemID int64, quantity int) (*cart.Item, error)
	ItemsForCheckoutFunc   func(ctx context.Context, userID string) (int64, []cart.CheckoutLine, error)
	RetireTxFunc           func(ctx context.Context, tx pgx.Tx, cartID int64, status cart.Status) error
}

func (m *cartRepoMock) GetActiveCart(ctx context.Context, userID string) (*cart.Cart, error) {
	return m.GetActiveCartFunc(ctx, userID)
}

func (m *cartRepoMock) CreateCart(ctx context.Context, userID string) (*cart.Cart, error) {
	return m.CreateCartFunc(ctx, userID)
}

func (m *cartRepoMock) AddItem(ctx context.Context, cartID, productID int64, quantity int) (*cart.Item, error) {
	return m.AddItemFunc(ctx, cartID, productID, quantity)
}

func (m *cartRepoMock) GetItem(ctx context.Context, cartID, itemID int64) (*cart.Item, error) {
	return m.GetItemFunc(ctx, cartID, itemID)
}

func (m *cartRepoMock) ListItems(ctx context.Context, cartID int64, limit, offset int) ([]cart.Item, error) {
	return m.ListItemsFunc(ctx, cartID, limit, offset)
}

func (m *cartRepoMock) CountItems(ctx context.Context, cartID int64) (int, error) {
	return m.CountItemsFunc(ctx, cartID)
}

func (m *cartRepoMock) DeleteItem(ctx context.Context, cartID, itemID int64) (*cart.Item, error) {
	return m.DeleteItemFunc(ctx, cartID, itemID)
}

func (m *cartRepoMock) UpdateItemQuantity(ctx context.Context, cartID, itemID int64, quantity int) (*cart.Item, error) {
	return m.UpdateItemQuantityFunc(ctx, cartID, itemID, quantity)
}

func (m *cartRepoMock) ItemsForCheckout(ctx context.Context, userID string) (int64, []cart.CheckoutLine, error) {
	return m.ItemsForCheckoutFunc(ctx, userID)
}

func (m *cartRepoMock) RetireTx(ctx context.Context, tx pgx.Tx, cartID int64, status cart.Status) error {
	return m.RetireTxFunc(ctx, tx, cartID, status)
}

type catalogRepoMock struct {
	GetFunc   func(ctx context.Context, productID int64) (*catalog.Product, error)
	ListFunc  func(ctx context.Context, limit, offset int) ([]catalog.Product, error)
	CountFunc func(ctx context.Context) (int, error)
}

func (m *catalogRepoMock) Get(ctx context.Context, productID int64) (*catalog.Product, error) {
	return m.GetFunc(ctx, productID)
}

func (m *catalogRepoMock) List(ctx context.Context, limit, offset int) ([]catalog.Product, error) {
	return m.ListFunc(ctx, limit, offset)
}

func (m *catalogRepoMock) Count(ctx context.Context) (int, error) {
	return m.CountFunc(ctx)
}

type orderRepoMock struct {
	CreateTxFunc    func(ctx context.Context, tx pgx.Tx, o *order.Order) error
	GetByUserFunc   func(ctx context.Context, orderID int64, userID string) (*order.Order, error)
	ListByUserFunc  func(ctx context.Context, userID string, status *order.Status, limit, offset int) ([]order.Order, error)
	CountByUserFunc func(ctx context.Context, userID string, status *order.Status) (int, error)
	ListItemsFunc   func(ctx context.Context, orderID int64, limit, offset int) ([]order.Item, error)
	CountItemsFunc  func(ctx context.Context, orderID int64) (int, error)
}

func (m *orderRepoMock) CreateTx(ctx context.Context, tx pgx.Tx, o *order.Order) error {
	return m.CreateTxFunc(ctx, tx, o)
}

func (m *orderRepoMock) GetByUser(ctx context.Context, orderID int64, userID string) (*order.Order, error) {
	return m.GetByUserFunc(ctx, orderID, userID)
}

func (m *orderRepoMock) ListByUser(ctx context.Context, userID string, status *order.Status, limit, offset int) ([]order.Order, error) {
	return m.ListByUserFunc(ctx, userID, status, limit, offset)
}

func (m *orderRepoMock) CountByUser(ctx context.Context, userID string, status *order.Status) (int, error) {
	return m.CountByUserFunc(ctx, userID, status)
}

func (m *orderRepoMock) ListItems(ctx context.Context, orderID int64, limit, offset int) ([]order.Item, error) {
	return m.ListItemsFunc(ctx, orderID, limit, offset)
}

func (m *orderRepoMock) CountItems(ctx context.Context, orderID int64) (int, error) {
	return m.CountItemsFunc(ctx, orderID)
}
