package seed

import (
	"context"
	"testing"
	"time"

	"feastly/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const restaurantDataset = `[
	{
		"restaurantName": "Kopitiam Corner",
		"cashBalance": 4483.84,
		"openingHours": "Mon - Fri 9 am - 5 pm / Sat 10 am - 2 pm",
		"menu": [
			{"dishName": "Kaya Toast", "price": 2.80},
			{"dishName": "Kopi", "price": 1.60}
		]
	}
]`

const userDataset = `[
	{
		"id": 0,
		"name": "Edith Johnson",
		"cashBalance": 700.7,
		"purchaseHistory": [
			{
				"dishName": "Kaya Toast",
				"restaurantName": "Kopitiam Corner",
				"transactionAmount": 2.80,
				"transactionDate": "02/10/2020 04:09 AM"
			},
			{
				"dishName": "Unknown Dish",
				"restaurantName": "Kopitiam Corner",
				"transactionAmount": 9.99,
				"transactionDate": "03/11/2020 06:00 PM"
			}
		]
	}
]`

// staticLoader serves datasets from memory.
type staticLoader struct {
	files map[string][]byte
}

func (l *staticLoader) Load(ctx context.Context, path string) ([]byte, error) {
	return l.files[path], nil
}

type mockRestaurantRepo struct{ mock.Mock }

func (m *mockRestaurantRepo) GetAllWithMenus(ctx context.Context) ([]model.Restaurant, error) {
	args := m.Called(ctx)
	return nil, args.Error(1)
}

func (m *mockRestaurantRepo) GetByID(ctx context.Context, id int64) (*model.Restaurant, error) {
	args := m.Called(ctx, id)
	return nil, args.Error(1)
}

func (m *mockRestaurantRepo) Create(ctx context.Context, r *model.Restaurant) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockRestaurantRepo) Update(ctx context.Context, r *model.Restaurant) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockRestaurantRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRestaurantRepo) AdjustBalance(ctx context.Context, tx pgx.Tx, id int64, delta float64) error {
	args := m.Called(ctx, tx, id, delta)
	return args.Error(0)
}

type mockMenuRepo struct{ mock.Mock }

func (m *mockMenuRepo) GetByID(ctx context.Context, id int64) (*model.Menu, error) {
	args := m.Called(ctx, id)
	return nil, args.Error(1)
}

func (m *mockMenuRepo) GetByIDs(ctx context.Context, ids []int64) ([]model.Menu, error) {
	args := m.Called(ctx, ids)
	return nil, args.Error(1)
}

func (m *mockMenuRepo) Create(ctx context.Context, menu *model.Menu) error {
	args := m.Called(ctx, menu)
	return args.Error(0)
}

func (m *mockMenuRepo) Update(ctx context.Context, menu *model.Menu) error {
	args := m.Called(ctx, menu)
	return args.Error(0)
}

func (m *mockMenuRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) GetByName(ctx context.Context, name string) (*model.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) UpdateCredentials(ctx context.Context, name, passwordHash, email string) error {
	args := m.Called(ctx, name, passwordHash, email)
	return args.Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *mockUserRepo) AdjustBalance(ctx context.Context, tx pgx.Tx, id int64, delta float64) error {
	args := m.Called(ctx, tx, id, delta)
	return args.Error(0)
}

type mockPurchaseRepo struct{ mock.Mock }

func (m *mockPurchaseRepo) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPurchaseRepo) CreatePurchases(ctx context.Context, tx pgx.Tx, purchases []model.Purchase) error {
	args := m.Called(ctx, tx, purchases)
	return args.Error(0)
}

func (m *mockPurchaseRepo) GetByUser(ctx context.Context, userID int64) ([]model.Purchase, error) {
	args := m.Called(ctx, userID)
	return nil, args.Error(1)
}

type mockTx struct{ mock.Mock }

func (m *mockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *mockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *mockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *mockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *mockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *mockTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (m *mockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *mockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *mockTx) Conn() *pgx.Conn                                               { return nil }

func newTestSeeder(
	loader Loader,
	restaurantRepo *mockRestaurantRepo,
	menuRepo *mockMenuRepo,
	userRepo *mockUserRepo,
	purchaseRepo *mockPurchaseRepo,
) *Seeder {
	return NewSeeder(loader, restaurantRepo, menuRepo, userRepo, purchaseRepo, zerolog.Nop())
}

func TestSeeder_Run(t *testing.T) {
	ctx := context.Background()

	loader := &staticLoader{files: map[string][]byte{
		"restaurants.json": []byte(restaurantDataset),
		"users.json":       []byte(userDataset),
	}}

	restaurantRepo := new(mockRestaurantRepo)
	menuRepo := new(mockMenuRepo)
	userRepo := new(mockUserRepo)
	purchaseRepo := new(mockPurchaseRepo)
	tx := new(mockTx)

	// No seed owner yet.
	userRepo.On("GetByName", ctx, ownerName).Return(nil, nil)

	var seededHours string
	restaurantRepo.On("Create", ctx, mock.AnythingOfType("*model.Restaurant")).
		Run(func(args mock.Arguments) {
			r := args.Get(1).(*model.Restaurant)
			r.ID = 10
			seededHours = r.OpeningHours
		}).
		Return(nil)

	menuID := int64(100)
	menuRepo.On("Create", ctx, mock.AnythingOfType("*model.Menu")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.Menu).ID = menuID
			menuID++
		}).
		Return(nil)

	userRepo.On("Create", ctx, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.User).ID = 1
		}).
		Return(nil)

	var seededPurchases []model.Purchase
	purchaseRepo.On("BeginTx", ctx).Return(tx, nil)
	purchaseRepo.On("CreatePurchases", ctx, tx, mock.AnythingOfType("[]model.Purchase")).
		Run(func(args mock.Arguments) {
			seededPurchases = args.Get(2).([]model.Purchase)
		}).
		Return(nil)
	tx.On("Commit", ctx).Return(nil)

	seeder := newTestSeeder(loader, restaurantRepo, menuRepo, userRepo, purchaseRepo)

	err := seeder.Run(ctx, "restaurants.json", "users.json")

	require.NoError(t, err)

	// Free-form hours were canonicalised to the weekly slot encoding.
	assert.Equal(t,
		"09:00/17:00/09:00/17:00/09:00/17:00/09:00/17:00/09:00/17:00/10:00/14:00/00:00/00:00",
		seededHours)

	// The purchase of the unknown dish was dropped, the known one kept.
	require.Len(t, seededPurchases, 1)
	assert.Equal(t, "Kaya Toast", seededPurchases[0].DishName)
	assert.Equal(t, int64(100), seededPurchases[0].MenuID)
	assert.Equal(t,
		time.Date(2020, 2, 10, 4, 9, 0, 0, time.UTC),
		seededPurchases[0].TransactionDate)

	restaurantRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
	purchaseRepo.AssertExpectations(t)
}

func TestSeeder_Run_SkipsExistingRecords(t *testing.T) {
	ctx := context.Background()

	loader := &staticLoader{files: map[string][]byte{
		"restaurants.json": []byte(restaurantDataset),
		"users.json":       []byte(userDataset),
	}}

	restaurantRepo := new(mockRestaurantRepo)
	menuRepo := new(mockMenuRepo)
	userRepo := new(mockUserRepo)
	purchaseRepo := new(mockPurchaseRepo)

	// Seed owner already present from a previous run.
	userRepo.On("GetByName", ctx, ownerName).
		Return(&model.User{ID: 5, Name: ownerName}, nil)
	restaurantRepo.On("Create", ctx, mock.AnythingOfType("*model.Restaurant")).
		Return(model.ErrNameTaken)
	userRepo.On("Create", ctx, mock.AnythingOfType("*model.User")).
		Return(model.ErrNameTaken)

	seeder := newTestSeeder(loader, restaurantRepo, menuRepo, userRepo, purchaseRepo)

	err := seeder.Run(ctx, "restaurants.json", "users.json")

	require.NoError(t, err)
	menuRepo.AssertNotCalled(t, "Create")
	purchaseRepo.AssertNotCalled(t, "BeginTx")
}
