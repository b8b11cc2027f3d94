package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"feastly/internal/auth"
	"feastly/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name TEXT UNIQUE NOT NULL,
			email TEXT,
			password_hash TEXT NOT NULL,
			cash_balance DECIMAL(12, 2) NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS restaurants (
			id BIGSERIAL PRIMARY KEY,
			restaurant_name TEXT UNIQUE NOT NULL,
			opening_hours TEXT NOT NULL,
			cash_balance DECIMAL(12, 2) NOT NULL DEFAULT 0,
			owner_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS menus (
			id BIGSERIAL PRIMARY KEY,
			restaurant_id BIGINT NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			dish_name TEXT NOT NULL,
			price DECIMAL(10, 2) NOT NULL CHECK (price >= 0)
		);

		CREATE TABLE IF NOT EXISTS purchases (
			id UUID PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			menu_id BIGINT NOT NULL REFERENCES menus(id) ON DELETE CASCADE,
			dish_name TEXT NOT NULL,
			amount DECIMAL(10, 2) NOT NULL,
			transaction_date TIMESTAMPTZ NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_menus_restaurant_id ON menus(restaurant_id);
		CREATE INDEX IF NOT EXISTS idx_purchases_user_id ON purchases(user_id);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedUser inserts a user with a bcrypt-hashed password and returns its id.
func SeedUser(t *testing.T, pool *pgxpool.Pool, name, password string, balance float64) int64 {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	var id int64
	err = pool.QueryRow(context.Background(),
		"INSERT INTO users (name, password_hash, cash_balance) VALUES ($1, $2, $3) RETURNING id",
		name, hash, balance,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed user %s: %v", name, err)
	}

	return id
}

// SeedRestaurants inserts a small dataset of restaurants with menus owned by
// ownerID and returns the restaurants in insertion order.
func SeedRestaurants(t *testing.T, pool *pgxpool.Pool, ownerID int64) []model.Restaurant {
	t.Helper()

	ctx := context.Background()

	const weekdays = "09:00/17:00/09:00/17:00/09:00/17:00/09:00/17:00/09:00/17:00/00:00/00:00/00:00/00:00"
	const allWeek = "08:00/22:00/08:00/22:00/08:00/22:00/08:00/22:00/08:00/22:00/08:00/22:00/08:00/22:00"

	restaurants := []model.Restaurant{
		{
			Name:         "Economic Bee Hon",
			OpeningHours: allWeek,
			Menus: []model.Menu{
				{DishName: "Fried Bee Hon", Price: 3.50},
				{DishName: "Laksa", Price: 5.20},
			},
		},
		{
			Name:         "Golden Palace",
			OpeningHours: weekdays,
			Menus: []model.Menu{
				{DishName: "Peking Duck", Price: 48.00},
			},
		},
		{
			Name:         "Kopitiam Corner",
			OpeningHours: allWeek,
			Menus: []model.Menu{
				{DishName: "Kaya Toast", Price: 2.80},
				{DishName: "Kopi", Price: 1.60},
			},
		},
	}

	for i := range restaurants {
		r := &restaurants[i]
		r.OwnerID = ownerID

		err := pool.QueryRow(ctx,
			"INSERT INTO restaurants (restaurant_name, opening_hours, cash_balance, owner_id) VALUES ($1, $2, $3, $4) RETURNING id",
			r.Name, r.OpeningHours, r.CashBalance, r.OwnerID,
		).Scan(&r.ID)
		if err != nil {
			t.Fatalf("failed to seed restaurant %s: %v", r.Name, err)
		}

		for j := range r.Menus {
			m := &r.Menus[j]
			m.RestaurantID = r.ID

			err := pool.QueryRow(ctx,
				"INSERT INTO menus (restaurant_id, dish_name, price) VALUES ($1, $2, $3) RETURNING id",
				m.RestaurantID, m.DishName, m.Price,
			).Scan(&m.ID)
			if err != nil {
				t.Fatalf("failed to seed dish %s: %v", m.DishName, err)
			}
		}
	}

	return restaurants
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"purchases", "menus", "restaurants", "users"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
