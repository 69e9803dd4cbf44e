package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgresContainer(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "5432")

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	assert.NoError(t, err)

	schema := `
	CREATE TABLE IF NOT EXISTS users (
		user_id BIGINT PRIMARY KEY,
		username VARCHAR(100) NOT NULL DEFAULT '',
		wallet VARCHAR(42),
		auth_token TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS transactions (
		transaction_id UUID PRIMARY KEY,
		user_id BIGINT NOT NULL,
		direction VARCHAR(4) NOT NULL,
		source_amount DOUBLE PRECISION NOT NULL,
		source_currency VARCHAR(10) NOT NULL,
		dest_amount DOUBLE PRECISION NOT NULL,
		dest_currency VARCHAR(10) NOT NULL,
		reference TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);
	`
	_, err = db.Exec(schema)
	assert.NoError(t, err)

	teardown := func() {
		db.Close()
		container.Terminate(context.Background())
	}

	return db, teardown
}

func TestUserRepository_UpsertAndGet(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writer := NewUserWriteRepository(db)
	reader := NewUserReadRepository(db)
	ctx := context.Background()

	t.Run("unknown user reads as nil", func(t *testing.T) {
		user, err := reader.GetByUserID(ctx, 999)
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("upsert creates profile lazily", func(t *testing.T) {
		err := writer.Upsert(ctx, 42, "jane", "")
		assert.NoError(t, err)

		user, err := reader.GetByUserID(ctx, 42)
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "jane", user.Username)
		assert.False(t, user.HasWallet())
	})

	t.Run("wallet is written once", func(t *testing.T) {
		err := writer.Upsert(ctx, 42, "jane", "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
		assert.NoError(t, err)

		user, err := reader.GetByUserID(ctx, 42)
		assert.NoError(t, err)
		assert.Equal(t, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", user.Wallet.String)
	})

	t.Run("wallet never silently substituted", func(t *testing.T) {
		err := writer.Upsert(ctx, 42, "jane", "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
		assert.NoError(t, err)

		user, err := reader.GetByUserID(ctx, 42)
		assert.NoError(t, err)
		assert.Equal(t, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", user.Wallet.String,
			"existing wallet must survive a conflicting upsert")
	})

	t.Run("empty username keeps the stored one", func(t *testing.T) {
		err := writer.Upsert(ctx, 42, "", "")
		assert.NoError(t, err)

		user, err := reader.GetByUserID(ctx, 42)
		assert.NoError(t, err)
		assert.Equal(t, "jane", user.Username)
	})

	t.Run("token update leaves wallet alone", func(t *testing.T) {
		err := writer.UpdateToken(ctx, 42, "tok-refreshed")
		assert.NoError(t, err)

		user, err := reader.GetByUserID(ctx, 42)
		assert.NoError(t, err)
		assert.Equal(t, "tok-refreshed", user.Token())
		assert.Equal(t, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", user.Wallet.String)
	})
}
