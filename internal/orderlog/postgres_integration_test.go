//go:build integration

package orderlog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestPostgres_AppendAgainstContainer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "orders",
				"POSTGRES_PASSWORD": "orders",
				"POSTGRES_DB":       "orders",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer func() { _ = ctr.Terminate(context.Background()) }()

	endpoint, err := ctr.Endpoint(ctx, "")
	require.NoError(t, err)
	dsn := fmt.Sprintf("postgres://orders:orders@%s/orders?sslmode=disable", endpoint)

	l, err := Open(ctx, Options{Kind: "postgres", PostgresDSN: dsn})
	require.NoError(t, err)
	pg := l.(*Postgres)
	defer pg.Close()

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, pg.Append(ctx, Record{ID: 7, UserID: 1, ProductID: 10, Quantity: 3, PlacedAt: at}))
	require.NoError(t, pg.Append(ctx, Record{ID: 7, UserID: 1, ProductID: 10, Quantity: 1, PlacedAt: at}))

	var n, qty int
	require.NoError(t, pg.db.QueryRow(ctx, `SELECT COUNT(*), SUM(quantity) FROM orders WHERE id = $1`, 7).Scan(&n, &qty))
	assert.Equal(t, 2, n)
	assert.Equal(t, 4, qty)
}
