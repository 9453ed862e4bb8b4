package repo

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/SergeyBogomolovv/order-ledger/internal/entities"
	"github.com/SergeyBogomolovv/order-ledger/pkg/trm"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	plain := errors.New("syntax error")

	testCases := []struct {
		name string
		err  error
		want error
	}{
		{name: "unique violation", err: &pq.Error{Code: "23505"}, want: entities.ErrStoreConflict},
		{name: "serialization failure", err: &pq.Error{Code: "40001"}, want: entities.ErrStoreConflict},
		{name: "deadlock", err: &pq.Error{Code: "40P01"}, want: entities.ErrStoreConflict},
		{name: "connection failure", err: &pq.Error{Code: "08006"}, want: entities.ErrStoreUnavailable},
		{name: "admin shutdown", err: &pq.Error{Code: "57P01"}, want: entities.ErrStoreUnavailable},
		{name: "bad conn", err: fmt.Errorf("query: %w", driver.ErrBadConn), want: entities.ErrStoreUnavailable},
		{name: "other pq error", err: &pq.Error{Code: "42601"}, want: nil},
		{name: "plain", err: plain, want: nil},
		{name: "deadline", err: context.DeadlineExceeded, want: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := MapError(tc.err)
			assert.ErrorIs(t, got, tc.err)
			if tc.want != nil {
				assert.ErrorIs(t, got, tc.want)
				assert.True(t, entities.IsRetryable(got))
				return
			}
			assert.False(t, entities.IsRetryable(got))
		})
	}

	assert.NoError(t, MapError(nil))
}

func TestMapError_UnreachableDatabaseIsRetryable(t *testing.T) {
	// nothing listens on port 1
	db, err := sqlx.Open("postgres", "host=127.0.0.1 port=1 user=ledger dbname=ledger sslmode=disable connect_timeout=1")
	require.NoError(t, err)
	defer db.Close()

	called := false
	manager := trm.NewManager(db, trm.WithErrorMapper(MapError))
	err = manager.Do(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.False(t, called)
	assert.ErrorIs(t, err, entities.ErrStoreUnavailable)
	assert.True(t, entities.IsRetryable(err))
}
