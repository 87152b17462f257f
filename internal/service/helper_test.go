package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/quote"
	"finance-tracker/internal/repository/sqlite"
)

// fakeQuotes serves fixed prices keyed by upper-case symbol.
type fakeQuotes struct {
	prices map[string]string
	calls  int
}

func (f *fakeQuotes) Lookup(_ context.Context, symbol string) (*domain.Quote, error) {
	f.calls++
	sym := strings.ToUpper(symbol)
	price, ok := f.prices[sym]
	if !ok {
		return nil, quote.ErrUnavailable
	}
	return &domain.Quote{Symbol: sym, Name: sym + " Inc.", Price: decimal.RequireFromString(price)}, nil
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "finance.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Migrate(context.Background(), db))
	return sqlite.NewStore(db)
}

func newTestUserService(store *sqlite.Store, startingCash string) *userService {
	return &userService{
		store:        store,
		startingCash: decimal.RequireFromString(startingCash),
		hashCost:     bcrypt.MinCost,
	}
}

func registerUser(t *testing.T, store *sqlite.Store, cash string) *domain.User {
	t.Helper()
	user, err := newTestUserService(store, cash).Register(context.Background(), "alice", "Passw0rd!", "Passw0rd!")
	require.NoError(t, err)
	return user
}
