package db

import (
	"context"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/entity"
)

func newTestDB(t *testing.T) *badger.DB {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func testAccount(id, currency, balance string) *entity.Account {
	return &entity.Account{
		ID:          id,
		Currency:    currency,
		Balance:     decimal.RequireFromString(balance),
		OpeningDate: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		BankID:      "1",
		UserID:      "1",
	}
}

func TestAccountRepositorySaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewBadgerAccountRepository(newTestDB(t))

	account := testAccount("acc-1", "BYN", "5000.00")
	require.NoError(t, repo.Save(ctx, account))

	got, err := repo.FindByID(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", got.ID)
	assert.Equal(t, "BYN", got.Currency)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("5000.00")))
	assert.True(t, got.OpeningDate.Equal(account.OpeningDate))
	assert.Nil(t, got.ClosingDate)
}

func TestAccountRepositoryFindMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewBadgerAccountRepository(newTestDB(t))

	_, err := repo.FindByID(ctx, "ghost")

	var notFound *entity.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestAccountRepositoryUpdateBalance(t *testing.T) {
	ctx := context.Background()
	repo := NewBadgerAccountRepository(newTestDB(t))
	require.NoError(t, repo.Save(ctx, testAccount("acc-1", "BYN", "1500.00")))

	updated, err := repo.UpdateBalance(ctx, "acc-1", decimal.RequireFromString("1515.00"))
	require.NoError(t, err)
	assert.Equal(t, "1515.00", updated.Balance.StringFixed(2))

	reloaded, err := repo.FindByID(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "1515.00", reloaded.Balance.StringFixed(2))
}

func TestAccountRepositoryUpdateBalanceMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewBadgerAccountRepository(newTestDB(t))

	_, err := repo.UpdateBalance(ctx, "ghost", decimal.NewFromInt(1))

	var notFound *entity.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestAccountRepositoryFindWithPositiveBalance(t *testing.T) {
	ctx := context.Background()
	repo := NewBadgerAccountRepository(newTestDB(t))

	require.NoError(t, repo.Save(ctx, testAccount("acc-1", "BYN", "100.00")))
	require.NoError(t, repo.Save(ctx, testAccount("acc-2", "USD", "0")))
	require.NoError(t, repo.Save(ctx, testAccount("acc-3", "EUR", "-5.00")))
	require.NoError(t, repo.Save(ctx, testAccount("acc-4", "BYN", "0.01")))

	accounts, err := repo.FindWithPositiveBalance(ctx)
	require.NoError(t, err)

	ids := make([]string, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}
	assert.ElementsMatch(t, []string{"acc-1", "acc-4"}, ids)
}
