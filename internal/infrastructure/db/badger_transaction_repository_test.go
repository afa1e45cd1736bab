package db

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/entity"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/repository"
)

func testTransaction(txType entity.TransactionType, sender, recipient, sum string, date time.Time) *entity.Transaction {
	amount := decimal.RequireFromString(sum)
	return &entity.Transaction{
		ID:                 uuid.NewString(),
		Date:               date,
		Type:               txType,
		SenderAccountID:    sender,
		RecipientAccountID: recipient,
		Sum:                amount,
		SumRecipient:       amount,
	}
}

func TestTransactionSaveAppliesBalancesAtomically(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	accounts := NewBadgerAccountRepository(db)
	transactions := NewBadgerTransactionRepository(db)

	require.NoError(t, accounts.Save(ctx, testAccount("sender", "BYN", "500.00")))
	require.NoError(t, accounts.Save(ctx, testAccount("recipient", "BYN", "100.00")))

	record := testTransaction(entity.Transfer, "sender", "recipient", "200.00", time.Now())
	saved, err := transactions.Save(ctx, record, []repository.BalanceUpdate{
		{AccountID: "sender", NewBalance: decimal.RequireFromString("300.00")},
		{AccountID: "recipient", NewBalance: decimal.RequireFromString("300.00")},
	})
	require.NoError(t, err)
	assert.Equal(t, record.ID, saved.ID)

	sender, err := accounts.FindByID(ctx, "sender")
	require.NoError(t, err)
	assert.Equal(t, "300.00", sender.Balance.StringFixed(2))

	recipient, err := accounts.FindByID(ctx, "recipient")
	require.NoError(t, err)
	assert.Equal(t, "300.00", recipient.Balance.StringFixed(2))

	reloaded, err := transactions.FindByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.Transfer, reloaded.Type)
	assert.Equal(t, "200.00", reloaded.Sum.StringFixed(2))
}

func TestTransactionSaveAbortsWhollyOnBadUpdate(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	accounts := NewBadgerAccountRepository(db)
	transactions := NewBadgerTransactionRepository(db)

	require.NoError(t, accounts.Save(ctx, testAccount("sender", "BYN", "500.00")))

	record := testTransaction(entity.Transfer, "sender", "ghost", "200.00", time.Now())
	_, err := transactions.Save(ctx, record, []repository.BalanceUpdate{
		{AccountID: "sender", NewBalance: decimal.RequireFromString("300.00")},
		{AccountID: "ghost", NewBalance: decimal.RequireFromString("300.00")},
	})

	var notFound *entity.NotFoundError
	require.ErrorAs(t, err, &notFound)

	// The sender update rolled back with the rest of the unit
	sender, err := accounts.FindByID(ctx, "sender")
	require.NoError(t, err)
	assert.Equal(t, "500.00", sender.Balance.StringFixed(2))

	_, err = transactions.FindByID(ctx, record.ID)
	assert.ErrorAs(t, err, &notFound)
}

func TestFindByAccountAndPeriod(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	accounts := NewBadgerAccountRepository(db)
	transactions := NewBadgerTransactionRepository(db)

	require.NoError(t, accounts.Save(ctx, testAccount("acc-1", "BYN", "1000.00")))
	require.NoError(t, accounts.Save(ctx, testAccount("acc-2", "BYN", "1000.00")))

	base := time.Date(2023, time.August, 1, 12, 0, 0, 0, time.UTC)
	early := testTransaction(entity.Replenishment, "", "acc-1", "10.00", base.AddDate(0, 0, -40))
	first := testTransaction(entity.Replenishment, "", "acc-1", "20.00", base)
	second := testTransaction(entity.Transfer, "acc-1", "acc-2", "30.00", base.AddDate(0, 0, 5))
	late := testTransaction(entity.Withdrawal, "", "acc-1", "40.00", base.AddDate(0, 2, 0))

	for _, record := range []*entity.Transaction{second, early, late, first} {
		_, err := transactions.Save(ctx, record, nil)
		require.NoError(t, err)
	}

	got, err := transactions.FindByAccountAndPeriod(ctx, "acc-1",
		base.AddDate(0, 0, -1), base.AddDate(0, 1, 0))
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)

	// The transfer is indexed under both parties
	other, err := transactions.FindByAccountAndPeriod(ctx, "acc-2",
		base.AddDate(0, 0, -1), base.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, second.ID, other[0].ID)
}

func TestSumSpentAndReceived(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	accounts := NewBadgerAccountRepository(db)
	transactions := NewBadgerTransactionRepository(db)

	require.NoError(t, accounts.Save(ctx, testAccount("acc-1", "BYN", "1000.00")))
	require.NoError(t, accounts.Save(ctx, testAccount("acc-2", "BYN", "1000.00")))

	base := time.Date(2023, time.August, 1, 12, 0, 0, 0, time.UTC)
	records := []*entity.Transaction{
		testTransaction(entity.Replenishment, "", "acc-1", "100.00", base),
		testTransaction(entity.Withdrawal, "", "acc-1", "25.00", base.Add(time.Hour)),
		testTransaction(entity.Transfer, "acc-1", "acc-2", "30.00", base.Add(2*time.Hour)),
		testTransaction(entity.Transfer, "acc-2", "acc-1", "45.00", base.Add(3*time.Hour)),
	}
	for _, record := range records {
		_, err := transactions.Save(ctx, record, nil)
		require.NoError(t, err)
	}

	from, to := base.AddDate(0, 0, -1), base.AddDate(0, 0, 1)

	spent, err := transactions.SumSpent(ctx, "acc-1", from, to)
	require.NoError(t, err)
	assert.Equal(t, "55.00", spent.StringFixed(2))

	received, err := transactions.SumReceived(ctx, "acc-1", from, to)
	require.NoError(t, err)
	assert.Equal(t, "145.00", received.StringFixed(2))
}

func TestPeriodQueryTreatsAccountIDsAsOpaque(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	accounts := NewBadgerAccountRepository(db)
	transactions := NewBadgerTransactionRepository(db)

	// "acc" is a prefix of "acc:2023" and the longer id contains the index
	// separator; neither may leak into the other's scan
	require.NoError(t, accounts.Save(ctx, testAccount("acc", "BYN", "1000.00")))
	require.NoError(t, accounts.Save(ctx, testAccount("acc:2023", "BYN", "1000.00")))

	base := time.Date(2023, time.August, 1, 12, 0, 0, 0, time.UTC)
	short := testTransaction(entity.Replenishment, "", "acc", "10.00", base)
	long := testTransaction(entity.Replenishment, "", "acc:2023", "20.00", base)
	for _, record := range []*entity.Transaction{short, long} {
		_, err := transactions.Save(ctx, record, nil)
		require.NoError(t, err)
	}

	from, to := base.AddDate(0, 0, -1), base.AddDate(0, 0, 1)

	got, err := transactions.FindByAccountAndPeriod(ctx, "acc", from, to)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, short.ID, got[0].ID)

	got, err = transactions.FindByAccountAndPeriod(ctx, "acc:2023", from, to)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, long.ID, got[0].ID)
}

func TestPeriodQueryToleratesSpacedAccountIDs(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	accounts := NewBadgerAccountRepository(db)
	transactions := NewBadgerTransactionRepository(db)

	const iban = "AS12 ASDG 1200 2132 ASDA 353A 2132"
	require.NoError(t, accounts.Save(ctx, testAccount(iban, "BYN", "1000.00")))

	base := time.Date(2023, time.August, 1, 12, 0, 0, 0, time.UTC)
	record := testTransaction(entity.Replenishment, "", iban, "100.00", base)
	_, err := transactions.Save(ctx, record, nil)
	require.NoError(t, err)

	got, err := transactions.FindByAccountAndPeriod(ctx, iban,
		base.AddDate(0, 0, -1), base.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, record.ID, got[0].ID)
}
