package receipt

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRenderReplenishmentReceipt(t *testing.T) {
	out := Render(Data{
		TransactionID:    "7f6a",
		Date:             "2023-09-01",
		Time:             "12:30:45",
		Type:             "REPLENISHMENT",
		RecipientBank:    "Clever-Bank",
		RecipientAccount: "AS12 ASDG 1200 2132 ASDA 353A 2132",
		Sum:              "2000.00 BYN",
	})

	assert.Contains(t, out, "Банковский чек / Bank receipt")
	assert.Contains(t, out, "Чек / Receipt:")
	assert.Contains(t, out, "7f6a")
	assert.Contains(t, out, "REPLENISHMENT")
	assert.Contains(t, out, "Clever-Bank")
	assert.Contains(t, out, "Сумма / Amount:")
	assert.Contains(t, out, "2000.00 BYN")

	// Single-account operation: no sender rows at all
	assert.NotContains(t, out, "Банк отправителя")
	assert.NotContains(t, out, "Счёт отправителя")
}

func TestRenderTransferReceipt(t *testing.T) {
	out := Render(Data{
		TransactionID:    "7f6a",
		Date:             "2023-09-01",
		Time:             "12:30:45",
		Type:             "TRANSFER",
		SenderBank:       "Clever-Bank",
		RecipientBank:    "Belarusbank",
		SenderAccount:    "sender-acc",
		RecipientAccount: "recipient-acc",
		Sum:              "30.00 BYN",
	})

	assert.Contains(t, out, "Банк отправителя / Sender bank:")
	assert.Contains(t, out, "Счёт отправителя / Sender account:")
	assert.Contains(t, out, "Belarusbank")
	assert.Contains(t, out, "Сумма / Amount:")
	assert.NotContains(t, out, "Списано")
}

func TestRenderExchangeReceiptShowsBothLegs(t *testing.T) {
	out := Render(Data{
		TransactionID:    "7f6a",
		Date:             "2023-09-01",
		Time:             "12:30:45",
		Type:             "EXCHANGE",
		SenderBank:       "Clever-Bank",
		RecipientBank:    "Belinvestbank",
		SenderAccount:    "sender-acc",
		RecipientAccount: "recipient-acc",
		Sum:              "1000.00 RUB",
		SumRecipient:     "9.73 EUR",
	})

	assert.Contains(t, out, "Списано / Debited:")
	assert.Contains(t, out, "1000.00 RUB")
	assert.Contains(t, out, "Зачислено / Credited:")
	assert.Contains(t, out, "9.73 EUR")
	assert.NotContains(t, out, "Сумма / Amount:")
}

func TestRenderBorders(t *testing.T) {
	out := Render(Data{
		TransactionID:    "7f6a",
		Date:             "2023-09-01",
		Time:             "12:30:45",
		Type:             "WITHDRAWAL",
		RecipientBank:    "Clever-Bank",
		RecipientAccount: "acc",
		Sum:              "20.00 BYN",
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, strings.Repeat("-", lineWidth), lines[0])
	assert.Equal(t, strings.Repeat("-", lineWidth), lines[len(lines)-1])
	for _, line := range lines[1 : len(lines)-1] {
		assert.True(t, strings.HasPrefix(line, "|"), "line %q", line)
		assert.True(t, strings.HasSuffix(line, "|"), "line %q", line)
	}
}

func TestRenderTransactionStatementLayout(t *testing.T) {
	header := StatementHeader{
		BankName:    "Clever-Bank",
		Customer:    "Ivanov Ivan Ivanovich",
		AccountID:   "acc-1",
		Currency:    "BYN",
		OpeningDate: "2020-01-01",
		PeriodFrom:  "2023-08-01",
		PeriodTo:    "2023-08-31",
		GeneratedAt: "2023-09-01, 18:00:00",
		Balance:     "5000.00 BYN",
	}
	out := RenderTransactionStatement(header, []StatementEntry{
		{Date: "2023-08-03", Type: "REPLENISHMENT", Note: "Ivanov", Sum: "100.00 BYN"},
		{Date: "2023-08-10", Type: "TRANSFER", Note: "Petrov", Sum: "-30.00 BYN"},
	})

	assert.Contains(t, out, "Выписка / Statement")
	assert.Contains(t, out, "Клиент / Client")
	assert.Contains(t, out, "Ivanov Ivan Ivanovich")
	assert.Contains(t, out, "Период / Period")
	assert.Contains(t, out, "2023-08-01 - 2023-08-31")
	assert.Contains(t, out, "Остаток / Balance")
	assert.Contains(t, out, "-30.00 BYN")
}

func TestRenderMoneyStatementLayout(t *testing.T) {
	out := RenderMoneyStatement(StatementHeader{
		BankName:  "Clever-Bank",
		Customer:  "Ivanov Ivan Ivanovich",
		AccountID: "acc-1",
		Currency:  "BYN",
	}, decimal.RequireFromString("130.00"), decimal.RequireFromString("50.00"))

	assert.Contains(t, out, "Выписка по деньгам / Money statement")
	assert.Contains(t, out, "Приход / Income")
	assert.Contains(t, out, "Уход / Expense")
	assert.Contains(t, out, "130.00")
	assert.Contains(t, out, "-50.00")
}
