// Package receipt renders transaction receipts and account statements in
// the fixed-width bilingual text format, and stores them through the
// receipt sink.
package receipt

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const lineWidth = 62

// Data carries the fields of one printed receipt. Sender fields stay empty
// for single-account operations; SumRecipient is set for exchanges only.
type Data struct {
	TransactionID    string
	Date             string
	Time             string
	Type             string
	SenderBank       string
	RecipientBank    string
	SenderAccount    string
	RecipientAccount string
	Sum              string
	SumRecipient     string
}

// Render produces the bordered receipt text.
func Render(d Data) string {
	var b strings.Builder
	border := strings.Repeat("-", lineWidth)

	b.WriteString(border + "\n")
	b.WriteString(centerLine("Банковский чек / Bank receipt"))
	b.WriteString(fieldLine("Чек / Receipt:", d.TransactionID))
	b.WriteString(fieldLine(d.Date, d.Time))
	b.WriteString(fieldLine("Тип транзакции / Type:", d.Type))
	if d.SenderBank != "" {
		b.WriteString(fieldLine("Банк отправителя / Sender bank:", d.SenderBank))
	}
	b.WriteString(fieldLine("Банк получателя / Recipient bank:", d.RecipientBank))
	if d.SenderAccount != "" {
		b.WriteString(fieldLine("Счёт отправителя / Sender account:", d.SenderAccount))
	}
	b.WriteString(fieldLine("Счёт получателя / Recipient account:", d.RecipientAccount))
	if d.SumRecipient != "" {
		b.WriteString(fieldLine("Списано / Debited:", d.Sum))
		b.WriteString(fieldLine("Зачислено / Credited:", d.SumRecipient))
	} else {
		b.WriteString(fieldLine("Сумма / Amount:", d.Sum))
	}
	b.WriteString(border + "\n")

	return b.String()
}

// StatementHeader carries the account header block shared by both statement
// variants.
type StatementHeader struct {
	BankName    string
	Customer    string
	AccountID   string
	Currency    string
	OpeningDate string
	PeriodFrom  string
	PeriodTo    string
	GeneratedAt string
	Balance     string
}

// StatementEntry is one line of the itemized statement. Sum is signed:
// debits are negative.
type StatementEntry struct {
	Date string
	Type string
	Note string
	Sum  string
}

// RenderTransactionStatement produces the itemized statement text.
func RenderTransactionStatement(h StatementHeader, entries []StatementEntry) string {
	var b strings.Builder
	writeHeader(&b, "Выписка / Statement", h)

	b.WriteString(fmt.Sprintf("%-12s | %-14s | %-34s | %s\n", "Дата", "Тип", "Примечание / Note", "Сумма / Sum"))
	b.WriteString(strings.Repeat("-", 84) + "\n")
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("%-12s | %-14s | %-34s | %s\n", e.Date, e.Type, e.Note, e.Sum))
	}

	return b.String()
}

// RenderMoneyStatement produces the spent/received summary text.
func RenderMoneyStatement(h StatementHeader, received, spent decimal.Decimal) string {
	var b strings.Builder
	writeHeader(&b, "Выписка по деньгам / Money statement", h)

	b.WriteString(fmt.Sprintf("%24s | %s\n", "Приход / Income", "Уход / Expense"))
	b.WriteString(strings.Repeat("-", 48) + "\n")
	b.WriteString(fmt.Sprintf("%24s | -%s\n", received.StringFixed(2), spent.StringFixed(2)))

	return b.String()
}

func writeHeader(b *strings.Builder, title string, h StatementHeader) {
	b.WriteString(center(title) + "\n")
	b.WriteString(center(h.BankName) + "\n")
	rows := [][2]string{
		{"Клиент / Client", h.Customer},
		{"Счёт / Account", h.AccountID},
		{"Валюта / Currency", h.Currency},
		{"Дата открытия / Opening date", h.OpeningDate},
		{"Период / Period", h.PeriodFrom + " - " + h.PeriodTo},
		{"Дата и время формирования / Generated at", h.GeneratedAt},
		{"Остаток / Balance", h.Balance},
	}
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%-41s | %s\n", row[0], row[1]))
	}
	b.WriteString("\n")
}

func center(s string) string {
	pad := (lineWidth - len([]rune(s))) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}

func centerLine(s string) string {
	inner := lineWidth - 2
	runes := len([]rune(s))
	left := (inner - runes) / 2
	right := inner - runes - left
	if left < 0 || right < 0 {
		left, right = 0, 0
	}
	return "|" + strings.Repeat(" ", left) + s + strings.Repeat(" ", right) + "|\n"
}

// fieldLine renders one bordered "label ... value" row with the value
// right-aligned.
func fieldLine(label, value string) string {
	inner := lineWidth - 4
	gap := inner - len([]rune(label)) - len([]rune(value))
	if gap < 1 {
		gap = 1
	}
	return "| " + label + strings.Repeat(" ", gap) + value + " |\n"
}
