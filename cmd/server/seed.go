package main

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/entity"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/repository"
)

// seed loads demo master data and initial official rates on first start so
// the engine is usable out of the box. An already-seeded store is left
// untouched.
func seed(
	ctx context.Context,
	accounts repository.AccountRepository,
	banks repository.BankRepository,
	users repository.UserRepository,
	rates repository.ExchangeRateRepository,
) error {
	if _, err := banks.FindByID(ctx, "1"); err == nil {
		return nil
	} else if !isNotFound(err) {
		return err
	}

	for _, bank := range []*entity.Bank{
		{ID: "1", Name: "Clever-Bank"},
		{ID: "2", Name: "Belarusbank"},
		{ID: "3", Name: "Belinvestbank"},
		{ID: "4", Name: "Alfa-Bank"},
		{ID: "5", Name: "BPS-Bank"},
	} {
		if err := banks.Save(ctx, bank); err != nil {
			return err
		}
	}

	for _, user := range []*entity.User{
		{ID: "1", LastName: "Ivanov", FirstName: "Ivan", Patronymic: "Ivanovich"},
		{ID: "2", LastName: "Petrov", FirstName: "Pyotr", Patronymic: "Petrovich"},
		{ID: "3", LastName: "Sidorova", FirstName: "Anna", Patronymic: "Sergeevna"},
	} {
		if err := users.Save(ctx, user); err != nil {
			return err
		}
	}

	opened := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	for _, account := range []*entity.Account{
		{ID: "AS12 ASDG 1200 2132 ASDA 353A 2132", Currency: "BYN", Balance: decimal.RequireFromString("5000.00"), OpeningDate: opened, BankID: "1", UserID: "1"},
		{ID: "SA21 GDSA 0021 1232 ADSA A353 1232", Currency: "BYN", Balance: decimal.RequireFromString("1000.00"), OpeningDate: opened, BankID: "2", UserID: "2"},
		{ID: "DS42 SADA 2100 2312 DSDA 3A53 2312", Currency: "USD", Balance: decimal.RequireFromString("750.00"), OpeningDate: opened, BankID: "1", UserID: "3"},
		{ID: "SD24 ADSA 0012 3221 ASDD A533 3221", Currency: "EUR", Balance: decimal.RequireFromString("500.00"), OpeningDate: opened, BankID: "3", UserID: "1"},
	} {
		if err := accounts.Save(ctx, account); err != nil {
			return err
		}
	}

	now := time.Now()
	for _, rate := range []*entity.ExchangeRate{
		{CurrencyID: 431, Currency: "USD", Scale: 1, Rate: decimal.RequireFromString("3.2954"), UpdateDate: now},
		{CurrencyID: 451, Currency: "EUR", Scale: 1, Rate: decimal.RequireFromString("3.4773"), UpdateDate: now},
		{CurrencyID: 456, Currency: "RUB", Scale: 100, Rate: decimal.RequireFromString("3.3817"), UpdateDate: now},
	} {
		if err := rates.Append(ctx, rate); err != nil {
			return err
		}
	}

	return nil
}

func isNotFound(err error) bool {
	var notFound *entity.NotFoundError
	return errors.As(err, &notFound)
}
