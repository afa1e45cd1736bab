package repository

import (
	"context"

	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/entity"
)

// BankRepository resolves bank master records for receipt and statement
// headers. Bank CRUD is an external collaborator concern.
type BankRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Bank, error)
	Save(ctx context.Context, bank *entity.Bank) error
}

// UserRepository resolves account owners for statement headers and
// counterparty notes.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	Save(ctx context.Context, user *entity.User) error
}
