package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v3"

	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/entity"
)

const (
	bankPrefix = "bank:"
	userPrefix = "user:"
)

// BadgerBankRepository resolves bank master records from BadgerDB.
type BadgerBankRepository struct {
	db *badger.DB
}

// NewBadgerBankRepository creates a new BadgerDB bank repository.
func NewBadgerBankRepository(db *badger.DB) *BadgerBankRepository {
	return &BadgerBankRepository{db: db}
}

// FindByID retrieves a bank by its identifier.
func (r *BadgerBankRepository) FindByID(ctx context.Context, id string) (*entity.Bank, error) {
	var bank entity.Bank
	err := getJSON(r.db, bankPrefix+id, &bank)
	if err == badger.ErrKeyNotFound {
		return nil, entity.NewNotFoundError("bank %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bank: %w", err)
	}
	return &bank, nil
}

// Save stores a bank record.
func (r *BadgerBankRepository) Save(ctx context.Context, bank *entity.Bank) error {
	return setJSON(r.db, bankPrefix+bank.ID, bank)
}

// BadgerUserRepository resolves account owners from BadgerDB.
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerDB user repository.
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// FindByID retrieves a user by their identifier.
func (r *BadgerUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	err := getJSON(r.db, userPrefix+id, &user)
	if err == badger.ErrKeyNotFound {
		return nil, entity.NewNotFoundError("user %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return &user, nil
}

// Save stores a user record.
func (r *BadgerUserRepository) Save(ctx context.Context, user *entity.User) error {
	return setJSON(r.db, userPrefix+user.ID, user)
}

func getJSON(db *badger.DB, key string, out interface{}) error {
	return db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
}

func setJSON(db *badger.DB, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	err = db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store record: %w", err)
	}
	return nil
}
