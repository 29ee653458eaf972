package database

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=transactor.go -destination=mock/transactor_mock.go -package=mock

// Transactor runs a unit of work. When transactions are disabled fn receives
// the plain connection and every write commits on its own.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(tx *gorm.DB) error) error
	Transactional() bool
}

type gormTransactor struct {
	db      *gorm.DB
	enabled bool
}

func NewTransactor(db *gorm.DB, enabled bool) Transactor {
	return &gormTransactor{db: db, enabled: enabled}
}

func (t *gormTransactor) WithinTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if !t.enabled {
		return fn(t.db.WithContext(ctx))
	}
	return t.db.WithContext(ctx).Transaction(fn)
}

func (t *gormTransactor) Transactional() bool {
	return t.enabled
}
