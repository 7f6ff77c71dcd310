package repositories

import "gorm.io/gorm"

// Transactor runs a multi-step cascade (user unsubscribe, advert delete)
// against repositories bound to a single database transaction, so a crash
// mid-sequence cannot leave partial state behind.
type Transactor interface {
	InTx(fn func(users UserRepository, adverts AdvertRepository) error) error
}

// GormTransactor is the GORM implementation of Transactor.
type GormTransactor struct {
	db *gorm.DB
}

// NewGormTransactor creates a new GormTransactor.
func NewGormTransactor(db *gorm.DB) *GormTransactor {
	return &GormTransactor{db: db}
}

// InTx opens a transaction and hands repository instances bound to it to fn.
// The transaction commits when fn returns nil and rolls back otherwise.
func (t *GormTransactor) InTx(fn func(users UserRepository, adverts AdvertRepository) error) error {
	return t.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMUserRepository(tx), NewGORMAdvertRepository(tx))
	})
}
