package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateNumber = errors.New("document number already exists")
)

// Repositories is the warehouse data-access set.
type Repositories struct {
	Delivery *DeliveryRepository
	Release  *ReleaseRepository
	IPOW     *IPOWRepository
	Override *OverrideRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Delivery: NewDeliveryRepository(db),
		Release:  NewReleaseRepository(db),
		IPOW:     NewIPOWRepository(db),
		Override: NewOverrideRepository(db),
	}
}

// isUniqueViolation reports whether err is a Postgres unique-index conflict.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
