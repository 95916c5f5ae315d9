package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedByCustomer scopes rows to a single customer.
type OwnedByCustomer struct {
	CustomerID uuid.UUID
}

func (s OwnedByCustomer) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("customer_id = ?", s.CustomerID)
}

// StatusIn filters by a set of statuses. An empty set is a no-op.
type StatusIn struct {
	Statuses []string
}

func (s StatusIn) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Statuses) == 0 {
		return db
	}
	return db.Where("status IN ?", s.Statuses)
}

// NewestFirst orders by creation time, ties broken by id.
type NewestFirst struct{}

func (s NewestFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}
