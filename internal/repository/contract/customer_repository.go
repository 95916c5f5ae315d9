package contract

import (
	"context"

	"customer-insight-be/internal/entity"

	"github.com/google/uuid"
)

// CustomerPatch merges keys into the customer's field map and extension area.
// Keys not mentioned are left alone; a nil value clears the key.
type CustomerPatch struct {
	Fields         map[string]interface{}
	AdditionalData map[string]interface{}
}

func (p CustomerPatch) IsEmpty() bool {
	return len(p.Fields) == 0 && len(p.AdditionalData) == 0
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	// Merge returns false when the customer does not exist.
	Merge(ctx context.Context, id uuid.UUID, patch CustomerPatch) (bool, error)
}
