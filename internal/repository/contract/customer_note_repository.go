package contract

import (
	"context"

	"customer-insight-be/internal/entity"

	"github.com/google/uuid"
)

type CustomerNoteRepository interface {
	Create(ctx context.Context, note *entity.CustomerNote) error
	FindAllByCustomer(ctx context.Context, customerId uuid.UUID, limit, offset int) ([]*entity.CustomerNote, error)
}
