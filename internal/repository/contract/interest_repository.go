package contract

import (
	"context"
	"time"

	"customer-insight-be/internal/entity"

	"github.com/google/uuid"
)

type InterestQuery struct {
	CustomerId uuid.UUID
	// Empty means every status.
	Statuses []entity.InterestStatus
	Category entity.InterestCategory
	Limit    int
	Offset   int
}

type InterestRepository interface {
	Create(ctx context.Context, interest *entity.Interest) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Interest, error)
	FindAll(ctx context.Context, query InterestQuery) ([]*entity.Interest, error)
	UpdateDetails(ctx context.Context, id uuid.UUID, label, description *string) error
	// Archive returns false when the interest was already archived; the first
	// archival's actor and time are kept.
	Archive(ctx context.Context, id uuid.UUID, by string, at time.Time) (bool, error)
}
