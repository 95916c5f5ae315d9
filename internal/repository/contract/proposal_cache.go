package contract

import (
	"context"

	"customer-insight-be/internal/entity"

	"github.com/google/uuid"
)

// ProposalCache keeps reviewed proposals around long enough for apply-updates
// to reference them by id. Get returns (nil, nil) for unknown or expired ids.
type ProposalCache interface {
	Save(ctx context.Context, proposal *entity.ProfileUpdateProposal) error
	Get(ctx context.Context, id uuid.UUID) (*entity.ProfileUpdateProposal, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
