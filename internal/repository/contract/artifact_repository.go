package contract

import (
	"context"

	"customer-insight-be/internal/entity"

	"github.com/google/uuid"
)

type ArtifactQuery struct {
	CustomerId uuid.UUID
	Statuses   []entity.ArtifactStatus
	Type       entity.ArtifactType
	Limit      int
	Offset     int
}

type ArtifactRepository interface {
	Create(ctx context.Context, artifact *entity.Artifact) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Artifact, error)
	// FindAll orders newest first, ties broken by id.
	FindAll(ctx context.Context, query ArtifactQuery) ([]*entity.Artifact, error)
	// Transition moves a pending artifact to a terminal status. It returns
	// false, without error, when the artifact is missing or no longer pending.
	Transition(ctx context.Context, t entity.ArtifactTransition) (bool, error)
}
