package memory

import (
	"context"
	"fmt"
	"time"

	"customer-insight-be/internal/entity"
	"customer-insight-be/internal/repository/contract"

	"github.com/google/uuid"
)

type artifactRepository struct {
	store *Store
	uow   *unitOfWork
}

func cloneArtifact(a *entity.Artifact) *entity.Artifact {
	out := *a
	if a.Override != nil {
		o := *a.Override
		out.Override = &o
	}
	return &out
}

func (r *artifactRepository) Create(ctx context.Context, artifact *entity.Artifact) error {
	if artifact.Payload == nil || artifact.Payload.ArtifactType() != artifact.Type {
		return fmt.Errorf("artifact %s: payload does not match type %s", artifact.Id, artifact.Type)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if artifact.Id == uuid.Nil {
		artifact.Id = uuid.New()
	}
	if _, exists := r.store.artifacts[artifact.Id]; exists {
		return fmt.Errorf("artifact %s already exists", artifact.Id)
	}
	if artifact.CreatedAt.IsZero() {
		artifact.CreatedAt = time.Now()
	}
	if artifact.UpdatedAt.IsZero() {
		artifact.UpdatedAt = artifact.CreatedAt
	}
	if artifact.Status == "" {
		artifact.Status = entity.ArtifactStatusPending
	}

	id := artifact.Id
	r.store.artifacts[id] = cloneArtifact(artifact)
	r.uow.record(func() { delete(r.store.artifacts, id) })
	return nil
}

func (r *artifactRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.Artifact, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	a, ok := r.store.artifacts[id]
	if !ok {
		return nil, nil
	}
	return cloneArtifact(a), nil
}

func (r *artifactRepository) FindAll(ctx context.Context, query contract.ArtifactQuery) ([]*entity.Artifact, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	wanted := make(map[entity.ArtifactStatus]bool, len(query.Statuses))
	for _, s := range query.Statuses {
		wanted[s] = true
	}

	result := make([]*entity.Artifact, 0)
	for _, a := range r.store.artifacts {
		if a.CustomerId != query.CustomerId {
			continue
		}
		if len(wanted) > 0 && !wanted[a.Status] {
			continue
		}
		if query.Type != "" && a.Type != query.Type {
			continue
		}
		result = append(result, cloneArtifact(a))
	}
	sortNewestFirst(result,
		func(a *entity.Artifact) time.Time { return a.CreatedAt },
		func(a *entity.Artifact) uuid.UUID { return a.Id },
	)
	return paginate(result, query.Limit, query.Offset), nil
}

func (r *artifactRepository) Transition(ctx context.Context, t entity.ArtifactTransition) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.artifacts[t.Id]
	if !ok || !entity.CanTransition(current.Status, t.To) {
		return false, nil
	}

	prev := cloneArtifact(current)
	next := cloneArtifact(current)
	decidedBy := t.DecidedBy
	decidedAt := t.DecidedAt
	next.Status = t.To
	next.DecidedBy = &decidedBy
	next.DecidedAt = &decidedAt
	next.EditedValue = t.EditedValue
	if t.Override != nil {
		o := *t.Override
		next.Override = &o
	}
	next.UpdatedAt = decidedAt

	r.store.artifacts[t.Id] = next
	r.uow.record(func() { r.store.artifacts[t.Id] = prev })
	return true, nil
}
