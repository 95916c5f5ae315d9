package memory

import (
	"context"
	"fmt"
	"time"

	"customer-insight-be/internal/entity"
	"customer-insight-be/internal/repository/contract"

	"github.com/google/uuid"
)

type interestRepository struct {
	store *Store
	uow   *unitOfWork
}

func cloneInterest(i *entity.Interest) *entity.Interest {
	out := *i
	return &out
}

func (r *interestRepository) Create(ctx context.Context, interest *entity.Interest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if interest.Id == uuid.Nil {
		interest.Id = uuid.New()
	}
	if _, exists := r.store.interests[interest.Id]; exists {
		return fmt.Errorf("interest %s already exists", interest.Id)
	}
	// Mirrors the unique index on source_artifact_id.
	if interest.SourceArtifactId != nil {
		for _, existing := range r.store.interests {
			if existing.SourceArtifactId != nil && *existing.SourceArtifactId == *interest.SourceArtifactId {
				return fmt.Errorf("interest for artifact %s already exists", *interest.SourceArtifactId)
			}
		}
	}
	now := time.Now()
	if interest.CreatedAt.IsZero() {
		interest.CreatedAt = now
	}
	interest.UpdatedAt = interest.CreatedAt

	id := interest.Id
	r.store.interests[id] = cloneInterest(interest)
	r.uow.record(func() { delete(r.store.interests, id) })
	return nil
}

func (r *interestRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.Interest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	i, ok := r.store.interests[id]
	if !ok {
		return nil, nil
	}
	return cloneInterest(i), nil
}

func (r *interestRepository) FindAll(ctx context.Context, query contract.InterestQuery) ([]*entity.Interest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	wanted := make(map[entity.InterestStatus]bool, len(query.Statuses))
	for _, s := range query.Statuses {
		wanted[s] = true
	}

	result := make([]*entity.Interest, 0)
	for _, i := range r.store.interests {
		if i.CustomerId != query.CustomerId {
			continue
		}
		if len(wanted) > 0 && !wanted[i.Status] {
			continue
		}
		if query.Category != "" && i.Category != query.Category {
			continue
		}
		result = append(result, cloneInterest(i))
	}
	sortNewestFirst(result,
		func(i *entity.Interest) time.Time { return i.CreatedAt },
		func(i *entity.Interest) uuid.UUID { return i.Id },
	)
	return paginate(result, query.Limit, query.Offset), nil
}

func (r *interestRepository) UpdateDetails(ctx context.Context, id uuid.UUID, label, description *string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.interests[id]
	if !ok {
		return nil
	}
	prev := cloneInterest(current)
	next := cloneInterest(current)
	if label != nil {
		next.Label = *label
	}
	if description != nil {
		d := *description
		next.Description = &d
	}
	next.UpdatedAt = time.Now()

	r.store.interests[id] = next
	r.uow.record(func() { r.store.interests[id] = prev })
	return nil
}

func (r *interestRepository) Archive(ctx context.Context, id uuid.UUID, by string, at time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.interests[id]
	if !ok || current.IsArchived() {
		return false, nil
	}
	prev := cloneInterest(current)
	next := cloneInterest(current)
	archivedBy := by
	archivedAt := at
	next.Status = entity.InterestStatusArchived
	next.ArchivedBy = &archivedBy
	next.ArchivedAt = &archivedAt
	next.UpdatedAt = at

	r.store.interests[id] = next
	r.uow.record(func() { r.store.interests[id] = prev })
	return true, nil
}
