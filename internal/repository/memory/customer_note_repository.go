package memory

import (
	"context"
	"time"

	"customer-insight-be/internal/entity"

	"github.com/google/uuid"
)

type customerNoteRepository struct {
	store *Store
	uow   *unitOfWork
}

func (r *customerNoteRepository) Create(ctx context.Context, note *entity.CustomerNote) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if note.Id == uuid.Nil {
		note.Id = uuid.New()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}
	stored := *note
	id := note.Id
	r.store.notes[id] = &stored
	r.uow.record(func() { delete(r.store.notes, id) })
	return nil
}

func (r *customerNoteRepository) FindAllByCustomer(ctx context.Context, customerId uuid.UUID, limit, offset int) ([]*entity.CustomerNote, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	result := make([]*entity.CustomerNote, 0)
	for _, n := range r.store.notes {
		if n.CustomerId == customerId {
			copied := *n
			result = append(result, &copied)
		}
	}
	sortNewestFirst(result,
		func(n *entity.CustomerNote) time.Time { return n.CreatedAt },
		func(n *entity.CustomerNote) uuid.UUID { return n.Id },
	)
	return paginate(result, limit, offset), nil
}
