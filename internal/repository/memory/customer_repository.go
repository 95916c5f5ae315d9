package memory

import (
	"context"
	"fmt"
	"time"

	"customer-insight-be/internal/entity"
	"customer-insight-be/internal/repository/contract"

	"github.com/google/uuid"
)

type customerRepository struct {
	store *Store
	uow   *unitOfWork
}

func cloneCustomer(c *entity.Customer) *entity.Customer {
	out := *c
	out.Fields = copyMap(c.Fields)
	out.AdditionalData = copyMap(c.AdditionalData)
	return &out
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if customer.Id == uuid.Nil {
		customer.Id = uuid.New()
	}
	if _, exists := r.store.customers[customer.Id]; exists {
		return fmt.Errorf("customer %s already exists", customer.Id)
	}
	now := time.Now()
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = now
	}
	customer.UpdatedAt = now
	if customer.Fields == nil {
		customer.Fields = map[string]interface{}{}
	}
	if customer.AdditionalData == nil {
		customer.AdditionalData = map[string]interface{}{}
	}

	id := customer.Id
	r.store.customers[id] = cloneCustomer(customer)
	r.uow.record(func() { delete(r.store.customers, id) })
	return nil
}

func (r *customerRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c, ok := r.store.customers[id]
	if !ok {
		return nil, nil
	}
	return cloneCustomer(c), nil
}

func (r *customerRepository) Merge(ctx context.Context, id uuid.UUID, patch contract.CustomerPatch) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c, ok := r.store.customers[id]
	if !ok {
		return false, nil
	}
	prev := cloneCustomer(c)
	next := cloneCustomer(c)
	for k, v := range patch.Fields {
		next.Fields[k] = v
	}
	for k, v := range patch.AdditionalData {
		next.AdditionalData[k] = v
	}
	next.UpdatedAt = time.Now()

	r.store.customers[id] = next
	r.uow.record(func() { r.store.customers[id] = prev })
	return true, nil
}
