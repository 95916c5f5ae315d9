// Package memory is the in-process storage driver. It implements the same
// repository contracts as the gorm driver and is used for local runs and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"customer-insight-be/internal/entity"
	"customer-insight-be/internal/repository/contract"
	"customer-insight-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Store holds every table behind one mutex, so each repository call is atomic.
type Store struct {
	mu        sync.Mutex
	customers map[uuid.UUID]*entity.Customer
	artifacts map[uuid.UUID]*entity.Artifact
	interests map[uuid.UUID]*entity.Interest
	notes     map[uuid.UUID]*entity.CustomerNote
}

func NewStore() *Store {
	return &Store{
		customers: make(map[uuid.UUID]*entity.Customer),
		artifacts: make(map[uuid.UUID]*entity.Artifact),
		interests: make(map[uuid.UUID]*entity.Interest),
		notes:     make(map[uuid.UUID]*entity.CustomerNote),
	}
}

type repositoryFactory struct {
	store *Store
}

func NewRepositoryFactory(store *Store) unitofwork.RepositoryFactory {
	return &repositoryFactory{store: store}
}

func (f *repositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: f.store}
}

// unitOfWork keeps an undo log while a transaction is open. Rollback replays
// it in reverse; Commit drops it.
type unitOfWork struct {
	mu    sync.Mutex
	store *Store
	inTx  bool
	undo  []func()
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.inTx {
		return fmt.Errorf("transaction already started")
	}
	u.inTx = true
	u.undo = nil
	return nil
}

func (u *unitOfWork) Commit() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.inTx {
		return fmt.Errorf("no transaction to commit")
	}
	u.inTx = false
	u.undo = nil
	return nil
}

func (u *unitOfWork) Rollback() error {
	u.mu.Lock()
	if !u.inTx {
		u.mu.Unlock()
		return fmt.Errorf("no transaction to rollback")
	}
	undo := u.undo
	u.inTx = false
	u.undo = nil
	u.mu.Unlock()

	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	for i := len(undo) - 1; i >= 0; i-- {
		undo[i]()
	}
	return nil
}

// record must be called with store.mu held.
func (u *unitOfWork) record(fn func()) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.inTx {
		u.undo = append(u.undo, fn)
	}
}

func (u *unitOfWork) CustomerRepository() contract.CustomerRepository {
	return &customerRepository{store: u.store, uow: u}
}

func (u *unitOfWork) ArtifactRepository() contract.ArtifactRepository {
	return &artifactRepository{store: u.store, uow: u}
}

func (u *unitOfWork) InterestRepository() contract.InterestRepository {
	return &interestRepository{store: u.store, uow: u}
}

func (u *unitOfWork) CustomerNoteRepository() contract.CustomerNoteRepository {
	return &customerNoteRepository{store: u.store, uow: u}
}

// sortNewestFirst orders by creation time descending, ties by id descending.
func sortNewestFirst[T any](items []T, created func(T) time.Time, id func(T) uuid.UUID) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := created(items[i]), created(items[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return id(items[i]).String() > id(items[j]).String()
	})
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

func copyMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
