package unitofwork

import (
	"context"

	"customer-insight-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CustomerRepository() contract.CustomerRepository
	ArtifactRepository() contract.ArtifactRepository
	InterestRepository() contract.InterestRepository
	CustomerNoteRepository() contract.CustomerNoteRepository
}
