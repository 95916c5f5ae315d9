package implementation

import (
	"context"

	"customer-insight-be/internal/entity"
	"customer-insight-be/internal/mapper"
	"customer-insight-be/internal/model"
	"customer-insight-be/internal/repository/contract"
	"customer-insight-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerNoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CustomerNoteMapper
}

func NewCustomerNoteRepository(db *gorm.DB) contract.CustomerNoteRepository {
	return &CustomerNoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewCustomerNoteMapper(),
	}
}

func (r *CustomerNoteRepositoryImpl) Create(ctx context.Context, note *entity.CustomerNote) error {
	m := r.mapper.ToModel(note)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*note = *r.mapper.ToEntity(m)
	return nil
}

func (r *CustomerNoteRepositoryImpl) FindAllByCustomer(ctx context.Context, customerId uuid.UUID, limit, offset int) ([]*entity.CustomerNote, error) {
	var models []*model.CustomerNote
	db := r.db.WithContext(ctx)
	for _, spec := range []specification.Specification{
		specification.OwnedByCustomer{CustomerID: customerId},
		specification.NewestFirst{},
		specification.Pagination{Limit: limit, Offset: offset},
	} {
		db = spec.Apply(db)
	}
	if err := db.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
