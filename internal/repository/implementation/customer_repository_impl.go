package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"customer-insight-be/internal/entity"
	"customer-insight-be/internal/mapper"
	"customer-insight-be/internal/model"
	"customer-insight-be/internal/repository/contract"
	"customer-insight-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CustomerMapper
}

func NewCustomerRepository(db *gorm.DB) contract.CustomerRepository {
	return &CustomerRepositoryImpl{
		db:     db,
		mapper: mapper.NewCustomerMapper(),
	}
}

func (r *CustomerRepositoryImpl) Create(ctx context.Context, customer *entity.Customer) error {
	m := r.mapper.ToModel(customer)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*customer = *r.mapper.ToEntity(m)
	return nil
}

func (r *CustomerRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var m model.Customer
	query := specification.ByID{ID: id}.Apply(r.db.WithContext(ctx))
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

// Merge uses jsonb concatenation so concurrent writers touching different keys
// never overwrite each other; the same key is last-writer-wins.
func (r *CustomerRepositoryImpl) Merge(ctx context.Context, id uuid.UUID, patch contract.CustomerPatch) (bool, error) {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if len(patch.Fields) > 0 {
		b, err := json.Marshal(patch.Fields)
		if err != nil {
			return false, err
		}
		updates["fields"] = gorm.Expr("fields || ?::jsonb", string(b))
	}
	if len(patch.AdditionalData) > 0 {
		b, err := json.Marshal(patch.AdditionalData)
		if err != nil {
			return false, err
		}
		updates["additional_data"] = gorm.Expr("additional_data || ?::jsonb", string(b))
	}

	res := r.db.WithContext(ctx).Model(&model.Customer{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
