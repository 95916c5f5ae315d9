package implementation

import (
	"context"
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

type InterestRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InterestMapper
}

func NewInterestRepository(db *gorm.DB) contract.InterestRepository {
	return &InterestRepositoryImpl{
		db:     db,
		mapper: mapper.NewInterestMapper(),
	}
}

func (r *InterestRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *InterestRepositoryImpl) Create(ctx context.Context, interest *entity.Interest) error {
	m := r.mapper.ToModel(interest)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*interest = *r.mapper.ToEntity(m)
	return nil
}

func (r *InterestRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Interest, error) {
	var m model.CustomerInterest
	if err := r.applySpecifications(r.db.WithContext(ctx), specification.ByID{ID: id}).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *InterestRepositoryImpl) FindAll(ctx context.Context, query contract.InterestQuery) ([]*entity.Interest, error) {
	statuses := make([]string, len(query.Statuses))
	for i, s := range query.Statuses {
		statuses[i] = string(s)
	}

	var models []*model.CustomerInterest
	db := r.applySpecifications(r.db.WithContext(ctx),
		specification.OwnedByCustomer{CustomerID: query.CustomerId},
		specification.StatusIn{Statuses: statuses},
		specification.Filter("category", string(query.Category)),
		specification.NewestFirst{},
		specification.Pagination{Limit: query.Limit, Offset: query.Offset},
	)
	if err := db.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *InterestRepositoryImpl) UpdateDetails(ctx context.Context, id uuid.UUID, label, description *string) error {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if label != nil {
		updates["label"] = *label
	}
	if description != nil {
		updates["description"] = *description
	}
	return r.db.WithContext(ctx).Model(&model.CustomerInterest{}).Where("id = ?", id).Updates(updates).Error
}

func (r *InterestRepositoryImpl) Archive(ctx context.Context, id uuid.UUID, by string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.CustomerInterest{}).
		Where("id = ? AND status <> ?", id, string(entity.InterestStatusArchived)).
		Updates(map[string]interface{}{
			"status":      string(entity.InterestStatusArchived),
			"archived_by": by,
			"archived_at": at,
			"updated_at":  at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
