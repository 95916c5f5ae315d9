package implementation

import (
	"context"
	"errors"

	"customer-insight-be/internal/entity"
	"customer-insight-be/internal/mapper"
	"customer-insight-be/internal/model"
	"customer-insight-be/internal/repository/contract"
	"customer-insight-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ArtifactRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ArtifactMapper
}

func NewArtifactRepository(db *gorm.DB) contract.ArtifactRepository {
	return &ArtifactRepositoryImpl{
		db:     db,
		mapper: mapper.NewArtifactMapper(),
	}
}

func (r *ArtifactRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ArtifactRepositoryImpl) Create(ctx context.Context, artifact *entity.Artifact) error {
	m, err := r.mapper.ToModel(artifact)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	created, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*artifact = *created
	return nil
}

func (r *ArtifactRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Artifact, error) {
	var m model.ExtractionArtifact
	if err := r.applySpecifications(r.db.WithContext(ctx), specification.ByID{ID: id}).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *ArtifactRepositoryImpl) FindAll(ctx context.Context, query contract.ArtifactQuery) ([]*entity.Artifact, error) {
	statuses := make([]string, len(query.Statuses))
	for i, s := range query.Statuses {
		statuses[i] = string(s)
	}

	var models []*model.ExtractionArtifact
	db := r.applySpecifications(r.db.WithContext(ctx),
		specification.OwnedByCustomer{CustomerID: query.CustomerId},
		specification.StatusIn{Statuses: statuses},
		specification.Filter("artifact_type", string(query.Type)),
		specification.NewestFirst{},
		specification.Pagination{Limit: query.Limit, Offset: query.Offset},
	)
	if err := db.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models)
}

// Transition is a single conditional UPDATE; under concurrent callers the row
// lock makes exactly one of them see RowsAffected == 1.
func (r *ArtifactRepositoryImpl) Transition(ctx context.Context, t entity.ArtifactTransition) (bool, error) {
	updates := map[string]interface{}{
		"status":     string(t.To),
		"decided_by": t.DecidedBy,
		"decided_at": t.DecidedAt,
		"updated_at": t.DecidedAt,
	}
	if t.EditedValue != nil {
		v, err := mapper.EncodeJSON(t.EditedValue)
		if err != nil {
			return false, err
		}
		updates["edited_value"] = v
	}
	if !t.Override.IsEmpty() {
		v, err := mapper.EncodeJSON(t.Override)
		if err != nil {
			return false, err
		}
		updates["override"] = v
	}

	res := r.db.WithContext(ctx).
		Model(&model.ExtractionArtifact{}).
		Where("id = ? AND status = ?", t.Id, string(entity.ArtifactStatusPending)).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
