package mapper

import (
	"customer-insight-be/internal/entity"
	"customer-insight-be/internal/model"
)

type InterestMapper struct{}

func NewInterestMapper() *InterestMapper {
	return &InterestMapper{}
}

func (m *InterestMapper) ToEntity(i *model.CustomerInterest) *entity.Interest {
	if i == nil {
		return nil
	}
	return &entity.Interest{
		Id:               i.Id,
		CustomerId:       i.CustomerId,
		Category:         entity.InterestCategory(i.Category),
		Label:            i.Label,
		Description:      i.Description,
		Status:           entity.InterestStatus(i.Status),
		SourceArtifactId: i.SourceArtifactId,
		CreatedBy:        i.CreatedBy,
		ArchivedBy:       i.ArchivedBy,
		ArchivedAt:       i.ArchivedAt,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}

func (m *InterestMapper) ToModel(i *entity.Interest) *model.CustomerInterest {
	if i == nil {
		return nil
	}
	return &model.CustomerInterest{
		Id:               i.Id,
		CustomerId:       i.CustomerId,
		Category:         string(i.Category),
		Label:            i.Label,
		Description:      i.Description,
		Status:           string(i.Status),
		SourceArtifactId: i.SourceArtifactId,
		CreatedBy:        i.CreatedBy,
		ArchivedBy:       i.ArchivedBy,
		ArchivedAt:       i.ArchivedAt,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}

func (m *InterestMapper) ToEntities(interests []*model.CustomerInterest) []*entity.Interest {
	entities := make([]*entity.Interest, len(interests))
	for i, in := range interests {
		entities[i] = m.ToEntity(in)
	}
	return entities
}
