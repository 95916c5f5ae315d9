package mapper

import (
	"customer-insight-be/internal/entity"
	"customer-insight-be/internal/model"
)

type CustomerNoteMapper struct{}

func NewCustomerNoteMapper() *CustomerNoteMapper {
	return &CustomerNoteMapper{}
}

func (m *CustomerNoteMapper) ToEntity(n *model.CustomerNote) *entity.CustomerNote {
	if n == nil {
		return nil
	}
	return &entity.CustomerNote{
		Id:               n.Id,
		CustomerId:       n.CustomerId,
		Content:          n.Content,
		CreatedBy:        n.CreatedBy,
		SourceArtifactId: n.SourceArtifactId,
		CreatedAt:        n.CreatedAt,
	}
}

func (m *CustomerNoteMapper) ToModel(n *entity.CustomerNote) *model.CustomerNote {
	if n == nil {
		return nil
	}
	return &model.CustomerNote{
		Id:               n.Id,
		CustomerId:       n.CustomerId,
		Content:          n.Content,
		CreatedBy:        n.CreatedBy,
		SourceArtifactId: n.SourceArtifactId,
		CreatedAt:        n.CreatedAt,
	}
}

func (m *CustomerNoteMapper) ToEntities(notes []*model.CustomerNote) []*entity.CustomerNote {
	entities := make([]*entity.CustomerNote, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
