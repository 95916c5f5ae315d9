package mapper

import (
	"customer-insight-be/internal/entity"
	"customer-insight-be/internal/model"
)

type CustomerMapper struct{}

func NewCustomerMapper() *CustomerMapper {
	return &CustomerMapper{}
}

func (m *CustomerMapper) ToEntity(c *model.Customer) *entity.Customer {
	if c == nil {
		return nil
	}
	return &entity.Customer{
		Id:             c.Id,
		Fields:         decodeMap(c.Fields),
		AdditionalData: decodeMap(c.AdditionalData),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func (m *CustomerMapper) ToModel(c *entity.Customer) *model.Customer {
	if c == nil {
		return nil
	}
	return &model.Customer{
		Id:             c.Id,
		Fields:         encodeMap(c.Fields),
		AdditionalData: encodeMap(c.AdditionalData),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
