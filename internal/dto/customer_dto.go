package dto

import (
	"time"

	"customer-insight-be/internal/entity"
)

// CustomerResponse flattens the field map next to the id and timestamps.
type CustomerResponse map[string]interface{}

func NewCustomerResponse(c *entity.Customer) CustomerResponse {
	res := make(CustomerResponse, len(c.Fields)+4)
	for k, v := range c.Fields {
		res[k] = v
	}
	res["id"] = c.Id
	res["additionalData"] = c.AdditionalData
	res["createdAt"] = c.CreatedAt
	res["updatedAt"] = c.UpdatedAt
	return res
}

type CreateCustomerRequest struct {
	FullName        string  `json:"fullName" validate:"required"`
	PrimaryMobile   string  `json:"primaryMobile" validate:"required"`
	EmailPrimary    *string `json:"emailPrimary"`
	CityOfResidence *string `json:"cityOfResidence"`
}

type UpdateFieldRequest struct {
	Field string      `json:"field" validate:"required"`
	Value interface{} `json:"value"`
	RmId  *string     `json:"rmId"`
}

type UpdateFieldResponse struct {
	Success bool        `json:"success"`
	Field   string      `json:"field"`
	Value   interface{} `json:"value"`
}

type CustomerNoteResponse struct {
	Id               string    `json:"id"`
	CustomerId       string    `json:"customerId"`
	Content          string    `json:"content"`
	CreatedBy        string    `json:"createdBy"`
	SourceArtifactId *string   `json:"sourceArtifactId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

func NewCustomerNoteResponses(notes []*entity.CustomerNote) []CustomerNoteResponse {
	res := make([]CustomerNoteResponse, 0, len(notes))
	for _, n := range notes {
		item := CustomerNoteResponse{
			Id:         n.Id.String(),
			CustomerId: n.CustomerId.String(),
			Content:    n.Content,
			CreatedBy:  n.CreatedBy,
			CreatedAt:  n.CreatedAt,
		}
		if n.SourceArtifactId != nil {
			s := n.SourceArtifactId.String()
			item.SourceArtifactId = &s
		}
		res = append(res, item)
	}
	return res
}
