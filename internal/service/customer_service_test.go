package service

import (
	"context"
	"testing"

	"customer-insight-be/internal/dto"
	"customer-insight-be/internal/entity"
	"customer-insight-be/internal/pkg/apperror"
	"customer-insight-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	customer, err := f.customers.Create(ctx, &dto.CreateCustomerRequest{
		FullName:      "  Asha Verma ",
		PrimaryMobile: "098765 43210",
		EmailPrimary:  strPtr("Asha@Example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", customer.FullName())
	assert.Equal(t, "+91 98765 43210", customer.PrimaryMobile())
	assert.Equal(t, "asha@example.com", customer.Fields[entity.FieldEmailPrimary])
	assert.NotContains(t, customer.Fields, entity.FieldCityOfResidence)

	_, err = f.customers.Create(ctx, &dto.CreateCustomerRequest{FullName: "Asha", PrimaryMobile: "12345"})
	assert.True(t, apperror.IsValidation(err))
	_, err = f.customers.Create(ctx, &dto.CreateCustomerRequest{FullName: " ", PrimaryMobile: "9876543210"})
	assert.True(t, apperror.IsValidation(err))
}

func TestCustomerUpdateField(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.createCustomer(t)

	value, err := f.customers.UpdateField(ctx, customer.Id, "rm-1", &dto.UpdateFieldRequest{Field: entity.FieldWhatsappNumber, Value: "+91-91234-56789"})
	require.NoError(t, err)
	assert.Equal(t, "+91 91234 56789", value)

	value, err = f.customers.UpdateField(ctx, customer.Id, "rm-1", &dto.UpdateFieldRequest{Field: "favouriteTeam", Value: "Mumbai"})
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", value)

	stored, err := f.customers.GetById(ctx, customer.Id)
	require.NoError(t, err)
	assert.Equal(t, "+91 91234 56789", stored.Fields[entity.FieldWhatsappNumber])
	assert.Equal(t, "Mumbai", stored.Fields["favouriteTeam"])
	assert.Equal(t, 2, f.events.count(events.ProfileUpdated))

	_, err = f.customers.UpdateField(ctx, customer.Id, "rm-1", &dto.UpdateFieldRequest{Field: "id", Value: "x"})
	assert.True(t, apperror.IsValidation(err))
	_, err = f.customers.UpdateField(ctx, customer.Id, "rm-1", &dto.UpdateFieldRequest{Field: entity.FieldEmailPrimary, Value: "bad"})
	assert.True(t, apperror.IsValidation(err))
	_, err = f.customers.UpdateField(ctx, uuid.New(), "rm-1", &dto.UpdateFieldRequest{Field: entity.FieldOccupation, Value: "x"})
	assert.True(t, apperror.IsNotFound(err))
}

func TestCustomerGetById_Missing(t *testing.T) {
	f := newFixture(t)
	_, err := f.customers.GetById(context.Background(), uuid.New())
	assert.True(t, apperror.IsNotFound(err))

	_, err = f.customers.ListNotes(context.Background(), uuid.New(), 10, 0)
	assert.True(t, apperror.IsNotFound(err))
}
