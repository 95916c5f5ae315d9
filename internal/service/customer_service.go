package service

import (
	"context"
	"strings"
	"time"

	"customer-insight-be/internal/config"
	"customer-insight-be/internal/dto"
	"customer-insight-be/internal/entity"
	"customer-insight-be/internal/pkg/apperror"
	"customer-insight-be/internal/repository/contract"
	"customer-insight-be/internal/repository/unitofwork"
	"customer-insight-be/pkg/events"
	"customer-insight-be/pkg/fieldvalidator"

	"github.com/google/uuid"
)

type ICustomerService interface {
	Create(ctx context.Context, req *dto.CreateCustomerRequest) (*entity.Customer, error)
	GetById(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	// UpdateField validates and writes one profile field, returning the
	// normalized value.
	UpdateField(ctx context.Context, customerId uuid.UUID, actorId string, req *dto.UpdateFieldRequest) (interface{}, error)
	ListNotes(ctx context.Context, customerId uuid.UUID, limit, offset int) ([]*entity.CustomerNote, error)
}

type customerService struct {
	uowFactory unitofwork.RepositoryFactory
	validators *fieldvalidator.Registry
	reviewCfg  config.ReviewConfig
	events     IReviewEventService
}

func NewCustomerService(
	uowFactory unitofwork.RepositoryFactory,
	validators *fieldvalidator.Registry,
	reviewCfg config.ReviewConfig,
	events IReviewEventService,
) ICustomerService {
	return &customerService{
		uowFactory: uowFactory,
		validators: validators,
		reviewCfg:  reviewCfg,
		events:     events,
	}
}

func (s *customerService) Create(ctx context.Context, req *dto.CreateCustomerRequest) (*entity.Customer, error) {
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, apperror.Validation("fullName is required")
	}
	if strings.TrimSpace(req.PrimaryMobile) == "" {
		return nil, apperror.Validation("primaryMobile is required")
	}

	fields := map[string]interface{}{entity.FieldFullName: fullName}
	raw := map[string]interface{}{
		entity.FieldPrimaryMobile:   req.PrimaryMobile,
		entity.FieldEmailPrimary:    req.EmailPrimary,
		entity.FieldCityOfResidence: req.CityOfResidence,
	}
	// Fixed order keeps the first reported error stable.
	for _, key := range []string{entity.FieldPrimaryMobile, entity.FieldEmailPrimary, entity.FieldCityOfResidence} {
		res := s.validators.Validate(key, raw[key])
		if !res.Valid {
			return nil, res.Err(key)
		}
		if res.Value != nil {
			fields[key] = derefString(res.Value)
		}
	}

	now := time.Now()
	customer := &entity.Customer{
		Id:             uuid.New(),
		Fields:         fields,
		AdditionalData: map[string]interface{}{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.CustomerRepository().Create(ctx, customer); err != nil {
		return nil, apperror.Internal(err, "failed to create customer")
	}
	return customer, nil
}

func (s *customerService) GetById(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return loadCustomer(ctx, uow, id)
}

func (s *customerService) UpdateField(ctx context.Context, customerId uuid.UUID, actorId string, req *dto.UpdateFieldRequest) (interface{}, error) {
	field := strings.TrimSpace(req.Field)
	if field == "" {
		return nil, apperror.Validation("field is required")
	}
	if entity.IsReservedField(field) {
		return nil, apperror.Validation("field %s cannot be updated", field)
	}
	res := s.validators.Validate(field, req.Value)
	if !res.Valid {
		return nil, res.Err(field)
	}
	value := derefString(res.Value)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	ok, err := uow.CustomerRepository().Merge(ctx, customerId, contract.CustomerPatch{
		Fields: map[string]interface{}{field: value},
	})
	if err != nil {
		return nil, apperror.Internal(err, "failed to update customer")
	}
	if !ok {
		return nil, apperror.NotFound("customer not found")
	}

	s.events.Emit(ctx, events.ProfileUpdated, customerId, map[string]interface{}{
		"fields":     []string{field},
		"updated_by": actorId,
	})
	return value, nil
}

func (s *customerService) ListNotes(ctx context.Context, customerId uuid.UUID, limit, offset int) ([]*entity.CustomerNote, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := ensureCustomerExists(ctx, uow, customerId); err != nil {
		return nil, err
	}
	limit, offset = pageBounds(s.reviewCfg, limit, offset)
	notes, err := uow.CustomerNoteRepository().FindAllByCustomer(ctx, customerId, limit, offset)
	if err != nil {
		return nil, apperror.Internal(err, "failed to list notes")
	}
	return notes, nil
}

func loadCustomer(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.Customer, error) {
	customer, err := uow.CustomerRepository().FindById(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err, "failed to load customer")
	}
	if customer == nil {
		return nil, apperror.NotFound("customer not found")
	}
	return customer, nil
}

// derefString stores pass-through *string values as plain strings.
func derefString(v interface{}) interface{} {
	if p, ok := v.(*string); ok {
		if p == nil {
			return nil
		}
		return strings.TrimSpace(*p)
	}
	return v
}
