package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"customer-insight-be/internal/config"
	"customer-insight-be/internal/dto"
	"customer-insight-be/internal/entity"
	"customer-insight-be/internal/pkg/logger"
	"customer-insight-be/internal/repository/contract"
	"customer-insight-be/internal/repository/memory"
	"customer-insight-be/internal/repository/unitofwork"
	"customer-insight-be/pkg/fieldvalidator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type emitted struct {
	Type       string
	CustomerId uuid.UUID
	Data       map[string]interface{}
}

// recordingEvents captures emitted review events.
type recordingEvents struct {
	mu     sync.Mutex
	events []emitted
}

func (r *recordingEvents) Emit(ctx context.Context, eventType string, customerId uuid.UUID, data map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, emitted{Type: eventType, CustomerId: customerId, Data: data})
}

func (r *recordingEvents) count(eventType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Type == eventType {
			n++
		}
	}
	return n
}

type fixture struct {
	factory   unitofwork.RepositoryFactory
	events    *recordingEvents
	proposals contract.ProposalCache

	customers  ICustomerService
	artifacts  IArtifactService
	interests  IInterestService
	review     IReviewService
	apply      IApplyService
	nudges     INudgeService
	extraction IExtractionService
}

var testReviewConfig = config.ReviewConfig{
	DefaultPageSize: 50,
	MaxPageSize:     200,
	RequiredFields:  []string{entity.FieldFullName, entity.FieldPrimaryMobile},
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	factory := memory.NewRepositoryFactory(memory.NewStore())
	events := &recordingEvents{}
	proposals := memory.NewProposalCache(time.Hour)
	validators := fieldvalidator.NewDefaultRegistry()

	artifacts := NewArtifactService(factory, testReviewConfig, events)
	interests := NewInterestService(factory, testReviewConfig, events)
	nudges := NewNudgeService(factory, memory.NewNudgeSessionRepository(time.Hour), validators, events)

	return &fixture{
		factory:    factory,
		events:     events,
		proposals:  proposals,
		customers:  NewCustomerService(factory, validators, testReviewConfig, events),
		artifacts:  artifacts,
		interests:  interests,
		review:     NewReviewService(artifacts, interests, validators),
		apply:      NewApplyService(factory, proposals, interests, validators, events, logger.NewNopLogger()),
		nudges:     nudges,
		extraction: NewExtractionService(factory, proposals, artifacts, nudges, testReviewConfig),
	}
}

func (f *fixture) createCustomer(t *testing.T) *entity.Customer {
	t.Helper()
	customer, err := f.customers.Create(context.Background(), &dto.CreateCustomerRequest{
		FullName:      "Asha Verma",
		PrimaryMobile: "9876543210",
	})
	require.NoError(t, err)
	return customer
}

func (f *fixture) recordArtifact(t *testing.T, customerId uuid.UUID, payload entity.ArtifactPayload) *entity.Artifact {
	t.Helper()
	a := entity.NewArtifact(customerId, nil, payload)
	require.NoError(t, f.artifacts.Record(context.Background(), []*entity.Artifact{a}))
	return a
}

func (f *fixture) reloadArtifact(t *testing.T, id uuid.UUID) *entity.Artifact {
	t.Helper()
	a, err := f.artifacts.GetById(context.Background(), id)
	require.NoError(t, err)
	return a
}

func strPtr(s string) *string { return &s }
