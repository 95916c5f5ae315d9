package service

import (
	"context"
	"sync/atomic"
	"testing"

	"customer-insight-be/internal/dto"
	"customer-insight-be/internal/entity"
	"customer-insight-be/internal/pkg/apperror"
	"customer-insight-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestCreateFromArtifact_ConcurrentConfirmationsHaveOneWinner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.createCustomer(t)
	a := f.recordArtifact(t, customer.Id, entity.InterestProposalPayload{Category: entity.InterestCategoryPersonal, Label: "Golf"})

	var wins, conflicts int32
	var g errgroup.Group
	for i := 0; i < 12; i++ {
		g.Go(func() error {
			_, err := f.interests.CreateFromArtifact(ctx, customer.Id, a.Id, "rm-1", nil)
			switch {
			case err == nil:
				atomic.AddInt32(&wins, 1)
			case apperror.IsInvalidState(err):
				atomic.AddInt32(&conflicts, 1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), wins)
	assert.Equal(t, int32(11), conflicts)

	interests, err := f.interests.ListByCustomer(ctx, customer.Id, &dto.ListInterestsQuery{IncludeArchived: true})
	require.NoError(t, err)
	assert.Len(t, interests, 1)
	assert.Equal(t, 1, f.events.count(events.InterestConfirmed))
}

func TestCreateFromArtifact_OwnershipAndType(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.createCustomer(t)
	other := f.createCustomer(t)
	proposal := f.recordArtifact(t, customer.Id, entity.InterestProposalPayload{Category: entity.InterestCategoryPersonal, Label: "Golf"})
	note := f.recordArtifact(t, customer.Id, entity.NotePayload{Content: "hello"})

	_, err := f.interests.CreateFromArtifact(ctx, other.Id, proposal.Id, "rm-1", nil)
	assert.True(t, apperror.IsNotFound(err))

	_, err = f.interests.CreateFromArtifact(ctx, customer.Id, note.Id, "rm-1", nil)
	assert.True(t, apperror.IsInvalidState(err))

	_, err = f.interests.CreateFromArtifact(ctx, customer.Id, uuid.New(), "rm-1", nil)
	assert.True(t, apperror.IsNotFound(err))

	assert.Equal(t, entity.ArtifactStatusPending, f.reloadArtifact(t, proposal.Id).Status)
}

func TestCreateFromArtifact_BlankOverrideLabelRollsBack(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.createCustomer(t)
	a := f.recordArtifact(t, customer.Id, entity.InterestProposalPayload{Category: entity.InterestCategoryPersonal, Label: "Golf"})

	_, err := f.interests.CreateFromArtifact(ctx, customer.Id, a.Id, "rm-1", &entity.InterestOverride{Label: strPtr("   ")})
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, entity.ArtifactStatusPending, f.reloadArtifact(t, a.Id).Status)
}

func TestInterestArchive_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.createCustomer(t)

	interest, err := f.interests.CreateManual(ctx, customer.Id, "rm-1", &dto.CreateInterestRequest{Category: "financial", Label: "Mutual funds"})
	require.NoError(t, err)

	first, err := f.interests.Archive(ctx, customer.Id, interest.Id, "rm-1")
	require.NoError(t, err)
	assert.Equal(t, entity.InterestStatusArchived, first.Status)

	second, err := f.interests.Archive(ctx, customer.Id, interest.Id, "rm-2")
	require.NoError(t, err)
	assert.Equal(t, entity.InterestStatusArchived, second.Status)
	assert.Equal(t, "rm-1", *second.ArchivedBy)
	assert.True(t, first.ArchivedAt.Equal(*second.ArchivedAt))

	assert.Equal(t, 1, f.events.count(events.InterestArchived))

	_, err = f.interests.Archive(ctx, uuid.New(), interest.Id, "rm-1")
	assert.True(t, apperror.IsNotFound(err))
}

func TestInterestList_Filters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.createCustomer(t)

	golf, err := f.interests.CreateManual(ctx, customer.Id, "rm-1", &dto.CreateInterestRequest{Category: "personal", Label: "Golf"})
	require.NoError(t, err)
	_, err = f.interests.CreateManual(ctx, customer.Id, "rm-1", &dto.CreateInterestRequest{Category: "financial", Label: "Bonds"})
	require.NoError(t, err)
	_, err = f.interests.Archive(ctx, customer.Id, golf.Id, "rm-1")
	require.NoError(t, err)

	active, err := f.interests.ListByCustomer(ctx, customer.Id, nil)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Bonds", active[0].Label)

	all, err := f.interests.ListByCustomer(ctx, customer.Id, &dto.ListInterestsQuery{IncludeArchived: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	archived, err := f.interests.ListByCustomer(ctx, customer.Id, &dto.ListInterestsQuery{Status: "archived"})
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, golf.Id, archived[0].Id)

	personal, err := f.interests.ListByCustomer(ctx, customer.Id, &dto.ListInterestsQuery{Category: "personal", IncludeArchived: true})
	require.NoError(t, err)
	require.Len(t, personal, 1)

	_, err = f.interests.ListByCustomer(ctx, customer.Id, &dto.ListInterestsQuery{Status: "deleted"})
	assert.True(t, apperror.IsValidation(err))
	_, err = f.interests.ListByCustomer(ctx, customer.Id, &dto.ListInterestsQuery{Category: "sports"})
	assert.True(t, apperror.IsValidation(err))
}

func TestEffectiveInterestStatuses(t *testing.T) {
	statuses, err := effectiveInterestStatuses("confirmed", true)
	require.NoError(t, err)
	assert.Equal(t, []entity.InterestStatus{entity.InterestStatusConfirmed, entity.InterestStatusArchived}, statuses)

	statuses, err = effectiveInterestStatuses("", true)
	require.NoError(t, err)
	assert.Nil(t, statuses)

	statuses, err = effectiveInterestStatuses("", false)
	require.NoError(t, err)
	assert.Equal(t, []entity.InterestStatus{entity.InterestStatusProposed, entity.InterestStatusConfirmed}, statuses)
}

func TestInterestCreateManualAndUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.createCustomer(t)

	_, err := f.interests.CreateManual(ctx, customer.Id, "rm-1", &dto.CreateInterestRequest{Category: "hobby", Label: "Golf"})
	assert.True(t, apperror.IsValidation(err))
	_, err = f.interests.CreateManual(ctx, customer.Id, "rm-1", &dto.CreateInterestRequest{Category: "personal", Label: " "})
	assert.True(t, apperror.IsValidation(err))
	_, err = f.interests.CreateManual(ctx, uuid.New(), "rm-1", &dto.CreateInterestRequest{Category: "personal", Label: "Golf"})
	assert.True(t, apperror.IsNotFound(err))

	interest, err := f.interests.CreateManual(ctx, customer.Id, "rm-1", &dto.CreateInterestRequest{Category: "personal", Label: " Golf "})
	require.NoError(t, err)
	assert.Equal(t, "Golf", interest.Label)
	assert.Nil(t, interest.SourceArtifactId)

	_, err = f.interests.Update(ctx, customer.Id, interest.Id, "rm-1", &dto.UpdateInterestRequest{})
	assert.True(t, apperror.IsValidation(err))
	_, err = f.interests.Update(ctx, customer.Id, interest.Id, "rm-1", &dto.UpdateInterestRequest{Label: strPtr("")})
	assert.True(t, apperror.IsValidation(err))

	updated, err := f.interests.Update(ctx, customer.Id, interest.Id, "rm-1", &dto.UpdateInterestRequest{Description: strPtr("Plays on Sundays")})
	require.NoError(t, err)
	assert.Equal(t, "Golf", updated.Label)
	assert.Equal(t, "Plays on Sundays", *updated.Description)

	fetched, err := f.interests.GetById(ctx, customer.Id, interest.Id)
	require.NoError(t, err)
	assert.Equal(t, "Plays on Sundays", *fetched.Description)
}
