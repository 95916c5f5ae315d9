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

func TestDecide_ProfileEditTerminalStatesAreFinal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.createCustomer(t)
	a := f.recordArtifact(t, customer.Id, entity.ProfileEditPayload{FieldKey: entity.FieldOccupation, ProposedValue: "Architect"})

	decided, err := f.review.Decide(ctx, a.Id, "rm-1", &dto.DecideArtifactRequest{Status: "accepted"})
	require.NoError(t, err)
	assert.Equal(t, entity.ArtifactStatusAccepted, decided.Status)
	assert.Equal(t, "rm-1", *decided.DecidedBy)
	assert.NotNil(t, decided.DecidedAt)

	for _, status := range []string{"rejected", "accepted"} {
		_, err = f.review.Decide(ctx, a.Id, "rm-2", &dto.DecideArtifactRequest{Status: status})
		assert.True(t, apperror.IsInvalidState(err), status)
	}
	_, err = f.review.Decide(ctx, a.Id, "rm-2", &dto.DecideArtifactRequest{Status: "edited", EditedValue: "Engineer"})
	assert.True(t, apperror.IsInvalidState(err))

	assert.Equal(t, "rm-1", *f.reloadArtifact(t, a.Id).DecidedBy)
	assert.Equal(t, 1, f.events.count(events.ArtifactDecided))
}

func TestDecide_EditedNormalizesAndKeepsPayload(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.createCustomer(t)
	a := f.recordArtifact(t, customer.Id, entity.ProfileEditPayload{FieldKey: entity.FieldSecondaryMobile, ProposedValue: "9123456789"})

	decided, err := f.review.Decide(ctx, a.Id, "rm-1", &dto.DecideArtifactRequest{Status: "edited", EditedValue: "9876543210"})
	require.NoError(t, err)

	assert.Equal(t, entity.ArtifactStatusEdited, decided.Status)
	assert.Equal(t, "+91 98765 43210", decided.EditedValue)
	assert.Equal(t, "+91 98765 43210", decided.AppliedValue())

	payload, err := decided.ProfileEdit()
	require.NoError(t, err)
	assert.Equal(t, "9123456789", payload.ProposedValue)
}

func TestDecide_EditedRejectsInvalidValue(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.createCustomer(t)
	a := f.recordArtifact(t, customer.Id, entity.ProfileEditPayload{FieldKey: entity.FieldEmailPrimary, ProposedValue: "a@b.co"})

	_, err := f.review.Decide(ctx, a.Id, "rm-1", &dto.DecideArtifactRequest{Status: "edited", EditedValue: "not-an-email"})
	assert.True(t, apperror.IsValidation(err))

	_, err = f.review.Decide(ctx, a.Id, "rm-1", &dto.DecideArtifactRequest{Status: "edited"})
	assert.True(t, apperror.IsValidation(err))

	_, err = f.review.Decide(ctx, a.Id, "rm-1", &dto.DecideArtifactRequest{Status: "pending"})
	assert.True(t, apperror.IsValidation(err))

	assert.Equal(t, entity.ArtifactStatusPending, f.reloadArtifact(t, a.Id).Status)
}

func TestDecide_RequiresActor(t *testing.T) {
	f := newFixture(t)
	customer := f.createCustomer(t)
	a := f.recordArtifact(t, customer.Id, entity.ProfileEditPayload{FieldKey: entity.FieldOccupation, ProposedValue: "Architect"})

	_, err := f.review.Decide(context.Background(), a.Id, "  ", &dto.DecideArtifactRequest{Status: "accepted"})
	assert.True(t, apperror.IsValidation(err))
}

func TestDecide_UnknownArtifact(t *testing.T) {
	f := newFixture(t)
	_, err := f.review.Decide(context.Background(), uuid.New(), "rm-1", &dto.DecideArtifactRequest{Status: "accepted"})
	assert.True(t, apperror.IsNotFound(err))
}

func TestDecide_InterestProposalAcceptCreatesInterest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.createCustomer(t)
	a := f.recordArtifact(t, customer.Id, entity.InterestProposalPayload{Category: entity.InterestCategoryPersonal, Label: "golf"})

	decided, err := f.review.Decide(ctx, a.Id, "rm-1", &dto.DecideArtifactRequest{Status: "accepted", Label: strPtr("Golf weekends")})
	require.NoError(t, err)
	assert.Equal(t, entity.ArtifactStatusAccepted, decided.Status)
	require.NotNil(t, decided.Override)
	assert.Equal(t, "Golf weekends", *decided.Override.Label)

	payload, err := decided.InterestProposal()
	require.NoError(t, err)
	assert.Equal(t, "golf", payload.Label)

	interests, err := f.interests.ListByCustomer(ctx, customer.Id, nil)
	require.NoError(t, err)
	require.Len(t, interests, 1)
	assert.Equal(t, "Golf weekends", interests[0].Label)
	assert.Equal(t, a.Id, *interests[0].SourceArtifactId)
	assert.Equal(t, entity.InterestStatusConfirmed, interests[0].Status)
}

func TestDecide_InterestProposalRejectAndEdited(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.createCustomer(t)
	a := f.recordArtifact(t, customer.Id, entity.InterestProposalPayload{Category: entity.InterestCategoryFinancial, Label: "Tax saving"})

	_, err := f.review.Decide(ctx, a.Id, "rm-1", &dto.DecideArtifactRequest{Status: "edited", EditedValue: "x"})
	assert.True(t, apperror.IsValidation(err))

	decided, err := f.review.Decide(ctx, a.Id, "rm-1", &dto.DecideArtifactRequest{Status: "rejected"})
	require.NoError(t, err)
	assert.Equal(t, entity.ArtifactStatusRejected, decided.Status)

	interests, err := f.interests.ListByCustomer(ctx, customer.Id, &dto.ListInterestsQuery{IncludeArchived: true})
	require.NoError(t, err)
	assert.Empty(t, interests)
}

func TestDecide_NoteAcceptAndEdit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.createCustomer(t)
	accepted := f.recordArtifact(t, customer.Id, entity.NotePayload{Content: "Prefers evening calls."})
	edited := f.recordArtifact(t, customer.Id, entity.NotePayload{Content: "Has two kids"})

	_, err := f.review.Decide(ctx, accepted.Id, "rm-1", &dto.DecideArtifactRequest{Status: "accepted"})
	require.NoError(t, err)

	_, err = f.review.Decide(ctx, edited.Id, "rm-1", &dto.DecideArtifactRequest{Status: "edited", EditedValue: 3})
	assert.True(t, apperror.IsValidation(err))

	decided, err := f.review.Decide(ctx, edited.Id, "rm-1", &dto.DecideArtifactRequest{Status: "edited", EditedValue: "Has two kids in college"})
	require.NoError(t, err)
	assert.Equal(t, entity.ArtifactStatusEdited, decided.Status)

	notes, err := f.customers.ListNotes(ctx, customer.Id, 0, 0)
	require.NoError(t, err)
	require.Len(t, notes, 2)

	contents := []string{notes[0].Content, notes[1].Content}
	assert.ElementsMatch(t, []string{"Prefers evening calls.", "Has two kids in college"}, contents)
	for _, n := range notes {
		assert.Equal(t, "rm-1", n.CreatedBy)
		assert.NotNil(t, n.SourceArtifactId)
	}
}

func TestArtifactService_WrongTypeIsInvalidState(t *testing.T) {
	f := newFixture(t)
	customer := f.createCustomer(t)
	note := f.recordArtifact(t, customer.Id, entity.NotePayload{Content: "hello"})

	_, err := f.artifacts.AcceptProfileEdit(context.Background(), note.Id, "rm-1")
	assert.True(t, apperror.IsInvalidState(err))
	assert.Equal(t, entity.ArtifactStatusPending, f.reloadArtifact(t, note.Id).Status)
}

func TestArtifactService_ListByCustomer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.createCustomer(t)
	edit := f.recordArtifact(t, customer.Id, entity.ProfileEditPayload{FieldKey: entity.FieldOccupation, ProposedValue: "Architect"})
	f.recordArtifact(t, customer.Id, entity.NotePayload{Content: "hello"})

	_, err := f.artifacts.RejectProfileEdit(ctx, edit.Id, "rm-1")
	require.NoError(t, err)

	pending, err := f.artifacts.ListByCustomer(ctx, customer.Id, &dto.ListArtifactsQuery{Status: "pending,bogus"})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, entity.ArtifactTypeNote, pending[0].Type)

	edits, err := f.artifacts.ListByCustomer(ctx, customer.Id, &dto.ListArtifactsQuery{ArtifactType: "profile_edit"})
	require.NoError(t, err)
	require.Len(t, edits, 1)
	assert.Equal(t, entity.ArtifactStatusRejected, edits[0].Status)

	_, err = f.artifacts.ListByCustomer(ctx, customer.Id, &dto.ListArtifactsQuery{ArtifactType: "photo"})
	assert.True(t, apperror.IsValidation(err))

	_, err = f.artifacts.ListByCustomer(ctx, uuid.New(), nil)
	assert.True(t, apperror.IsNotFound(err))
}

func TestParseArtifactStatuses(t *testing.T) {
	assert.Nil(t, ParseArtifactStatuses(""))
	assert.Equal(t,
		[]entity.ArtifactStatus{entity.ArtifactStatusPending, entity.ArtifactStatusEdited},
		ParseArtifactStatuses(" Pending ,edited,,pending,nope"),
	)
}
