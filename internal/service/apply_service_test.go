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

// ingest records a proposal with two field edits, one additional data item,
// two interests and a note.
func ingest(t *testing.T, f *fixture, customerId uuid.UUID) *entity.ProfileUpdateProposal {
	t.Helper()
	res, err := f.extraction.Ingest(context.Background(), customerId, &dto.ExtractionRequest{
		Proposal: entity.ProfileUpdateProposal{
			FieldEdits: []entity.FieldEdit{
				{Id: "f1", FieldKey: entity.FieldSecondaryMobile, ProposedValue: "9123456789", Confidence: entity.ConfidenceHigh},
				{Id: "f2", FieldKey: entity.FieldOccupation, ProposedValue: "Architect", Confidence: entity.ConfidenceHigh},
			},
			AdditionalData: []entity.AdditionalDataItem{
				{Id: "a1", Key: "petName", Value: "Bruno"},
			},
			Interests: []entity.InterestProposalItem{
				{Id: "i1", Category: entity.InterestCategoryPersonal, Label: "Golf"},
				{Id: "i2", Category: entity.InterestCategoryFinancial, Label: "Tax saving"},
			},
			Note: &entity.NoteDraft{Id: "n1", Content: "Prefers evening calls."},
		},
	})
	require.NoError(t, err)
	return res.Proposal
}

func TestApplyUpdates_ZeroApprovalsIsNoop(t *testing.T) {
	f := newFixture(t)
	customer := f.createCustomer(t)

	result, err := f.apply.ApplyUpdates(context.Background(), customer.Id, "rm-1", &dto.ApplyUpdatesRequest{})
	require.NoError(t, err)
	assert.Equal(t, customer.Id, result.Customer.Id)
	assert.NotNil(t, result.Errors)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Interests)
	assert.Nil(t, result.Note)
	assert.Zero(t, f.events.count(events.ProposalApplied))

	_, err = f.apply.ApplyUpdates(context.Background(), uuid.New(), "rm-1", &dto.ApplyUpdatesRequest{})
	assert.True(t, apperror.IsNotFound(err))
}

func TestApplyUpdates_AppliesEverythingWithOverrides(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.createCustomer(t)
	proposal := ingest(t, f, customer.Id)

	result, err := f.apply.ApplyUpdates(ctx, customer.Id, "rm-1", &dto.ApplyUpdatesRequest{
		ProposalId:                &proposal.Id,
		ApprovedFieldIds:          []string{"f1", "f2", "f2"},
		ApprovedAdditionalDataIds: []string{"a1"},
		ApprovedInterestIds:       []string{"i1", "i2"},
		ApprovedNote:              true,
		EditedValues:              map[string]interface{}{"f2": "Senior Architect"},
		EditedInterests:           map[string]entity.InterestOverride{"i1": {Label: strPtr("Golf weekends")}},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Errors)

	fields := result.Customer.Fields
	assert.Equal(t, "+91 91234 56789", fields[entity.FieldSecondaryMobile])
	assert.Equal(t, "Senior Architect", fields[entity.FieldOccupation])
	assert.Equal(t, "Bruno", result.Customer.AdditionalData["petName"])

	require.Len(t, result.Interests, 2)
	assert.Equal(t, "Golf weekends", result.Interests[0].Label)
	require.NotNil(t, result.Note)
	assert.Equal(t, "Prefers evening calls.", result.Note.Content)

	f1 := f.reloadArtifact(t, *proposal.FieldEdits[0].ArtifactId)
	assert.Equal(t, entity.ArtifactStatusAccepted, f1.Status)

	f2 := f.reloadArtifact(t, *proposal.FieldEdits[1].ArtifactId)
	assert.Equal(t, entity.ArtifactStatusEdited, f2.Status)
	assert.Equal(t, "Senior Architect", f2.EditedValue)
	payload, err := f2.ProfileEdit()
	require.NoError(t, err)
	assert.Equal(t, "Architect", payload.ProposedValue)

	i1 := f.reloadArtifact(t, *proposal.Interests[0].ArtifactId)
	assert.Equal(t, entity.ArtifactStatusAccepted, i1.Status)
	interestPayload, err := i1.InterestProposal()
	require.NoError(t, err)
	assert.Equal(t, "Golf", interestPayload.Label)

	assert.Equal(t, entity.ArtifactStatusAccepted, f.reloadArtifact(t, *proposal.Note.ArtifactId).Status)
	assert.Equal(t, 1, f.events.count(events.ProposalApplied))
}

func TestApplyUpdates_PartialFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.createCustomer(t)
	proposal := ingest(t, f, customer.Id)

	_, err := f.review.Decide(ctx, *proposal.Interests[1].ArtifactId, "rm-1", &dto.DecideArtifactRequest{Status: "rejected"})
	require.NoError(t, err)

	result, err := f.apply.ApplyUpdates(ctx, customer.Id, "rm-1", &dto.ApplyUpdatesRequest{
		ProposalId:          &proposal.Id,
		ApprovedFieldIds:    []string{"f1", "f2", "missing"},
		ApprovedInterestIds: []string{"i1", "i2"},
		EditedValues:        map[string]interface{}{"f1": "12345"},
	})
	require.NoError(t, err)

	byItem := map[string]dto.ApplyItemError{}
	for _, e := range result.Errors {
		byItem[e.ItemId] = e
	}
	require.Len(t, byItem, 3)
	assert.Equal(t, dto.ApplyItemField, byItem["f1"].Kind)
	assert.Contains(t, byItem["f1"].Message, entity.FieldSecondaryMobile)
	assert.Equal(t, dto.ApplyItemField, byItem["missing"].Kind)
	assert.Equal(t, dto.ApplyItemInterest, byItem["i2"].Kind)

	assert.Equal(t, "Architect", result.Customer.Fields[entity.FieldOccupation])
	assert.NotContains(t, result.Customer.Fields, entity.FieldSecondaryMobile)
	require.Len(t, result.Interests, 1)
	assert.Equal(t, "Golf", result.Interests[0].Label)

	assert.Equal(t, entity.ArtifactStatusPending, f.reloadArtifact(t, *proposal.FieldEdits[0].ArtifactId).Status)
}

func TestApplyUpdates_RejectedFieldArtifactIsInvalidState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.createCustomer(t)
	proposal := ingest(t, f, customer.Id)

	_, err := f.artifacts.RejectProfileEdit(ctx, *proposal.FieldEdits[1].ArtifactId, "rm-1")
	require.NoError(t, err)

	result, err := f.apply.ApplyUpdates(ctx, customer.Id, "rm-1", &dto.ApplyUpdatesRequest{
		ProposalId:       &proposal.Id,
		ApprovedFieldIds: []string{"f2"},
	})
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "f2", result.Errors[0].ItemId)
	assert.NotContains(t, result.Customer.Fields, entity.FieldOccupation)
}

func TestApplyUpdates_AlreadyDecidedFieldUsesAppliedValue(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.createCustomer(t)
	proposal := ingest(t, f, customer.Id)

	_, err := f.review.Decide(ctx, *proposal.FieldEdits[1].ArtifactId, "rm-1", &dto.DecideArtifactRequest{Status: "edited", EditedValue: "Principal Architect"})
	require.NoError(t, err)

	result, err := f.apply.ApplyUpdates(ctx, customer.Id, "rm-2", &dto.ApplyUpdatesRequest{
		ProposalId:       &proposal.Id,
		ApprovedFieldIds: []string{"f2"},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "Principal Architect", result.Customer.Fields[entity.FieldOccupation])
}

func TestApplyUpdates_InlineProposalWithoutArtifacts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.createCustomer(t)

	proposal := &entity.ProfileUpdateProposal{
		Id:         uuid.New(),
		CustomerId: customer.Id,
		FieldEdits: []entity.FieldEdit{{Id: "f1", FieldKey: entity.FieldEmailPrimary, ProposedValue: " Asha@Example.com "}},
		Interests:  []entity.InterestProposalItem{{Id: "i1", Category: entity.InterestCategoryPersonal, Label: "Cricket"}},
		Note:       &entity.NoteDraft{Id: "n1", Content: "Met at branch"},
	}

	result, err := f.apply.ApplyUpdates(ctx, customer.Id, "rm-1", &dto.ApplyUpdatesRequest{
		Proposal:            proposal,
		ApprovedFieldIds:    []string{"f1"},
		ApprovedInterestIds: []string{"i1"},
		ApprovedNote:        true,
		EditedNoteContent:   strPtr("Met at the Andheri branch"),
	})
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "asha@example.com", result.Customer.Fields[entity.FieldEmailPrimary])
	require.Len(t, result.Interests, 1)
	assert.Nil(t, result.Interests[0].SourceArtifactId)
	require.NotNil(t, result.Note)
	assert.Equal(t, "Met at the Andheri branch", result.Note.Content)
}

func TestApplyUpdates_FieldKeyMustMatchArtifact(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.createCustomer(t)
	recorded := ingest(t, f, customer.Id)
	artifactId := recorded.FieldEdits[0].ArtifactId
	require.NotNil(t, artifactId)

	proposal := &entity.ProfileUpdateProposal{
		Id:         uuid.New(),
		CustomerId: customer.Id,
		FieldEdits: []entity.FieldEdit{
			{Id: "x", FieldKey: entity.FieldOccupation, ProposedValue: "Architect", ArtifactId: artifactId},
		},
	}

	result, err := f.apply.ApplyUpdates(ctx, customer.Id, "rm-1", &dto.ApplyUpdatesRequest{
		Proposal:         proposal,
		ApprovedFieldIds: []string{"x"},
	})
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, dto.ApplyItemField, result.Errors[0].Kind)
	assert.Equal(t, "x", result.Errors[0].ItemId)
	assert.NotContains(t, result.Customer.Fields, entity.FieldOccupation)
	assert.NotContains(t, result.Customer.Fields, entity.FieldSecondaryMobile)
	assert.Equal(t, entity.ArtifactStatusPending, f.reloadArtifact(t, *artifactId).Status)

	// The artifact-backed edit still applies under its own field.
	proposal.FieldEdits[0].FieldKey = entity.FieldSecondaryMobile
	result, err = f.apply.ApplyUpdates(ctx, customer.Id, "rm-1", &dto.ApplyUpdatesRequest{
		Proposal:         proposal,
		ApprovedFieldIds: []string{"x"},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "+91 91234 56789", result.Customer.Fields[entity.FieldSecondaryMobile])
	assert.NotContains(t, result.Customer.Fields, entity.FieldOccupation)
	assert.Equal(t, entity.ArtifactStatusAccepted, f.reloadArtifact(t, *artifactId).Status)
}

func TestApplyUpdates_ProposalResolution(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.createCustomer(t)
	other := f.createCustomer(t)
	proposal := ingest(t, f, customer.Id)

	approve := []string{"f2"}

	_, err := f.apply.ApplyUpdates(ctx, customer.Id, "rm-1", &dto.ApplyUpdatesRequest{ApprovedFieldIds: approve})
	assert.True(t, apperror.IsValidation(err))

	missing := uuid.New()
	_, err = f.apply.ApplyUpdates(ctx, customer.Id, "rm-1", &dto.ApplyUpdatesRequest{ProposalId: &missing, ApprovedFieldIds: approve})
	assert.True(t, apperror.IsNotFound(err))

	_, err = f.apply.ApplyUpdates(ctx, other.Id, "rm-1", &dto.ApplyUpdatesRequest{ProposalId: &proposal.Id, ApprovedFieldIds: approve})
	assert.True(t, apperror.IsNotFound(err))
}

func TestApplyUpdates_NoteAlreadyDecided(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.createCustomer(t)
	proposal := ingest(t, f, customer.Id)

	_, err := f.artifacts.RejectNote(ctx, *proposal.Note.ArtifactId, "rm-1")
	require.NoError(t, err)

	result, err := f.apply.ApplyUpdates(ctx, customer.Id, "rm-1", &dto.ApplyUpdatesRequest{ProposalId: &proposal.Id, ApprovedNote: true})
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, dto.ApplyItemNote, result.Errors[0].Kind)
	assert.Equal(t, "n1", result.Errors[0].ItemId)
	assert.Nil(t, result.Note)

	notes, err := f.customers.ListNotes(ctx, customer.Id, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, notes)
}
