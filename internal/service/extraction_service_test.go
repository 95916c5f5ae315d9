package service

import (
	"context"
	"testing"

	"customer-insight-be/internal/dto"
	"customer-insight-be/internal/entity"
	"customer-insight-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngest_RecordsArtifactsAndCachesProposal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.createCustomer(t)

	res, err := f.extraction.Ingest(ctx, customer.Id, &dto.ExtractionRequest{
		Proposal: entity.ProfileUpdateProposal{
			ExtractionContext: "branch visit",
			FieldEdits: []entity.FieldEdit{
				{FieldKey: entity.FieldEmailPrimary, ProposedValue: "asha@example.com"},
				{FieldKey: entity.FieldOccupation, ProposedValue: "Architect", Confidence: entity.ConfidenceHigh},
			},
			AdditionalData: []entity.AdditionalDataItem{{Key: "petName", Value: "Bruno"}},
			Interests:      []entity.InterestProposalItem{{Category: entity.InterestCategoryPersonal, Label: "Golf"}},
			Note:           &entity.NoteDraft{Content: "Prefers evening calls."},
		},
	})
	require.NoError(t, err)

	p := res.Proposal
	assert.NotEqual(t, uuid.Nil, p.Id)
	assert.Equal(t, customer.Id, p.CustomerId)
	assert.Len(t, res.Artifacts, 4)

	assert.NotEmpty(t, p.FieldEdits[0].Id)
	assert.Equal(t, entity.ConfidenceLow, p.FieldEdits[0].Confidence)
	assert.NotNil(t, p.FieldEdits[0].ArtifactId)
	assert.NotNil(t, p.Interests[0].ArtifactId)
	assert.NotNil(t, p.Note.ArtifactId)
	assert.NotEmpty(t, p.AdditionalData[0].Id)

	cached, err := f.extraction.GetProposal(ctx, p.Id)
	require.NoError(t, err)
	assert.Equal(t, *p.FieldEdits[0].ArtifactId, *cached.FieldEdits[0].ArtifactId)

	pending, err := f.artifacts.ListByCustomer(ctx, customer.Id, &dto.ListArtifactsQuery{Status: "pending"})
	require.NoError(t, err)
	assert.Len(t, pending, 4)

	require.NotNil(t, res.Nudge)
	require.NotNil(t, res.Nudge.Tree)
	assert.Equal(t, "branch visit", res.Nudge.Tree.Context)
	require.Len(t, res.Nudge.Tree.Steps, 1)
	assert.Equal(t, entity.FieldEmailPrimary, res.Nudge.Tree.Steps[0].FieldKey)
	assert.Equal(t, p.Id, *res.Nudge.ProposalId)
}

func TestIngest_NoNudgeWhenNothingToAsk(t *testing.T) {
	f := newFixture(t)
	customer := f.createCustomer(t)

	res, err := f.extraction.Ingest(context.Background(), customer.Id, &dto.ExtractionRequest{
		Proposal: entity.ProfileUpdateProposal{
			FieldEdits: []entity.FieldEdit{{FieldKey: entity.FieldOccupation, ProposedValue: "Architect", Confidence: entity.ConfidenceMedium}},
			Note:       &entity.NoteDraft{Content: "   "},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, res.Nudge)
	assert.Nil(t, res.Proposal.Note)
	assert.Len(t, res.Artifacts, 1)
}

func TestIngest_ProvidedNudgesGetIds(t *testing.T) {
	f := newFixture(t)
	customer := f.createCustomer(t)

	res, err := f.extraction.Ingest(context.Background(), customer.Id, &dto.ExtractionRequest{
		Nudges: &entity.NudgeSet{Nudges: []entity.Nudge{
			{FieldKey: entity.FieldCityOfResidence, Question: "Which city?"},
			{FieldKey: entity.FieldOccupation, Question: "What do they do?"},
		}},
	})
	require.NoError(t, err)
	require.NotNil(t, res.Nudge)
	require.Len(t, res.Nudge.Tree.Steps, 2)
	assert.Equal(t, "q1", res.Nudge.Tree.Steps[0].QuestionId)
	assert.Equal(t, "q2", res.Nudge.Tree.Steps[1].QuestionId)
}

func TestIngest_RequiredFieldsOverride(t *testing.T) {
	f := newFixture(t)
	customer := f.createCustomer(t)

	res, err := f.extraction.Ingest(context.Background(), customer.Id, &dto.ExtractionRequest{
		RequiredFields: []string{entity.FieldCityOfResidence},
	})
	require.NoError(t, err)
	require.NotNil(t, res.Nudge)
	require.Len(t, res.Nudge.Tree.Steps, 1)
	assert.Equal(t, entity.FieldCityOfResidence, res.Nudge.Tree.Steps[0].FieldKey)
	assert.True(t, res.Nudge.Tree.Steps[0].Required)
}

func TestIngest_Rejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.createCustomer(t)

	_, err := f.extraction.Ingest(ctx, uuid.New(), &dto.ExtractionRequest{})
	assert.True(t, apperror.IsNotFound(err))

	cases := []entity.ProfileUpdateProposal{
		{FieldEdits: []entity.FieldEdit{{FieldKey: " "}}},
		{FieldEdits: []entity.FieldEdit{{FieldKey: "id", ProposedValue: "x"}}},
		{FieldEdits: []entity.FieldEdit{{FieldKey: entity.FieldOccupation, Confidence: "sure"}}},
		{Interests: []entity.InterestProposalItem{{Category: "sports", Label: "Golf"}}},
		{Interests: []entity.InterestProposalItem{{Category: entity.InterestCategoryPersonal}}},
		{AdditionalData: []entity.AdditionalDataItem{{Value: "x"}}},
	}
	for i, p := range cases {
		_, err := f.extraction.Ingest(ctx, customer.Id, &dto.ExtractionRequest{Proposal: p})
		assert.True(t, apperror.IsValidation(err), "case %d", i)
	}

	artifacts, err := f.artifacts.ListByCustomer(ctx, customer.Id, nil)
	require.NoError(t, err)
	assert.Empty(t, artifacts)
}

func TestIngest_AssignsFreshProposalId(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.createCustomer(t)

	first, err := f.extraction.Ingest(ctx, customer.Id, &dto.ExtractionRequest{
		Proposal: entity.ProfileUpdateProposal{
			FieldEdits: []entity.FieldEdit{{Id: "f1", FieldKey: entity.FieldOccupation, ProposedValue: "Architect", Confidence: entity.ConfidenceHigh}},
		},
	})
	require.NoError(t, err)

	second, err := f.extraction.Ingest(ctx, customer.Id, &dto.ExtractionRequest{
		Proposal: entity.ProfileUpdateProposal{
			Id:         first.Proposal.Id,
			FieldEdits: []entity.FieldEdit{{Id: "f1", FieldKey: entity.FieldOccupation, ProposedValue: "Pilot", Confidence: entity.ConfidenceHigh}},
		},
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.Proposal.Id, second.Proposal.Id)

	cached, err := f.extraction.GetProposal(ctx, first.Proposal.Id)
	require.NoError(t, err)
	assert.Equal(t, "Architect", cached.FieldEdits[0].ProposedValue)
}

func TestGetProposal_Missing(t *testing.T) {
	f := newFixture(t)
	_, err := f.extraction.GetProposal(context.Background(), uuid.New())
	assert.True(t, apperror.IsNotFound(err))
}
