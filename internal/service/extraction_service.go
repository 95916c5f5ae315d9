package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"customer-insight-be/internal/config"
	"customer-insight-be/internal/dto"
	"customer-insight-be/internal/entity"
	"customer-insight-be/internal/pkg/apperror"
	"customer-insight-be/internal/repository/contract"
	"customer-insight-be/internal/repository/unitofwork"
	"customer-insight-be/pkg/nudge"

	"github.com/google/uuid"
)

// IExtractionService takes in what the extraction model produced for a
// customer and turns it into reviewable artifacts.
type IExtractionService interface {
	Ingest(ctx context.Context, customerId uuid.UUID, req *dto.ExtractionRequest) (*dto.ExtractionResponse, error)
	GetProposal(ctx context.Context, id uuid.UUID) (*entity.ProfileUpdateProposal, error)
}

type extractionService struct {
	uowFactory      unitofwork.RepositoryFactory
	proposals       contract.ProposalCache
	artifactService IArtifactService
	nudgeService    INudgeService
	reviewCfg       config.ReviewConfig
}

func NewExtractionService(
	uowFactory unitofwork.RepositoryFactory,
	proposals contract.ProposalCache,
	artifactService IArtifactService,
	nudgeService INudgeService,
	reviewCfg config.ReviewConfig,
) IExtractionService {
	return &extractionService{
		uowFactory:      uowFactory,
		proposals:       proposals,
		artifactService: artifactService,
		nudgeService:    nudgeService,
		reviewCfg:       reviewCfg,
	}
}

func (s *extractionService) Ingest(ctx context.Context, customerId uuid.UUID, req *dto.ExtractionRequest) (*dto.ExtractionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	customer, err := loadCustomer(ctx, uow, customerId)
	if err != nil {
		return nil, err
	}

	proposal := req.Proposal
	// Ids are always server-assigned so intake never replaces a cached proposal.
	proposal.Id = uuid.New()
	proposal.CustomerId = customerId
	proposal.CreatedAt = time.Now()
	proposal.EnsureItemIds()
	if err := normalizeProposal(&proposal, customer); err != nil {
		return nil, err
	}

	artifacts := buildArtifacts(&proposal)
	if err := s.artifactService.Record(ctx, artifacts); err != nil {
		return nil, err
	}
	if err := s.proposals.Save(ctx, &proposal); err != nil {
		return nil, apperror.Internal(err, "failed to cache proposal")
	}

	res := &dto.ExtractionResponse{
		Proposal:  &proposal,
		Artifacts: dto.NewArtifactResponses(artifacts),
	}

	var set entity.NudgeSet
	if !req.Nudges.IsEmpty() {
		set = *req.Nudges
		for i := range set.Nudges {
			if set.Nudges[i].Id == "" {
				set.Nudges[i].Id = fmt.Sprintf("q%d", i+1)
			}
		}
	} else {
		required := req.RequiredFields
		if len(required) == 0 {
			required = s.reviewCfg.RequiredFields
		}
		set = nudge.Build(&proposal, customer.Fields, required)
	}
	session, err := s.nudgeService.Start(ctx, customerId, &proposal.Id, set)
	if err != nil {
		return nil, err
	}
	res.Nudge = session
	return res, nil
}

func (s *extractionService) GetProposal(ctx context.Context, id uuid.UUID) (*entity.ProfileUpdateProposal, error) {
	proposal, err := s.proposals.Get(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err, "failed to load proposal")
	}
	if proposal == nil {
		return nil, apperror.NotFound("proposal not found")
	}
	return proposal, nil
}

// normalizeProposal rejects malformed items and fills in the customer's
// current value next to each proposed edit.
func normalizeProposal(p *entity.ProfileUpdateProposal, customer *entity.Customer) error {
	for i := range p.FieldEdits {
		f := &p.FieldEdits[i]
		f.FieldKey = strings.TrimSpace(f.FieldKey)
		if f.FieldKey == "" {
			return apperror.Validation("fieldEdits[%d]: fieldKey is required", i)
		}
		if entity.IsReservedField(f.FieldKey) {
			return apperror.Validation("fieldEdits[%d]: field %s cannot be updated", i, f.FieldKey)
		}
		if f.Confidence == "" {
			f.Confidence = entity.ConfidenceLow
		} else if !f.Confidence.IsValid() {
			return apperror.Validation("fieldEdits[%d]: invalid confidence %s", i, f.Confidence)
		}
		f.CurrentValue = customer.Fields[f.FieldKey]
		f.ArtifactId = nil
	}
	for i := range p.AdditionalData {
		d := &p.AdditionalData[i]
		d.Key = strings.TrimSpace(d.Key)
		if d.Key == "" {
			return apperror.Validation("additionalData[%d]: key is required", i)
		}
		if d.Confidence != "" && !d.Confidence.IsValid() {
			return apperror.Validation("additionalData[%d]: invalid confidence %s", i, d.Confidence)
		}
	}
	for i := range p.Interests {
		in := &p.Interests[i]
		if !in.Category.IsValid() {
			return apperror.Validation("interests[%d]: invalid category %s", i, in.Category)
		}
		in.Label = strings.TrimSpace(in.Label)
		if in.Label == "" {
			return apperror.Validation("interests[%d]: label is required", i)
		}
		if in.Confidence == "" {
			in.Confidence = entity.ConfidenceLow
		} else if !in.Confidence.IsValid() {
			return apperror.Validation("interests[%d]: invalid confidence %s", i, in.Confidence)
		}
		in.ArtifactId = nil
	}
	if p.Note != nil {
		if strings.TrimSpace(p.Note.Content) == "" {
			p.Note = nil
		} else {
			p.Note.ArtifactId = nil
		}
	}
	return nil
}

// buildArtifacts creates one pending artifact per reviewable item and links
// it back onto the item. Additional data has no artifact type and is
// reviewed through the proposal only.
func buildArtifacts(p *entity.ProfileUpdateProposal) []*entity.Artifact {
	var artifacts []*entity.Artifact
	proposalId := p.Id

	for i := range p.FieldEdits {
		f := &p.FieldEdits[i]
		a := entity.NewArtifact(p.CustomerId, &proposalId, entity.ProfileEditPayload{
			FieldKey:      f.FieldKey,
			ProposedValue: f.ProposedValue,
			Confidence:    f.Confidence,
			SourceText:    f.SourceText,
		})
		f.ArtifactId = &a.Id
		artifacts = append(artifacts, a)
	}
	for i := range p.Interests {
		in := &p.Interests[i]
		a := entity.NewArtifact(p.CustomerId, &proposalId, entity.InterestProposalPayload{
			Category:    in.Category,
			Label:       in.Label,
			Description: in.Description,
			Confidence:  in.Confidence,
			SourceText:  in.SourceText,
		})
		in.ArtifactId = &a.Id
		artifacts = append(artifacts, a)
	}
	if p.Note != nil {
		a := entity.NewArtifact(p.CustomerId, &proposalId, entity.NotePayload{Content: p.Note.Content})
		p.Note.ArtifactId = &a.Id
		artifacts = append(artifacts, a)
	}
	return artifacts
}
