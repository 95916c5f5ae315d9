package service

import (
	"context"
	"strings"
	"time"

	"customer-insight-be/internal/dto"
	"customer-insight-be/internal/entity"
	"customer-insight-be/internal/pkg/apperror"
	"customer-insight-be/internal/pkg/logger"
	"customer-insight-be/internal/repository/contract"
	"customer-insight-be/internal/repository/unitofwork"
	"customer-insight-be/pkg/events"
	"customer-insight-be/pkg/fieldvalidator"

	"github.com/google/uuid"
)

// IApplyService commits the approved subset of a reviewed proposal. Items are
// applied independently: a failing item is reported in the result and never
// undoes the others.
type IApplyService interface {
	ApplyUpdates(ctx context.Context, customerId uuid.UUID, actorId string, req *dto.ApplyUpdatesRequest) (*dto.ApplyUpdatesResult, error)
}

type applyService struct {
	uowFactory      unitofwork.RepositoryFactory
	proposals       contract.ProposalCache
	interestService IInterestService
	validators      *fieldvalidator.Registry
	events          IReviewEventService
	logger          logger.ILogger
}

func NewApplyService(
	uowFactory unitofwork.RepositoryFactory,
	proposals contract.ProposalCache,
	interestService IInterestService,
	validators *fieldvalidator.Registry,
	events IReviewEventService,
	logger logger.ILogger,
) IApplyService {
	return &applyService{
		uowFactory:      uowFactory,
		proposals:       proposals,
		interestService: interestService,
		validators:      validators,
		events:          events,
		logger:          logger,
	}
}

type applyRun struct {
	customerId uuid.UUID
	actorId    string
	proposal   *entity.ProfileUpdateProposal
	req        *dto.ApplyUpdatesRequest
	result     *dto.ApplyUpdatesResult
}

func (r *applyRun) fail(kind dto.ApplyItemKind, itemId string, err error) {
	msg := apperror.Message(err)
	if msg == "" {
		msg = err.Error()
	}
	r.result.Errors = append(r.result.Errors, dto.ApplyItemError{Kind: kind, ItemId: itemId, Message: msg})
}

func (s *applyService) ApplyUpdates(ctx context.Context, customerId uuid.UUID, actorId string, req *dto.ApplyUpdatesRequest) (*dto.ApplyUpdatesResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	customer, err := loadCustomer(ctx, uow, customerId)
	if err != nil {
		return nil, err
	}

	result := &dto.ApplyUpdatesResult{Customer: customer, Errors: []dto.ApplyItemError{}}
	if req.IsEmpty() {
		return result, nil
	}

	proposal, err := s.resolveProposal(ctx, customerId, req)
	if err != nil {
		return nil, err
	}

	run := &applyRun{customerId: customerId, actorId: actorId, proposal: proposal, req: req, result: result}
	fieldsWritten := s.applyProfileItems(ctx, run)
	s.applyInterests(ctx, run)
	if req.ApprovedNote {
		s.applyNote(ctx, run)
	}

	updated, err := loadCustomer(ctx, s.uowFactory.NewUnitOfWork(ctx), customerId)
	if err != nil {
		return nil, err
	}
	result.Customer = updated

	s.logger.Info("APPLY", "Proposal applied", map[string]interface{}{
		"customer_id": customerId,
		"proposal_id": proposal.Id,
		"fields":      fieldsWritten,
		"interests":   len(result.Interests),
		"errors":      len(result.Errors),
	})
	s.events.Emit(ctx, events.ProposalApplied, customerId, map[string]interface{}{
		"proposal_id":  proposal.Id,
		"applied_by":   actorId,
		"fields":       fieldsWritten,
		"interests":    len(result.Interests),
		"note_created": result.Note != nil,
		"error_count":  len(result.Errors),
	})
	return result, nil
}

func (s *applyService) resolveProposal(ctx context.Context, customerId uuid.UUID, req *dto.ApplyUpdatesRequest) (*entity.ProfileUpdateProposal, error) {
	proposal := req.Proposal
	if proposal == nil {
		if req.ProposalId == nil {
			return nil, apperror.Validation("proposalId or proposal is required")
		}
		cached, err := s.proposals.Get(ctx, *req.ProposalId)
		if err != nil {
			return nil, apperror.Internal(err, "failed to load proposal")
		}
		if cached == nil {
			return nil, apperror.NotFound("proposal not found")
		}
		proposal = cached
	}
	if proposal.CustomerId != uuid.Nil && proposal.CustomerId != customerId {
		return nil, apperror.NotFound("proposal not found")
	}
	return proposal, nil
}

type stagedItem struct {
	kind dto.ApplyItemKind
	id   string
}

// applyProfileItems stages approved fields and additional data and writes
// them with one merge. Backing artifacts are decided in the same transaction
// so an artifact is only marked applied when its value was written.
func (s *applyService) applyProfileItems(ctx context.Context, run *applyRun) []string {
	if len(run.req.ApprovedFieldIds) == 0 && len(run.req.ApprovedAdditionalDataIds) == 0 {
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		s.failAll(run, run.req.ApprovedFieldIds, run.req.ApprovedAdditionalDataIds, apperror.Internal(err, "failed to save profile changes"))
		return nil
	}
	defer uow.Rollback()

	patch := contract.CustomerPatch{
		Fields:         map[string]interface{}{},
		AdditionalData: map[string]interface{}{},
	}
	var staged []stagedItem
	var written []string

	for _, id := range dedupe(run.req.ApprovedFieldIds) {
		edit, ok := run.proposal.FieldEdit(id)
		if !ok {
			run.fail(dto.ApplyItemField, id, apperror.NotFound("field edit %s not found in proposal", id))
			continue
		}
		key, value, err := s.resolveFieldEdit(ctx, uow, run, edit)
		if err != nil {
			run.fail(dto.ApplyItemField, id, err)
			continue
		}
		patch.Fields[key] = value
		staged = append(staged, stagedItem{kind: dto.ApplyItemField, id: id})
		written = append(written, key)
	}

	for _, id := range dedupe(run.req.ApprovedAdditionalDataIds) {
		item, ok := run.proposal.AdditionalDataItem(id)
		if !ok {
			run.fail(dto.ApplyItemAdditionalData, id, apperror.NotFound("additional data item %s not found in proposal", id))
			continue
		}
		key := strings.TrimSpace(item.Key)
		if key == "" {
			run.fail(dto.ApplyItemAdditionalData, id, apperror.Validation("additional data key is required"))
			continue
		}
		raw := item.Value
		if v, ok := run.req.EditedAdditionalData[id]; ok {
			raw = v
		}
		res := s.validators.Validate(key, raw)
		if !res.Valid {
			run.fail(dto.ApplyItemAdditionalData, id, res.Err(key))
			continue
		}
		patch.AdditionalData[key] = derefString(res.Value)
		staged = append(staged, stagedItem{kind: dto.ApplyItemAdditionalData, id: id})
	}

	if patch.IsEmpty() {
		return nil
	}

	ok, err := uow.CustomerRepository().Merge(ctx, run.customerId, patch)
	if err == nil && !ok {
		err = apperror.NotFound("customer not found")
	}
	if err == nil {
		err = uow.Commit()
	}
	if err != nil {
		s.logger.Error("APPLY", "Failed to write profile changes", map[string]interface{}{
			"customer_id": run.customerId,
			"error":       err.Error(),
		})
		for _, item := range staged {
			run.fail(item.kind, item.id, apperror.Internal(err, "failed to save profile changes"))
		}
		return nil
	}
	return written
}

// resolveFieldEdit returns the field key and normalized value to write for an
// approved field edit, deciding its backing artifact when it is still pending.
// An artifact-backed edit is always written under the artifact's own field.
func (s *applyService) resolveFieldEdit(ctx context.Context, uow unitofwork.UnitOfWork, run *applyRun, edit entity.FieldEdit) (string, interface{}, error) {
	key := strings.TrimSpace(edit.FieldKey)
	if key == "" {
		return "", nil, apperror.Validation("fieldKey is required")
	}
	if entity.IsReservedField(key) {
		return "", nil, apperror.Validation("field %s cannot be updated", key)
	}
	override, hasOverride := run.req.EditedValues[edit.Id]

	validate := func(raw interface{}) (string, interface{}, error) {
		res := s.validators.Validate(key, raw)
		if !res.Valid {
			return "", nil, res.Err(key)
		}
		return key, derefString(res.Value), nil
	}

	if edit.ArtifactId == nil {
		if hasOverride {
			return validate(override)
		}
		return validate(edit.ProposedValue)
	}

	repo := uow.ArtifactRepository()
	artifact, err := repo.FindById(ctx, *edit.ArtifactId)
	if err != nil {
		return "", nil, apperror.Internal(err, "failed to load artifact")
	}
	if artifact == nil || artifact.CustomerId != run.customerId {
		return "", nil, apperror.NotFound("artifact not found")
	}
	payload, err := artifact.ProfileEdit()
	if err != nil {
		return "", nil, apperror.InvalidState("artifact %s is a %s artifact, not %s", artifact.Id, artifact.Type, entity.ArtifactTypeProfileEdit)
	}
	if payload.FieldKey != key {
		return "", nil, apperror.Validation("field edit %s targets %s but artifact %s proposes %s", edit.Id, key, artifact.Id, payload.FieldKey)
	}

	switch artifact.Status {
	case entity.ArtifactStatusPending:
		raw := payload.ProposedValue
		t := entity.ArtifactTransition{To: entity.ArtifactStatusAccepted, DecidedBy: run.actorId}
		if hasOverride {
			raw = override
		}
		_, value, err := validate(raw)
		if err != nil {
			return "", nil, err
		}
		if hasOverride {
			t.To = entity.ArtifactStatusEdited
			t.EditedValue = value
		}
		if _, err := transitionArtifact(ctx, repo, artifact.Id, entity.ArtifactTypeProfileEdit, run.customerId, t); err != nil {
			return "", nil, err
		}
		return key, value, nil
	case entity.ArtifactStatusRejected:
		return "", nil, apperror.InvalidState("artifact %s was rejected", artifact.Id)
	case entity.ArtifactStatusAccepted, entity.ArtifactStatusEdited:
		if hasOverride {
			return validate(override)
		}
		return validate(artifact.AppliedValue())
	default:
		return "", nil, apperror.Internal(nil, "artifact %s has unknown status %s", artifact.Id, artifact.Status)
	}
}

func (s *applyService) applyInterests(ctx context.Context, run *applyRun) {
	for _, id := range dedupe(run.req.ApprovedInterestIds) {
		item, ok := run.proposal.Interest(id)
		if !ok {
			run.fail(dto.ApplyItemInterest, id, apperror.NotFound("interest %s not found in proposal", id))
			continue
		}

		var override *entity.InterestOverride
		if o, ok := run.req.EditedInterests[id]; ok {
			override = &o
		}

		var interest *entity.Interest
		var err error
		if item.ArtifactId != nil {
			interest, err = s.interestService.CreateFromArtifact(ctx, run.customerId, *item.ArtifactId, run.actorId, override)
		} else {
			req := &dto.CreateInterestRequest{
				Category:    string(item.Category),
				Label:       item.Label,
				Description: item.Description,
			}
			if override != nil {
				if override.Label != nil {
					req.Label = *override.Label
				}
				if override.Description != nil {
					req.Description = override.Description
				}
			}
			interest, err = s.interestService.CreateManual(ctx, run.customerId, run.actorId, req)
		}
		if err != nil {
			run.fail(dto.ApplyItemInterest, id, err)
			continue
		}
		run.result.Interests = append(run.result.Interests, interest)
	}
}

func (s *applyService) applyNote(ctx context.Context, run *applyRun) {
	draft := run.proposal.Note
	itemId := "note"
	if draft != nil && draft.Id != "" {
		itemId = draft.Id
	}

	var content string
	switch {
	case run.req.EditedNoteContent != nil:
		content = *run.req.EditedNoteContent
	case draft != nil:
		content = draft.Content
	default:
		run.fail(dto.ApplyItemNote, itemId, apperror.Validation("proposal has no note to approve"))
		return
	}
	content = strings.TrimSpace(content)
	if content == "" {
		run.fail(dto.ApplyItemNote, itemId, apperror.Validation("note content must not be empty"))
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		run.fail(dto.ApplyItemNote, itemId, apperror.Internal(err, "failed to save note"))
		return
	}
	defer uow.Rollback()

	var note *entity.CustomerNote
	var err error
	if draft != nil && draft.ArtifactId != nil {
		t := entity.ArtifactTransition{To: entity.ArtifactStatusAccepted, DecidedBy: run.actorId}
		if run.req.EditedNoteContent != nil {
			t.To = entity.ArtifactStatusEdited
			t.EditedValue = content
		}
		var artifact *entity.Artifact
		artifact, err = transitionArtifact(ctx, uow.ArtifactRepository(), *draft.ArtifactId, entity.ArtifactTypeNote, run.customerId, t)
		if err == nil {
			note, err = createNoteFromArtifact(ctx, uow, artifact, run.actorId)
		}
	} else {
		note = &entity.CustomerNote{
			Id:         uuid.New(),
			CustomerId: run.customerId,
			Content:    content,
			CreatedBy:  run.actorId,
			CreatedAt:  time.Now(),
		}
		if createErr := uow.CustomerNoteRepository().Create(ctx, note); createErr != nil {
			err = apperror.Internal(createErr, "failed to save note")
		}
	}
	if err == nil {
		if commitErr := uow.Commit(); commitErr != nil {
			err = apperror.Internal(commitErr, "failed to save note")
		}
	}
	if err != nil {
		run.fail(dto.ApplyItemNote, itemId, err)
		return
	}
	run.result.Note = note
}

func (s *applyService) failAll(run *applyRun, fieldIds, dataIds []string, err error) {
	for _, id := range dedupe(fieldIds) {
		run.fail(dto.ApplyItemField, id, err)
	}
	for _, id := range dedupe(dataIds) {
		run.fail(dto.ApplyItemAdditionalData, id, err)
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
