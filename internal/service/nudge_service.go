package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"customer-insight-be/internal/dto"
	"customer-insight-be/internal/entity"
	"customer-insight-be/internal/pkg/apperror"
	"customer-insight-be/internal/repository/contract"
	"customer-insight-be/internal/repository/unitofwork"
	"customer-insight-be/pkg/events"
	"customer-insight-be/pkg/fieldvalidator"
	"customer-insight-be/pkg/nudge"

	"github.com/google/uuid"
)

type INudgeService interface {
	// Start opens a session for set. It returns nil without error when the set
	// has no questions; no session is created then.
	Start(ctx context.Context, customerId uuid.UUID, proposalId *uuid.UUID, set entity.NudgeSet) (*dto.NudgeSessionResponse, error)
	Get(ctx context.Context, sessionId uuid.UUID) (*dto.NudgeSessionResponse, error)
	SubmitAnswers(ctx context.Context, sessionId uuid.UUID, req *dto.SubmitNudgeAnswersRequest) (*dto.NudgeSessionResponse, error)
	Finalize(ctx context.Context, sessionId uuid.UUID, actorId string, req *dto.FinalizeNudgeRequest) (*dto.FinalizeNudgeResponse, error)
}

type nudgeService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   contract.NudgeSessionRepository
	validators *fieldvalidator.Registry
	events     IReviewEventService
}

func NewNudgeService(
	uowFactory unitofwork.RepositoryFactory,
	sessions contract.NudgeSessionRepository,
	validators *fieldvalidator.Registry,
	events IReviewEventService,
) INudgeService {
	return &nudgeService{
		uowFactory: uowFactory,
		sessions:   sessions,
		validators: validators,
		events:     events,
	}
}

func (s *nudgeService) Start(ctx context.Context, customerId uuid.UUID, proposalId *uuid.UUID, set entity.NudgeSet) (*dto.NudgeSessionResponse, error) {
	if set.IsEmpty() {
		return nil, nil
	}

	seen := make(map[string]bool, len(set.Nudges))
	nudges := make([]entity.Nudge, 0, len(set.Nudges))
	for i, n := range set.Nudges {
		n.FieldKey = strings.TrimSpace(n.FieldKey)
		if n.FieldKey == "" {
			return nil, apperror.Validation("nudge %d has no fieldKey", i+1)
		}
		if n.Id == "" {
			n.Id = uuid.NewString()
		}
		if seen[n.Id] {
			return nil, apperror.Validation("duplicate nudge id %s", n.Id)
		}
		seen[n.Id] = true
		nudges = append(nudges, n)
	}
	set.Nudges = nudges

	session := &entity.NudgeSession{
		Id:         uuid.New(),
		CustomerId: customerId,
		ProposalId: proposalId,
		Set:        set,
		Answers:    map[string]entity.NudgeAnswer{},
		CreatedAt:  time.Now(),
	}
	s.sessions.Save(session)
	return sessionResponse(session), nil
}

func (s *nudgeService) Get(ctx context.Context, sessionId uuid.UUID) (*dto.NudgeSessionResponse, error) {
	session, ok := s.sessions.Get(sessionId)
	if !ok {
		return nil, apperror.NotFound("nudge session not found")
	}
	return sessionResponse(session), nil
}

func (s *nudgeService) SubmitAnswers(ctx context.Context, sessionId uuid.UUID, req *dto.SubmitNudgeAnswersRequest) (*dto.NudgeSessionResponse, error) {
	session, found, err := s.sessions.Update(sessionId, func(session *entity.NudgeSession) error {
		byId := make(map[string]entity.Nudge, len(session.Set.Nudges))
		for _, n := range session.Set.Nudges {
			byId[n.Id] = n
		}
		for _, a := range req.Answers {
			n, ok := byId[a.QuestionId]
			if !ok {
				return apperror.Validation("unknown questionId: %s", a.QuestionId)
			}
			a.FieldKey = n.FieldKey
			if a.Answer == nil || strings.TrimSpace(*a.Answer) == "" {
				a.Answer = nil
				a.Skipped = true
			}
			session.Answers[a.QuestionId] = a
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperror.NotFound("nudge session not found")
	}
	return sessionResponse(session), nil
}

func (s *nudgeService) Finalize(ctx context.Context, sessionId uuid.UUID, actorId string, req *dto.FinalizeNudgeRequest) (*dto.FinalizeNudgeResponse, error) {
	session, ok := s.sessions.Get(sessionId)
	if !ok {
		return nil, apperror.NotFound("nudge session not found")
	}
	if req.ApplyAnswers && strings.TrimSpace(actorId) == "" {
		return nil, apperror.Validation("rmId is required")
	}

	answers := nudge.Finalize(&session.Set, submittedAnswers(session))
	res := &dto.FinalizeNudgeResponse{Answers: answers, Errors: []dto.ApplyItemError{}}

	if req.ApplyAnswers {
		applied, err := s.writeAnswers(ctx, session.CustomerId, answers, res)
		if err != nil {
			return nil, err
		}
		res.Applied = applied
	}

	s.sessions.Delete(sessionId)
	s.events.Emit(ctx, events.NudgeFinalized, session.CustomerId, map[string]interface{}{
		"session_id": sessionId,
		"answered":   len(nudge.Reconcile(answers)),
		"applied":    len(res.Applied),
	})
	return res, nil
}

// writeAnswers validates reconciled answers and merges the valid ones into
// the profile. Invalid answers are reported per field key.
func (s *nudgeService) writeAnswers(ctx context.Context, customerId uuid.UUID, answers []entity.NudgeAnswer, res *dto.FinalizeNudgeResponse) (map[string]interface{}, error) {
	values := nudge.Reconcile(answers)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	patch := contract.CustomerPatch{Fields: map[string]interface{}{}}
	for _, key := range keys {
		if entity.IsReservedField(key) {
			res.Errors = append(res.Errors, dto.ApplyItemError{Kind: dto.ApplyItemField, ItemId: key, Message: "field " + key + " cannot be updated"})
			continue
		}
		result := s.validators.Validate(key, values[key])
		if !result.Valid {
			res.Errors = append(res.Errors, dto.ApplyItemError{Kind: dto.ApplyItemField, ItemId: key, Message: apperror.Message(result.Err(key))})
			continue
		}
		patch.Fields[key] = derefString(result.Value)
	}
	if patch.IsEmpty() {
		return nil, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	ok, err := uow.CustomerRepository().Merge(ctx, customerId, patch)
	if err != nil {
		return nil, apperror.Internal(err, "failed to update customer")
	}
	if !ok {
		return nil, apperror.NotFound("customer not found")
	}
	return patch.Fields, nil
}

func submittedAnswers(session *entity.NudgeSession) []entity.NudgeAnswer {
	out := make([]entity.NudgeAnswer, 0, len(session.Answers))
	for _, a := range session.Answers {
		out = append(out, a)
	}
	return out
}

func sessionResponse(session *entity.NudgeSession) *dto.NudgeSessionResponse {
	tree, _ := nudge.Transform(&session.Set)
	return &dto.NudgeSessionResponse{
		Id:         session.Id,
		CustomerId: session.CustomerId,
		ProposalId: session.ProposalId,
		Tree:       tree,
		Answers:    nudge.Finalize(&session.Set, submittedAnswers(session)),
	}
}
