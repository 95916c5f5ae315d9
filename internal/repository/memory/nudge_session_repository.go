package memory

import (
	"sync"
	"time"

	"customer-insight-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// NudgeSessionRepository holds open follow-up rounds. Sessions expire after
// the configured TTL whether or not they were finalized.
type NudgeSessionRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewNudgeSessionRepository(ttl time.Duration) *NudgeSessionRepository {
	return &NudgeSessionRepository{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (r *NudgeSessionRepository) Save(session *entity.NudgeSession) {
	r.cache.Set(session.Id.String(), cloneSession(session), cache.DefaultExpiration)
}

func (r *NudgeSessionRepository) Get(id uuid.UUID) (*entity.NudgeSession, bool) {
	if x, found := r.cache.Get(id.String()); found {
		return cloneSession(x.(*entity.NudgeSession)), true
	}
	return nil, false
}

// Update applies fn to the stored session under a lock so concurrent answers
// to the same session are not lost.
func (r *NudgeSessionRepository) Update(id uuid.UUID, fn func(*entity.NudgeSession) error) (*entity.NudgeSession, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	x, found := r.cache.Get(id.String())
	if !found {
		return nil, false, nil
	}
	session := cloneSession(x.(*entity.NudgeSession))
	if err := fn(session); err != nil {
		return nil, true, err
	}
	r.cache.Set(id.String(), session, cache.DefaultExpiration)
	return cloneSession(session), true, nil
}

func (r *NudgeSessionRepository) Delete(id uuid.UUID) {
	r.cache.Delete(id.String())
}

func cloneSession(s *entity.NudgeSession) *entity.NudgeSession {
	out := *s
	out.Answers = make(map[string]entity.NudgeAnswer, len(s.Answers))
	for k, v := range s.Answers {
		out.Answers[k] = v
	}
	out.Set.Nudges = append([]entity.Nudge(nil), s.Set.Nudges...)
	return &out
}
