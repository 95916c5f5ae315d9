package contract

import (
	"customer-insight-be/internal/entity"

	"github.com/google/uuid"
)

// NudgeSessionRepository keeps open follow-up rounds for a bounded time.
type NudgeSessionRepository interface {
	Save(session *entity.NudgeSession)
	Get(id uuid.UUID) (*entity.NudgeSession, bool)
	// Update runs fn on the stored session atomically. found is false when
	// the session is unknown or expired.
	Update(id uuid.UUID, fn func(*entity.NudgeSession) error) (session *entity.NudgeSession, found bool, err error)
	Delete(id uuid.UUID)
}
