package entity

import (
	"time"

	"github.com/google/uuid"
)

// Nudge is a follow-up question for a missing or low-confidence field.
type Nudge struct {
	Id       string `json:"id"`
	FieldKey string `json:"fieldKey"`
	Question string `json:"question"`
	Required bool   `json:"required"`
}

type NudgeSet struct {
	Nudges            []Nudge `json:"nudges"`
	ExtractionContext string  `json:"extractionContext,omitempty"`
}

func (s *NudgeSet) IsEmpty() bool {
	return s == nil || len(s.Nudges) == 0
}

type NudgeAnswer struct {
	QuestionId string  `json:"questionId"`
	FieldKey   string  `json:"fieldKey"`
	Answer     *string `json:"answer"`
	Skipped    bool    `json:"skipped"`
}

// NudgeSession is an open follow-up round for one customer.
type NudgeSession struct {
	Id         uuid.UUID              `json:"id"`
	CustomerId uuid.UUID              `json:"customerId"`
	ProposalId *uuid.UUID             `json:"proposalId,omitempty"`
	Set        NudgeSet               `json:"set"`
	Answers    map[string]NudgeAnswer `json:"answers"`
	CreatedAt  time.Time              `json:"createdAt"`
}
