// Package nudge turns incomplete extractions into sequential follow-up
// questions and folds the answers back onto profile field keys.
package nudge

import (
	"fmt"
	"strings"

	"customer-insight-be/internal/entity"
)

// RenderTree is the presentation structure for one round of follow-up questions.
type RenderTree struct {
	Context       string `json:"context,omitempty"`
	Total         int    `json:"total"`
	RequiredCount int    `json:"requiredCount"`
	Steps         []Step `json:"steps"`
}

type Step struct {
	Position   int       `json:"position"`
	QuestionId string    `json:"questionId"`
	FieldKey   string    `json:"fieldKey"`
	Label      string    `json:"label"`
	Question   string    `json:"question"`
	Required   bool      `json:"required"`
	Input      InputHint `json:"input"`
	NextId     string    `json:"nextId,omitempty"`
}

type InputHint struct {
	Kind        entity.FieldKind `json:"kind"`
	Placeholder string           `json:"placeholder,omitempty"`
}

var placeholders = map[entity.FieldKind]string{
	entity.FieldKindPhone:  "98765 43210",
	entity.FieldKindEmail:  "name@example.com",
	entity.FieldKindDate:   "YYYY-MM-DD",
	entity.FieldKindNumber: "0",
}

// Transform builds the render tree for set. It returns false when there is
// nothing to ask; callers must not render a nudge UI in that case.
func Transform(set *entity.NudgeSet) (*RenderTree, bool) {
	if set.IsEmpty() {
		return nil, false
	}

	tree := &RenderTree{
		Context: set.ExtractionContext,
		Total:   len(set.Nudges),
		Steps:   make([]Step, 0, len(set.Nudges)),
	}
	for i, n := range set.Nudges {
		def := entity.LookupField(n.FieldKey)
		step := Step{
			Position:   i + 1,
			QuestionId: n.Id,
			FieldKey:   n.FieldKey,
			Label:      def.Label,
			Question:   n.Question,
			Required:   n.Required,
			Input:      InputHint{Kind: def.Kind, Placeholder: placeholders[def.Kind]},
		}
		if i+1 < len(set.Nudges) {
			step.NextId = set.Nudges[i+1].Id
		}
		if n.Required {
			tree.RequiredCount++
		}
		tree.Steps = append(tree.Steps, step)
	}
	return tree, true
}

// Finalize emits exactly one answer per nudge, in nudge order. Nudges without
// a partial answer default to skipped with a null answer.
func Finalize(set *entity.NudgeSet, partial []entity.NudgeAnswer) []entity.NudgeAnswer {
	if set.IsEmpty() {
		return nil
	}

	given := make(map[string]entity.NudgeAnswer, len(partial))
	for _, a := range partial {
		given[a.QuestionId] = a
	}

	answers := make([]entity.NudgeAnswer, 0, len(set.Nudges))
	for _, n := range set.Nudges {
		a, ok := given[n.Id]
		if !ok {
			answers = append(answers, entity.NudgeAnswer{QuestionId: n.Id, FieldKey: n.FieldKey, Answer: nil, Skipped: true})
			continue
		}
		answers = append(answers, entity.NudgeAnswer{
			QuestionId: n.Id,
			FieldKey:   n.FieldKey,
			Answer:     a.Answer,
			Skipped:    a.Skipped,
		})
	}
	return answers
}

// Reconcile maps answered nudges to field key -> answer. Skipped and blank
// answers are dropped; a later answer for the same field wins.
func Reconcile(answers []entity.NudgeAnswer) map[string]string {
	values := make(map[string]string)
	for _, a := range answers {
		if a.Skipped || a.Answer == nil || strings.TrimSpace(*a.Answer) == "" {
			continue
		}
		values[a.FieldKey] = strings.TrimSpace(*a.Answer)
	}
	return values
}

// Build derives a nudge set from an extraction: one question per
// low-confidence field edit, then one per required field that neither the
// proposal nor the existing profile supplies.
func Build(proposal *entity.ProfileUpdateProposal, existing map[string]interface{}, required []string) entity.NudgeSet {
	set := entity.NudgeSet{}
	if proposal != nil {
		set.ExtractionContext = proposal.ExtractionContext
	}

	asked := make(map[string]bool)
	supplied := make(map[string]bool)

	if proposal != nil {
		for _, f := range proposal.FieldEdits {
			supplied[f.FieldKey] = true
			if !f.Confidence.NeedsFollowUp() || asked[f.FieldKey] {
				continue
			}
			asked[f.FieldKey] = true
			set.Nudges = append(set.Nudges, entity.Nudge{
				Id:       questionId(len(set.Nudges)),
				FieldKey: f.FieldKey,
				Question: confirmQuestion(f),
				Required: isRequired(f.FieldKey, required),
			})
		}
	}

	for _, key := range required {
		if asked[key] || supplied[key] || hasValue(existing, key) {
			continue
		}
		asked[key] = true
		set.Nudges = append(set.Nudges, entity.Nudge{
			Id:       questionId(len(set.Nudges)),
			FieldKey: key,
			Question: fmt.Sprintf("What is the customer's %s?", entity.LookupField(key).Label),
			Required: true,
		})
	}
	return set
}

func questionId(i int) string {
	return fmt.Sprintf("q%d", i+1)
}

func confirmQuestion(f entity.FieldEdit) string {
	label := entity.LookupField(f.FieldKey).Label
	if f.ProposedValue == nil {
		return fmt.Sprintf("What is the customer's %s?", label)
	}
	return fmt.Sprintf("We noted %v as the customer's %s. Can you confirm it?", f.ProposedValue, label)
}

func isRequired(key string, required []string) bool {
	for _, r := range required {
		if r == key {
			return true
		}
	}
	return false
}

func hasValue(fields map[string]interface{}, key string) bool {
	v, ok := fields[key]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}
