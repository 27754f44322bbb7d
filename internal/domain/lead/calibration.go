// Package lead reconciles the upstream classifier's score and urgency with
// the clinic's thresholds to pick a CRM pipeline stage.
package lead

import (
	"errors"
	"fmt"
	"strings"

	"clinica_xpto/internal/domain/entities"
)

var (
	ErrInvalidThresholds = errors.New("invalid lead thresholds")
	ErrInvalidQuizAnswer = errors.New("invalid quiz answer")
)

// DefaultThresholds apply to clinics that never configured their own.
var DefaultThresholds = entities.LeadThresholds{FrioMax: 40, MornoMax: 70, QuenteMax: 85}

// ParseUrgency accepts any casing and the unaccented "media".
func ParseUrgency(raw string) (entities.Urgency, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "baixa":
		return entities.UrgencyBaixa, true
	case "média", "media":
		return entities.UrgencyMedia, true
	case "alta":
		return entities.UrgencyAlta, true
	case "imediata":
		return entities.UrgencyImediata, true
	}
	return "", false
}

// ParseStatus accepts the pipeline stages in any casing plus the legacy
// "Cold" label, which is kept as-is for NormalizeStatus to map.
func ParseStatus(raw string) (entities.KanbanStatus, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, s := range []entities.KanbanStatus{
		entities.KanbanFrio,
		entities.KanbanMorno,
		entities.KanbanQuente,
		entities.KanbanUltraQuente,
		entities.KanbanLegacyCold,
	} {
		if strings.EqualFold(trimmed, string(s)) {
			return s, true
		}
	}
	return "", false
}

// NormalizeStatus maps legacy labels onto the current pipeline names.
func NormalizeStatus(s entities.KanbanStatus) entities.KanbanStatus {
	if strings.EqualFold(strings.TrimSpace(string(s)), string(entities.KanbanLegacyCold)) {
		return entities.KanbanFrio
	}
	if strings.TrimSpace(string(s)) == "" {
		return entities.KanbanFrio
	}
	return s
}

// CalibrateStatus returns the most severe stage implied by either the score
// or the urgency. When neither reaches Morno the classifier's own stage is
// kept.
func CalibrateStatus(score int, urgency entities.Urgency, t entities.LeadThresholds, current entities.KanbanStatus) entities.KanbanStatus {
	u, _ := ParseUrgency(string(urgency))
	switch {
	case u == entities.UrgencyImediata || score >= t.QuenteMax:
		return entities.KanbanUltraQuente
	case u == entities.UrgencyAlta || score >= t.MornoMax:
		return entities.KanbanQuente
	case u == entities.UrgencyMedia || score >= t.FrioMax:
		return entities.KanbanMorno
	}
	return NormalizeStatus(current)
}

// ValidateThresholds rejects thresholds outside 0..100 or out of order.
func ValidateThresholds(t entities.LeadThresholds) error {
	if !t.Valid() {
		return fmt.Errorf("%w: frio_max=%d morno_max=%d quente_max=%d", ErrInvalidThresholds, t.FrioMax, t.MornoMax, t.QuenteMax)
	}
	return nil
}

// ValidateAnswer checks that a quiz answer carries exactly the value its
// kind requires.
func ValidateAnswer(a entities.QuizAnswer) error {
	if strings.TrimSpace(a.QuestionID) == "" {
		return fmt.Errorf("%w: missing question_id", ErrInvalidQuizAnswer)
	}
	switch a.Kind {
	case entities.QuizAnswerText:
		if strings.TrimSpace(a.Text) == "" || len(a.Options) > 0 || a.Number != nil {
			return fmt.Errorf("%w: question %s expects text only", ErrInvalidQuizAnswer, a.QuestionID)
		}
	case entities.QuizAnswerChoice:
		if len(a.Options) == 0 || a.Text != "" || a.Number != nil {
			return fmt.Errorf("%w: question %s expects options only", ErrInvalidQuizAnswer, a.QuestionID)
		}
	case entities.QuizAnswerNumber:
		if a.Number == nil || a.Text != "" || len(a.Options) > 0 {
			return fmt.Errorf("%w: question %s expects a number only", ErrInvalidQuizAnswer, a.QuestionID)
		}
	default:
		return fmt.Errorf("%w: question %s has unknown kind %q", ErrInvalidQuizAnswer, a.QuestionID, a.Kind)
	}
	return nil
}
