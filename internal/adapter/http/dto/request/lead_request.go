package request

import "clinica_xpto/internal/domain/entities"

type QuizAnswerRequest struct {
	QuestionID string   `json:"question_id" binding:"required"`
	Kind       string   `json:"kind" binding:"required,oneof=text choice number"`
	Text       string   `json:"text"`
	Options    []string `json:"options"`
	Number     *float64 `json:"number"`
}

// LeadRequest is the classifier output posted when a quiz is finished.
type LeadRequest struct {
	ClinicID     string              `json:"clinic_id" binding:"required"`
	Name         string              `json:"name" binding:"required"`
	Phone        string              `json:"phone"`
	Email        string              `json:"email" binding:"omitempty,email"`
	AIScore      int                 `json:"ai_score" binding:"gte=0,lte=100"`
	AIUrgency    string              `json:"ai_urgency" binding:"required,lead_urgency"`
	KanbanStatus string              `json:"kanban_status" binding:"omitempty,kanban_status"`
	Answers      []QuizAnswerRequest `json:"answers" binding:"dive"`
}

func (r LeadRequest) ToAnswers() []entities.QuizAnswer {
	if len(r.Answers) == 0 {
		return nil
	}
	out := make([]entities.QuizAnswer, 0, len(r.Answers))
	for _, a := range r.Answers {
		out = append(out, entities.QuizAnswer{
			QuestionID: a.QuestionID,
			Kind:       a.Kind,
			Text:       a.Text,
			Options:    a.Options,
			Number:     a.Number,
		})
	}
	return out
}

type LeadThresholdsRequest struct {
	FrioMax   *int `json:"frio_max" binding:"required,gte=0,lte=100"`
	MornoMax  *int `json:"morno_max" binding:"required,gte=0,lte=100"`
	QuenteMax *int `json:"quente_max" binding:"required,gte=0,lte=100"`
}

func (r LeadThresholdsRequest) ToThresholds() entities.LeadThresholds {
	return entities.LeadThresholds{FrioMax: deref(r.FrioMax), MornoMax: deref(r.MornoMax), QuenteMax: deref(r.QuenteMax)}
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
