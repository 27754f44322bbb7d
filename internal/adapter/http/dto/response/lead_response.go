package response

import (
	"time"

	"clinica_xpto/internal/domain/entities"
)

type LeadResponse struct {
	ID           string                `json:"id"`
	ClinicID     string                `json:"clinic_id"`
	Name         string                `json:"name"`
	Phone        string                `json:"phone,omitempty"`
	Email        string                `json:"email,omitempty"`
	AIScore      int                   `json:"ai_score"`
	AIUrgency    string                `json:"ai_urgency"`
	KanbanStatus string                `json:"kanban_status"`
	Answers      []entities.QuizAnswer `json:"answers,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

type LeadThresholdsResponse struct {
	ClinicID  string `json:"clinic_id"`
	FrioMax   int    `json:"frio_max"`
	MornoMax  int    `json:"morno_max"`
	QuenteMax int    `json:"quente_max"`
}

func FromLead(l entities.Lead) LeadResponse {
	return LeadResponse{
		ID:           l.ID,
		ClinicID:     l.ClinicID,
		Name:         l.Name,
		Phone:        l.Phone,
		Email:        l.Email,
		AIScore:      l.AIScore,
		AIUrgency:    string(l.AIUrgency),
		KanbanStatus: string(l.KanbanStatus),
		Answers:      l.Answers,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

func FromLeadThresholds(clinicID string, t entities.LeadThresholds) LeadThresholdsResponse {
	return LeadThresholdsResponse{
		ClinicID:  clinicID,
		FrioMax:   t.FrioMax,
		MornoMax:  t.MornoMax,
		QuenteMax: t.QuenteMax,
	}
}
