package entities

import "time"

// KanbanStatus is the CRM pipeline stage of a lead.
type KanbanStatus string

const (
	KanbanFrio        KanbanStatus = "Frio"
	KanbanMorno       KanbanStatus = "Morno"
	KanbanQuente      KanbanStatus = "Quente"
	KanbanUltraQuente KanbanStatus = "Ultra Quente"

	// KanbanLegacyCold is written by older classifier versions.
	KanbanLegacyCold KanbanStatus = "Cold"
)

// Urgency is the AI-assigned urgency of a lead.
type Urgency string

const (
	UrgencyBaixa    Urgency = "baixa"
	UrgencyMedia    Urgency = "média"
	UrgencyAlta     Urgency = "alta"
	UrgencyImediata Urgency = "imediata"
)

// LeadThresholds are the clinic-configured score cut points.
type LeadThresholds struct {
	FrioMax   int `json:"frio_max"`
	MornoMax  int `json:"morno_max"`
	QuenteMax int `json:"quente_max"`
}

// Valid reports 0 <= frio <= morno <= quente <= 100.
func (t LeadThresholds) Valid() bool {
	return t.FrioMax >= 0 && t.FrioMax <= t.MornoMax && t.MornoMax <= t.QuenteMax && t.QuenteMax <= 100
}

// QuizAnswer is one answered question of the intake quiz.
type QuizAnswer struct {
	QuestionID string   `json:"question_id"`
	Kind       string   `json:"kind"`
	Text       string   `json:"text,omitempty"`
	Options    []string `json:"options,omitempty"`
	Number     *float64 `json:"number,omitempty"`
}

const (
	QuizAnswerText   = "text"
	QuizAnswerChoice = "choice"
	QuizAnswerNumber = "number"
)

// Lead is an intake-quiz submission scored by the upstream classifier.
//
// Storage model (DynamoDB):
//   - PK: id
type Lead struct {
	ID           string       `json:"id"`
	ClinicID     string       `json:"clinic_id"`
	Name         string       `json:"name"`
	Phone        string       `json:"phone,omitempty"`
	Email        string       `json:"email,omitempty"`
	AIScore      int          `json:"ai_score"`
	AIUrgency    Urgency      `json:"ai_urgency"`
	KanbanStatus KanbanStatus `json:"kanban_status"`
	Answers      []QuizAnswer `json:"answers,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
