package lead

import (
	"errors"
	"testing"

	"clinica_xpto/internal/domain/entities"
)

func TestCalibrateStatus(t *testing.T) {
	th := entities.LeadThresholds{FrioMax: 50, MornoMax: 80, QuenteMax: 90}

	cases := []struct {
		name    string
		score   int
		urgency entities.Urgency
		current entities.KanbanStatus
		want    entities.KanbanStatus
	}{
		{"scenario C score overrides low urgency", 92, entities.UrgencyBaixa, entities.KanbanFrio, entities.KanbanUltraQuente},
		{"imediata overrides low score", 10, entities.UrgencyImediata, entities.KanbanFrio, entities.KanbanUltraQuente},
		{"score at quente max", 90, entities.UrgencyBaixa, entities.KanbanQuente, entities.KanbanUltraQuente},
		{"alta", 10, entities.UrgencyAlta, entities.KanbanFrio, entities.KanbanQuente},
		{"score at morno max", 80, entities.UrgencyBaixa, entities.KanbanFrio, entities.KanbanQuente},
		{"media", 0, entities.UrgencyMedia, entities.KanbanFrio, entities.KanbanMorno},
		{"unaccented media", 0, "MEDIA", entities.KanbanFrio, entities.KanbanMorno},
		{"score at frio max", 50, entities.UrgencyBaixa, entities.KanbanFrio, entities.KanbanMorno},
		{"urgency wins over lower score band", 60, entities.UrgencyAlta, entities.KanbanMorno, entities.KanbanQuente},
		{"cold trusted", 20, entities.UrgencyBaixa, entities.KanbanFrio, entities.KanbanFrio},
		{"legacy cold normalized", 20, entities.UrgencyBaixa, entities.KanbanLegacyCold, entities.KanbanFrio},
		{"empty current", 20, entities.UrgencyBaixa, "", entities.KanbanFrio},
		{"classifier stage kept below thresholds", 20, entities.UrgencyBaixa, entities.KanbanQuente, entities.KanbanQuente},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CalibrateStatus(tc.score, tc.urgency, th, tc.current); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestParseUrgency(t *testing.T) {
	for _, raw := range []string{"baixa", " Alta ", "média", "media", "IMEDIATA"} {
		if _, ok := ParseUrgency(raw); !ok {
			t.Fatalf("expected %q to parse", raw)
		}
	}
	if _, ok := ParseUrgency("urgent"); ok {
		t.Fatalf("expected unknown urgency to fail")
	}
}

func TestParseStatus(t *testing.T) {
	cases := map[string]entities.KanbanStatus{
		"Frio":         entities.KanbanFrio,
		" morno ":      entities.KanbanMorno,
		"QUENTE":       entities.KanbanQuente,
		"ultra quente": entities.KanbanUltraQuente,
		"Cold":         entities.KanbanLegacyCold,
	}
	for raw, want := range cases {
		got, ok := ParseStatus(raw)
		if !ok || got != want {
			t.Fatalf("ParseStatus(%q) = %q, %v; want %q", raw, got, ok, want)
		}
	}
	for _, raw := range []string{"", "Fervendo", "ultraquente"} {
		if _, ok := ParseStatus(raw); ok {
			t.Fatalf("expected %q rejected", raw)
		}
	}
}

func TestValidateThresholds(t *testing.T) {
	if err := ValidateThresholds(DefaultThresholds); err != nil {
		t.Fatalf("defaults must be valid: %v", err)
	}
	for _, th := range []entities.LeadThresholds{
		{FrioMax: -1, MornoMax: 50, QuenteMax: 90},
		{FrioMax: 60, MornoMax: 50, QuenteMax: 90},
		{FrioMax: 10, MornoMax: 50, QuenteMax: 101},
	} {
		if err := ValidateThresholds(th); !errors.Is(err, ErrInvalidThresholds) {
			t.Fatalf("expected ErrInvalidThresholds for %+v, got %v", th, err)
		}
	}
}

func TestValidateAnswer(t *testing.T) {
	n := 3.0
	valid := []entities.QuizAnswer{
		{QuestionID: "q1", Kind: entities.QuizAnswerText, Text: "dor no joelho"},
		{QuestionID: "q2", Kind: entities.QuizAnswerChoice, Options: []string{"botox"}},
		{QuestionID: "q3", Kind: entities.QuizAnswerNumber, Number: &n},
	}
	for _, a := range valid {
		if err := ValidateAnswer(a); err != nil {
			t.Fatalf("unexpected error for %+v: %v", a, err)
		}
	}

	invalid := []entities.QuizAnswer{
		{Kind: entities.QuizAnswerText, Text: "x"},
		{QuestionID: "q1", Kind: entities.QuizAnswerText},
		{QuestionID: "q2", Kind: entities.QuizAnswerChoice, Text: "botox"},
		{QuestionID: "q3", Kind: entities.QuizAnswerNumber, Text: "3"},
		{QuestionID: "q4", Kind: "scale"},
	}
	for _, a := range invalid {
		if err := ValidateAnswer(a); !errors.Is(err, ErrInvalidQuizAnswer) {
			t.Fatalf("expected ErrInvalidQuizAnswer for %+v, got %v", a, err)
		}
	}
}
