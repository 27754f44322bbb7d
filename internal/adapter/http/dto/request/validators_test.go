package request

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func newBindingValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.SetTagName("binding")
	if err := RegisterValidators(v); err != nil {
		t.Fatalf("register validators: %v", err)
	}
	return v
}

func TestPaymentMethodValidator(t *testing.T) {
	v := newBindingValidator(t)

	ok := CalculateRequest{PaymentMethods: []PaymentMethodRequest{{Method: "pix"}, {Method: "Credit_Card"}}}
	if err := v.Struct(ok); err != nil {
		t.Fatalf("expected valid methods, got %v", err)
	}

	bad := CalculateRequest{PaymentMethods: []PaymentMethodRequest{{Method: "cheque"}}}
	err := v.Struct(bad)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	verrs, isVal := err.(validator.ValidationErrors)
	if !isVal || verrs[0].Tag() != "payment_method" {
		t.Fatalf("expected payment_method tag, got %v", err)
	}
}

func TestLeadUrgencyValidator(t *testing.T) {
	v := newBindingValidator(t)

	for _, u := range []string{"baixa", "media", "Média", "ALTA", "imediata"} {
		r := LeadRequest{ClinicID: "c1", Name: "Ana", AIUrgency: u}
		if err := v.Struct(r); err != nil {
			t.Fatalf("expected %q valid, got %v", u, err)
		}
	}

	r := LeadRequest{ClinicID: "c1", Name: "Ana", AIUrgency: "urgente"}
	if err := v.Struct(r); err == nil {
		t.Fatalf("expected invalid urgency")
	}
}

func TestKanbanStatusValidator(t *testing.T) {
	v := newBindingValidator(t)

	for _, s := range []string{"", "Frio", "morno", "Ultra Quente", "Cold"} {
		r := LeadRequest{ClinicID: "c1", Name: "Ana", AIUrgency: "alta", KanbanStatus: s}
		if err := v.Struct(r); err != nil {
			t.Fatalf("expected %q valid, got %v", s, err)
		}
	}

	r := LeadRequest{ClinicID: "c1", Name: "Ana", AIUrgency: "alta", KanbanStatus: "Fechado"}
	err := v.Struct(r)
	verrs, isVal := err.(validator.ValidationErrors)
	if !isVal || verrs[0].Tag() != "kanban_status" {
		t.Fatalf("expected kanban_status tag, got %v", err)
	}
	if fields := FieldErrors(verrs); fields["kanban_status"] != "kanban_status" {
		t.Fatalf("unexpected fields %v", fields)
	}
}

func TestLeadRequest_Bounds(t *testing.T) {
	v := newBindingValidator(t)

	r := LeadRequest{ClinicID: "c1", Name: "Ana", AIUrgency: "alta", AIScore: 101}
	if err := v.Struct(r); err == nil {
		t.Fatalf("expected score bound error")
	}

	r = LeadRequest{
		ClinicID:  "c1",
		Name:      "Ana",
		AIUrgency: "alta",
		Answers:   []QuizAnswerRequest{{QuestionID: "q1", Kind: "audio"}},
	}
	if err := v.Struct(r); err == nil {
		t.Fatalf("expected answer kind error")
	}
}

func TestLeadThresholdsRequest(t *testing.T) {
	v := newBindingValidator(t)

	zero, seventy, ninety := 0, 70, 90
	r := LeadThresholdsRequest{FrioMax: &zero, MornoMax: &seventy, QuenteMax: &ninety}
	if err := v.Struct(r); err != nil {
		t.Fatalf("expected valid thresholds, got %v", err)
	}
	got := r.ToThresholds()
	if got.FrioMax != 0 || got.MornoMax != 70 || got.QuenteMax != 90 {
		t.Fatalf("unexpected thresholds %+v", got)
	}

	if err := v.Struct(LeadThresholdsRequest{FrioMax: &zero}); err == nil {
		t.Fatalf("expected missing fields error")
	}
}

func TestLeadRequest_ToAnswers(t *testing.T) {
	n := 3.0
	r := LeadRequest{Answers: []QuizAnswerRequest{{QuestionID: "q1", Kind: "number", Number: &n}}}
	got := r.ToAnswers()
	if len(got) != 1 || *got[0].Number != 3 || got[0].Kind != "number" {
		t.Fatalf("unexpected answers %+v", got)
	}
	if (LeadRequest{}).ToAnswers() != nil {
		t.Fatalf("expected nil answers")
	}
}

func TestFieldErrors_UsesJSONPaths(t *testing.T) {
	v := newBindingValidator(t)

	err := v.Struct(BudgetRequest{PaymentMethods: []PaymentMethodRequest{{Method: "pix"}, {Method: "cheque"}}})
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		t.Fatalf("expected validation errors, got %v", err)
	}

	fields := FieldErrors(verrs)
	if fields["payment_methods[1].method"] != "payment_method" {
		t.Fatalf("unexpected fields %v", fields)
	}
}
