package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"clinica_xpto/internal/domain/budget"
	"clinica_xpto/internal/domain/entities"
	"clinica_xpto/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrBudgetNotFound          = errors.New("budget not found")
	ErrInvalidBudgetID         = errors.New("invalid budget id")
	ErrInvalidPatientID        = errors.New("invalid patient id")
	ErrBudgetNotEditable       = errors.New("budget not editable")
	ErrBudgetExpired           = errors.New("budget expired")
	ErrInvalidStatusTransition = errors.New("invalid budget status transition")
)

// BudgetCommand is the full editable content of a budget.
type BudgetCommand struct {
	ClinicID       string
	PatientID      string
	Items          []entities.BudgetItem
	PaymentMethods []entities.PaymentMethod
	ValidUntil     *time.Time
	Notes          string
}

// SplitBreakdown is a normalized split plus the values shown next to it.
type SplitBreakdown struct {
	entities.PaymentMethod
	FeeValue         float64
	NetContribution  float64
	InstallmentValue float64
}

// BudgetCalculation is the preview returned while a budget is being edited.
type BudgetCalculation struct {
	Items          []entities.BudgetItem
	PaymentMethods []SplitBreakdown
	Totals         budget.Totals
}

// BudgetDraftEdit is the draft after one edit plus its refreshed preview.
type BudgetDraftEdit struct {
	Draft       budget.Draft
	Calculation BudgetCalculation
}

// IBudgetUseCase exposes budget (orçamento) operations.
//
//   - Calculate() refreshes totals on every edit, nothing is persisted
//   - Edit() applies one edit to a draft, parking discount changes that would
//     invalidate existing payment splits until the user confirms
//   - Create()/Update() re-derive, validate and persist an edit session
//   - Send()/Approve()/Cancel() drive the status machine

type IBudgetUseCase interface {
	Calculate(items []entities.BudgetItem, payments []entities.PaymentMethod) BudgetCalculation
	Edit(d budget.Draft, a budget.Action) (BudgetDraftEdit, error)
	Create(ctx context.Context, cmd BudgetCommand) (entities.Budget, error)
	Update(ctx context.Context, id string, cmd BudgetCommand) (entities.Budget, error)
	GetByID(ctx context.Context, id string) (entities.Budget, error)
	ListByPatient(ctx context.Context, patientID string) ([]entities.Budget, error)
	Send(ctx context.Context, id string) (entities.Budget, error)
	Approve(ctx context.Context, id string) (entities.Budget, error)
	Cancel(ctx context.Context, id string) (entities.Budget, error)
}

type BudgetUseCase struct {
	repo interfaces.IBudgetRepository
	now  func() time.Time
}

var _ IBudgetUseCase = (*BudgetUseCase)(nil)

func NewBudgetUseCase(repo interfaces.IBudgetRepository) *BudgetUseCase {
	return &BudgetUseCase{repo: repo, now: time.Now}
}

func (u *BudgetUseCase) Calculate(items []entities.BudgetItem, payments []entities.PaymentMethod) BudgetCalculation {
	d := budget.NewDraft(items, payments)
	calc := BudgetCalculation{
		Items:          d.Items,
		PaymentMethods: make([]SplitBreakdown, 0, len(d.PaymentMethods)),
		Totals:         d.Totals(),
	}
	if calc.Items == nil {
		calc.Items = []entities.BudgetItem{}
	}
	for _, p := range d.PaymentMethods {
		calc.PaymentMethods = append(calc.PaymentMethods, SplitBreakdown{
			PaymentMethod:    p,
			FeeValue:         budget.FeeValue(p),
			NetContribution:  budget.NetContribution(p),
			InstallmentValue: budget.InstallmentValue(p),
		})
	}
	return calc
}

// Edit normalizes the incoming draft and applies a. An item discount change
// while splits exist comes back in PhaseConfirmingDiscountReset with the
// splits untouched.
func (u *BudgetUseCase) Edit(d budget.Draft, a budget.Action) (BudgetDraftEdit, error) {
	base := budget.NewDraft(d.Items, d.PaymentMethods)
	if d.Phase != "" {
		base.Phase = d.Phase
	}
	base.Pending = d.Pending

	next, err := budget.ApplyEdit(base, a)
	if err != nil {
		log.Printf("[budget][usecase] draft edit rejected action=%s phase=%s err=%v", a.Kind, base.Phase, err)
		return BudgetDraftEdit{}, err
	}
	if next.Phase == budget.PhaseConfirmingDiscountReset && base.Phase != budget.PhaseConfirmingDiscountReset {
		log.Printf("[budget][usecase] discount change awaiting confirmation index=%d splits=%d", a.Index, len(next.PaymentMethods))
	}
	return BudgetDraftEdit{Draft: next, Calculation: u.Calculate(next.Items, next.PaymentMethods)}, nil
}

func (u *BudgetUseCase) Create(ctx context.Context, cmd BudgetCommand) (entities.Budget, error) {
	cmd.ClinicID = strings.TrimSpace(cmd.ClinicID)
	cmd.PatientID = strings.TrimSpace(cmd.PatientID)
	now := u.now().UTC()

	b, err := u.derive(cmd, now)
	if err != nil {
		log.Printf("[budget][usecase] create rejected patient_id=%s err=%v", cmd.PatientID, err)
		return entities.Budget{}, err
	}
	b.ID = uuid.NewString()
	b.Status = entities.BudgetStatusDraft
	b.CreatedAt = now
	b.UpdatedAt = now

	created, err := u.repo.Create(ctx, b)
	if err != nil {
		log.Printf("[budget][usecase] repository create failed budget_id=%s err=%v", b.ID, err)
		return entities.Budget{}, err
	}
	log.Printf("[budget][usecase] created budget_id=%s patient_id=%s items=%d splits=%d total_with_fee=%.2f",
		created.ID, created.PatientID, len(created.Items), len(created.PaymentMethods), created.TotalWithFee)
	return created, nil
}

func (u *BudgetUseCase) Update(ctx context.Context, id string, cmd BudgetCommand) (entities.Budget, error) {
	existing, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Budget{}, err
	}
	if !existing.Status.Editable() {
		return entities.Budget{}, ErrBudgetNotEditable
	}

	cmd.ClinicID = strings.TrimSpace(cmd.ClinicID)
	cmd.PatientID = strings.TrimSpace(cmd.PatientID)
	now := u.now().UTC()

	b, err := u.derive(cmd, now)
	if err != nil {
		log.Printf("[budget][usecase] update rejected budget_id=%s err=%v", existing.ID, err)
		return entities.Budget{}, err
	}
	b.ID = existing.ID
	b.Status = existing.Status
	b.CreatedAt = existing.CreatedAt
	b.UpdatedAt = now

	updated, err := u.repo.Update(ctx, b)
	if err != nil {
		return entities.Budget{}, err
	}
	if updated.ID == "" {
		// The conditional write failed: the budget vanished or left draft/sent
		// after it was loaded.
		current, err := u.GetByID(ctx, existing.ID)
		if err != nil {
			return entities.Budget{}, err
		}
		log.Printf("[budget][usecase] update lost race budget_id=%s status=%s", current.ID, current.Status)
		return entities.Budget{}, ErrBudgetNotEditable
	}
	log.Printf("[budget][usecase] updated budget_id=%s total_with_fee=%.2f", updated.ID, updated.TotalWithFee)
	return updated, nil
}

// derive validates a command and builds the budget payload exactly as it
// will be stored. Validation runs on unrounded values.
func (u *BudgetUseCase) derive(cmd BudgetCommand, now time.Time) (entities.Budget, error) {
	if err := validateCommand(cmd, now); err != nil {
		return entities.Budget{}, err
	}

	d := budget.NewDraft(cmd.Items, cmd.PaymentMethods)
	if err := budget.ValidateForSave(d.Items, d.PaymentMethods); err != nil {
		return entities.Budget{}, err
	}
	totals := d.Totals()

	b := entities.Budget{
		ClinicID:       cmd.ClinicID,
		PatientID:      cmd.PatientID,
		Items:          make([]entities.BudgetItem, 0, len(d.Items)),
		PaymentMethods: make([]entities.PaymentMethod, 0, len(d.PaymentMethods)),
		Subtotal:       budget.Round2(totals.Subtotal),
		TotalWithFee:   budget.Round2(totals.GrandTotal),
		ValidUntil:     cmd.ValidUntil,
		Notes:          strings.TrimSpace(cmd.Notes),
	}
	for _, it := range d.Items {
		it.UnitPrice = budget.Round2(it.UnitPrice)
		it.DiscountAmount = budget.Round2(it.DiscountAmount)
		it.TotalPrice = budget.Round2(it.TotalPrice)
		b.Items = append(b.Items, it)
	}
	for _, p := range d.PaymentMethods {
		p.Amount = budget.Round2(p.Amount)
		p.DiscountAmount = budget.Round2(p.DiscountAmount)
		b.PaymentMethods = append(b.PaymentMethods, p)
	}
	return b, nil
}

func validateCommand(cmd BudgetCommand, now time.Time) error {
	fields := map[string]string{}
	if cmd.ClinicID == "" {
		fields["clinic_id"] = "required"
	}
	if cmd.PatientID == "" {
		fields["patient_id"] = "required"
	}
	if cmd.ValidUntil != nil && cmd.ValidUntil.Before(now) {
		fields["valid_until"] = "must be in the future"
	}
	for i, p := range cmd.PaymentMethods {
		if !p.Method.Valid() {
			fields[fmt.Sprintf("payment_methods[%d].method", i)] = "unknown payment method"
		}
	}
	if len(fields) > 0 {
		return &budget.ValidationError{Fields: fields}
	}
	return nil
}

func (u *BudgetUseCase) GetByID(ctx context.Context, id string) (entities.Budget, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Budget{}, ErrInvalidBudgetID
	}

	b, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Budget{}, err
	}
	if b.ID == "" {
		return entities.Budget{}, ErrBudgetNotFound
	}
	return b, nil
}

func (u *BudgetUseCase) ListByPatient(ctx context.Context, patientID string) ([]entities.Budget, error) {
	patientID = strings.TrimSpace(patientID)
	if patientID == "" {
		return nil, ErrInvalidPatientID
	}
	return u.repo.ListByPatientID(ctx, patientID)
}

func (u *BudgetUseCase) Send(ctx context.Context, id string) (entities.Budget, error) {
	return u.transition(ctx, id, entities.BudgetStatusSent)
}

func (u *BudgetUseCase) Approve(ctx context.Context, id string) (entities.Budget, error) {
	return u.transition(ctx, id, entities.BudgetStatusApproved)
}

func (u *BudgetUseCase) Cancel(ctx context.Context, id string) (entities.Budget, error) {
	return u.transition(ctx, id, entities.BudgetStatusCancelled)
}

func (u *BudgetUseCase) transition(ctx context.Context, id string, next entities.BudgetStatus) (entities.Budget, error) {
	existing, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Budget{}, err
	}
	if !existing.Status.CanTransitionTo(next) {
		log.Printf("[budget][usecase] rejected transition budget_id=%s from=%s to=%s", existing.ID, existing.Status, next)
		return entities.Budget{}, ErrInvalidStatusTransition
	}
	if next == entities.BudgetStatusApproved && existing.ValidUntil != nil && existing.ValidUntil.Before(u.now()) {
		return entities.Budget{}, ErrBudgetExpired
	}

	updated, err := u.repo.UpdateStatus(ctx, existing.ID, next)
	if err != nil {
		return entities.Budget{}, err
	}
	if updated.ID == "" {
		return entities.Budget{}, ErrBudgetNotFound
	}
	log.Printf("[budget][usecase] status changed budget_id=%s from=%s to=%s", updated.ID, existing.Status, updated.Status)
	return updated, nil
}
