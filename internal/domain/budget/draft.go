package budget

import (
	"errors"
	"slices"

	"clinica_xpto/internal/domain/entities"
)

var (
	ErrConfirmationPending = errors.New("discount reset awaiting confirmation")
	ErrNoPendingReset      = errors.New("no discount reset awaiting confirmation")
	ErrIndexOutOfRange     = errors.New("line index out of range")
	ErrUnknownAction       = errors.New("unknown draft action")
)

// Phase is the editing state of a draft.
//
//	Editing -> ConfirmingDiscountReset -> Edited   (confirm: payments cleared)
//	Editing -> ConfirmingDiscountReset -> Editing  (cancel: nothing changes)
//	Editing -> Edited                              (any other applied edit)
type Phase string

const (
	PhaseEditing                 Phase = "editing"
	PhaseConfirmingDiscountReset Phase = "confirming_discount_reset"
	PhaseEdited                  Phase = "edited"
)

type ActionKind string

const (
	ActionAddItem              ActionKind = "add_item"
	ActionUpdateItem           ActionKind = "update_item"
	ActionRemoveItem           ActionKind = "remove_item"
	ActionSetItemDiscount      ActionKind = "set_item_discount"
	ActionAddPayment           ActionKind = "add_payment"
	ActionUpdatePayment        ActionKind = "update_payment"
	ActionRemovePayment        ActionKind = "remove_payment"
	ActionConfirmDiscountReset ActionKind = "confirm_discount_reset"
	ActionCancelDiscountReset  ActionKind = "cancel_discount_reset"
)

// Action is one user edit. Only the fields relevant to Kind are read.
type Action struct {
	Kind    ActionKind
	Index   int
	Field   ItemField
	Value   float64
	Item    entities.BudgetItem
	Payment entities.PaymentMethod
}

// Draft is an immutable snapshot of a budget being edited. ApplyEdit never
// mutates its input; callers re-derive totals from the returned draft.
type Draft struct {
	Items          []entities.BudgetItem
	PaymentMethods []entities.PaymentMethod
	Phase          Phase
	Pending        *Action
}

// NewDraft starts an edit session from raw lines.
func NewDraft(items []entities.BudgetItem, payments []entities.PaymentMethod) Draft {
	d := Draft{Phase: PhaseEditing}
	for _, it := range items {
		d.Items = append(d.Items, NormalizeItem(it))
	}
	for _, p := range payments {
		d.PaymentMethods = append(d.PaymentMethods, NormalizePaymentMethod(p))
	}
	return d
}

func (d Draft) Totals() Totals {
	return ComputeTotals(d.Items, d.PaymentMethods)
}

// ApplyEdit returns the draft that results from a. Changing an item
// discount while payment splits exist does not apply the change: it parks
// it in Pending until ActionConfirmDiscountReset clears the splits.
func ApplyEdit(d Draft, a Action) (Draft, error) {
	if d.Phase == PhaseConfirmingDiscountReset {
		switch a.Kind {
		case ActionConfirmDiscountReset:
			return confirmReset(d)
		case ActionCancelDiscountReset:
			next := d.clone()
			next.Pending = nil
			next.Phase = PhaseEditing
			return next, nil
		default:
			return d, ErrConfirmationPending
		}
	}

	next := d.clone()
	switch a.Kind {
	case ActionAddItem:
		next.Items = append(next.Items, NormalizeItem(a.Item))
	case ActionUpdateItem:
		if a.Field == FieldDiscountPercent {
			return setItemDiscount(d, a.Index, a.Value)
		}
		if !inRange(a.Index, len(next.Items)) {
			return d, ErrIndexOutOfRange
		}
		next.Items[a.Index] = RecomputeItem(next.Items[a.Index], a.Field, a.Value)
	case ActionSetItemDiscount:
		return setItemDiscount(d, a.Index, a.Value)
	case ActionRemoveItem:
		if !inRange(a.Index, len(next.Items)) {
			return d, ErrIndexOutOfRange
		}
		next.Items = slices.Delete(next.Items, a.Index, a.Index+1)
	case ActionAddPayment:
		next.PaymentMethods = append(next.PaymentMethods, NormalizePaymentMethod(a.Payment))
	case ActionUpdatePayment:
		if !inRange(a.Index, len(next.PaymentMethods)) {
			return d, ErrIndexOutOfRange
		}
		next.PaymentMethods[a.Index] = NormalizePaymentMethod(a.Payment)
	case ActionRemovePayment:
		if !inRange(a.Index, len(next.PaymentMethods)) {
			return d, ErrIndexOutOfRange
		}
		next.PaymentMethods = slices.Delete(next.PaymentMethods, a.Index, a.Index+1)
	case ActionConfirmDiscountReset, ActionCancelDiscountReset:
		return d, ErrNoPendingReset
	default:
		return d, ErrUnknownAction
	}
	next.Phase = PhaseEdited
	return next, nil
}

func setItemDiscount(d Draft, index int, percent float64) (Draft, error) {
	if !inRange(index, len(d.Items)) {
		return d, ErrIndexOutOfRange
	}
	next := d.clone()
	current := next.Items[index]
	if ApplyItemDiscount(current, percent).DiscountPercent == current.DiscountPercent {
		return next, nil
	}
	if len(next.PaymentMethods) > 0 {
		next.Phase = PhaseConfirmingDiscountReset
		next.Pending = &Action{Kind: ActionSetItemDiscount, Index: index, Value: percent}
		return next, nil
	}
	next.Items[index] = ApplyItemDiscount(current, percent)
	next.Phase = PhaseEdited
	return next, nil
}

func confirmReset(d Draft) (Draft, error) {
	if d.Pending == nil {
		return d, ErrNoPendingReset
	}
	next := d.clone()
	pending := *next.Pending
	next.Pending = nil
	next.PaymentMethods = nil
	next.Phase = PhaseEdited
	if !inRange(pending.Index, len(next.Items)) {
		return d, ErrIndexOutOfRange
	}
	next.Items[pending.Index] = ApplyItemDiscount(next.Items[pending.Index], pending.Value)
	return next, nil
}

func (d Draft) clone() Draft {
	out := Draft{
		Items:          slices.Clone(d.Items),
		PaymentMethods: slices.Clone(d.PaymentMethods),
		Phase:          d.Phase,
	}
	if d.Pending != nil {
		p := *d.Pending
		out.Pending = &p
	}
	return out
}

func inRange(i, n int) bool {
	return i >= 0 && i < n
}
