package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"clinica_xpto/internal/domain/budget"
	"clinica_xpto/internal/domain/entities"
	"clinica_xpto/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrBudgetPaymentNotFound          = errors.New("budget payment not found")
	ErrInvalidPaymentID               = errors.New("invalid payment id")
	ErrInvalidSplitIndex              = errors.New("invalid payment split")
	ErrInvalidProviderPayload         = errors.New("invalid payment provider payload")
	ErrBudgetNotApproved              = errors.New("budget not approved")
	ErrSplitAlreadyPaid               = errors.New("payment split already paid")
	ErrSplitChargePending             = errors.New("payment split has a pending charge")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// Mercado Pago payment_method_id per split method. Credit card ids come from
// the card token flow on the client.
var providerMethodIDs = map[entities.PaymentMethodType]string{
	entities.PaymentMethodPix:    "pix",
	entities.PaymentMethodBoleto: "bolbradesco",
}

// IBudgetPaymentUseCase collects the payment splits of an approved budget.

type IBudgetPaymentUseCase interface {
	Charge(ctx context.Context, budgetID string, splitIndex int, providerPayload json.RawMessage) (entities.BudgetPayment, error)
	GetByID(ctx context.Context, id string) (entities.BudgetPayment, error)
	ListByBudgetID(ctx context.Context, budgetID string) ([]entities.BudgetPayment, error)
}

type BudgetPaymentUseCase struct {
	repo       interfaces.IBudgetPaymentRepository
	budgetRepo interfaces.IBudgetRepository
	gateway    interfaces.IPaymentGateway
}

var _ IBudgetPaymentUseCase = (*BudgetPaymentUseCase)(nil)

func NewBudgetPaymentUseCase(repo interfaces.IBudgetPaymentRepository, budgetRepo interfaces.IBudgetRepository, gateway interfaces.IPaymentGateway) *BudgetPaymentUseCase {
	return &BudgetPaymentUseCase{repo: repo, budgetRepo: budgetRepo, gateway: gateway}
}

// Charge collects split splitIndex of the budget. The amount always comes
// from the stored budget, never from the request payload.
func (u *BudgetPaymentUseCase) Charge(ctx context.Context, budgetID string, splitIndex int, providerPayload json.RawMessage) (entities.BudgetPayment, error) {
	log.Printf("[payment][usecase] charge start raw_budget_id=%q split=%d payload_len=%d", budgetID, splitIndex, len(providerPayload))
	budgetID = strings.TrimSpace(budgetID)
	if budgetID == "" {
		return entities.BudgetPayment{}, ErrInvalidBudgetID
	}
	if splitIndex < 0 {
		return entities.BudgetPayment{}, ErrInvalidSplitIndex
	}
	if len(strings.TrimSpace(string(providerPayload))) == 0 {
		providerPayload = json.RawMessage("{}")
	}
	if !json.Valid(providerPayload) {
		log.Printf("[payment][usecase] invalid payload (not-json) budget_id=%s", budgetID)
		return entities.BudgetPayment{}, ErrInvalidProviderPayload
	}
	if u.budgetRepo == nil || u.repo == nil {
		log.Printf("[payment][usecase] repositories not configured budget_id=%s", budgetID)
		return entities.BudgetPayment{}, errors.New("payment repositories not configured")
	}

	b, err := u.budgetRepo.GetByID(ctx, budgetID)
	if err != nil {
		log.Printf("[payment][usecase] failed loading budget budget_id=%s err=%v", budgetID, err)
		return entities.BudgetPayment{}, err
	}
	if b.ID == "" {
		return entities.BudgetPayment{}, ErrBudgetNotFound
	}
	if b.Status != entities.BudgetStatusApproved {
		log.Printf("[payment][usecase] budget not approved budget_id=%s status=%s", budgetID, b.Status)
		return entities.BudgetPayment{}, ErrBudgetNotApproved
	}
	if splitIndex >= len(b.PaymentMethods) {
		return entities.BudgetPayment{}, ErrInvalidSplitIndex
	}

	previous, err := u.repo.ListByBudgetID(ctx, budgetID)
	if err != nil {
		return entities.BudgetPayment{}, err
	}
	for _, p := range previous {
		if p.SplitIndex != splitIndex {
			continue
		}
		switch p.Status {
		case entities.PaymentStatusApproved:
			return entities.BudgetPayment{}, ErrSplitAlreadyPaid
		case entities.PaymentStatusPending:
			log.Printf("[payment][usecase] split has pending charge budget_id=%s split=%d payment_id=%s", budgetID, splitIndex, p.ID)
			return entities.BudgetPayment{}, ErrSplitChargePending
		}
	}

	split := budget.NormalizePaymentMethod(b.PaymentMethods[splitIndex])
	amount := budget.Round2(budget.NetContribution(split))
	payment := entities.BudgetPayment{
		BudgetID:     budgetID,
		SplitIndex:   splitIndex,
		Method:       split.Method,
		Amount:       amount,
		Installments: split.Installments,
		Date:         time.Now().UTC(),
	}

	if split.Method == entities.PaymentMethodCash {
		payment.ID = uuid.NewString()
		payment.Status = entities.PaymentStatusApproved
		log.Printf("[payment][usecase] cash split recorded budget_id=%s split=%d amount=%.2f", budgetID, splitIndex, amount)
		return u.persist(ctx, payment)
	}

	if u.gateway == nil {
		log.Printf("[payment][usecase] gateway not configured budget_id=%s", budgetID)
		return entities.BudgetPayment{}, ErrPaymentGatewayNotConfigured
	}

	request, err := buildProviderRequest(providerPayload, b, splitIndex, split, amount)
	if err != nil {
		log.Printf("[payment][usecase] provider request rejected budget_id=%s split=%d err=%v", budgetID, splitIndex, err)
		return entities.BudgetPayment{}, err
	}

	log.Printf("[payment][usecase] calling payment gateway budget_id=%s split=%d method=%s amount=%.2f", budgetID, splitIndex, split.Method, amount)
	providerPaymentID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, request)
	if err != nil {
		log.Printf("[payment][usecase] payment gateway failed budget_id=%s err=%v", budgetID, err)
		return entities.BudgetPayment{}, mapGatewayError(err)
	}
	log.Printf("[payment][usecase] payment gateway success budget_id=%s provider_payment_id=%s provider_status=%s", budgetID, providerPaymentID, providerStatus)

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Printf("[payment][usecase] provider response unmarshal failed budget_id=%s err=%v", budgetID, err)
	}
	payment.ID = providerPaymentID
	payment.Status = paymentStatusFromProvider(providerStatus)
	payment.ProviderPayloadRaw = providerResp
	payment.ProviderPayload = parsed
	return u.persist(ctx, payment)
}

func (u *BudgetPaymentUseCase) persist(ctx context.Context, p entities.BudgetPayment) (entities.BudgetPayment, error) {
	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[payment][usecase] payment repository create failed budget_id=%s payment_id=%s err=%v", p.BudgetID, p.ID, err)
		return entities.BudgetPayment{}, err
	}
	log.Printf("[payment][usecase] charge success budget_id=%s payment_id=%s status=%s", created.BudgetID, created.ID, created.Status)
	return created, nil
}

// buildProviderRequest enriches the client payload (card token, payer) with
// the values owned by the budget.
func buildProviderRequest(raw json.RawMessage, b entities.Budget, splitIndex int, split entities.PaymentMethod, amount float64) (json.RawMessage, error) {
	var reqMap map[string]any
	if err := json.Unmarshal(raw, &reqMap); err != nil || reqMap == nil {
		return nil, ErrInvalidProviderPayload
	}

	if split.Method == entities.PaymentMethodCreditCard {
		if !hasNonEmptyString(reqMap, "token") || !hasNonEmptyString(reqMap, "payment_method_id") {
			return nil, ErrInvalidProviderPayload
		}
		reqMap["installments"] = split.Installments
	} else {
		reqMap["payment_method_id"] = providerMethodIDs[split.Method]
	}

	ensurePayerDefaults(reqMap)
	if !hasPayer(reqMap) {
		return nil, ErrInvalidProviderPayload
	}

	reqMap["external_reference"] = fmt.Sprintf("%s:%d", b.ID, splitIndex)
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Budget %s split %d", b.ID, splitIndex)
	}
	reqMap["transaction_amount"] = amount

	out, err := json.Marshal(reqMap)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func paymentStatusFromProvider(status string) entities.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "approved", "authorized":
		return entities.PaymentStatusApproved
	case "rejected", "cancelled", "refunded", "charged_back":
		return entities.PaymentStatusDenied
	default:
		return entities.PaymentStatusPending
	}
}

func hasNonEmptyString(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	v, ok := m["payer"]
	if !ok {
		return false
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

func ensurePayerDefaults(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}

	// Sandbox accepts either payer.id or payer.email; fill email only when
	// both are missing.
	if !hasPayerID(payer) && !hasNonEmptyString(payer, "email") {
		if email := strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL")); email != "" {
			payer["email"] = email
		} else if strings.HasPrefix(strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")), "TEST-") {
			payer["email"] = "test_user_br@testuser.com"
		}
	}
}

func mapGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002"):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034"):
		return ErrPaymentGatewayInvalidUsers
	case strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401"):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400"):
		return ErrPaymentGatewayBadRequest
	}
	return err
}

func (u *BudgetPaymentUseCase) GetByID(ctx context.Context, id string) (entities.BudgetPayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.BudgetPayment{}, ErrInvalidPaymentID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.BudgetPayment{}, err
	}
	if p.ID == "" {
		return entities.BudgetPayment{}, ErrBudgetPaymentNotFound
	}
	return p, nil
}

func (u *BudgetPaymentUseCase) ListByBudgetID(ctx context.Context, budgetID string) ([]entities.BudgetPayment, error) {
	budgetID = strings.TrimSpace(budgetID)
	if budgetID == "" {
		return nil, ErrInvalidBudgetID
	}
	return u.repo.ListByBudgetID(ctx, budgetID)
}
