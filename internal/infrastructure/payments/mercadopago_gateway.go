package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"clinica_xpto/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// MercadoPagoGateway charges budget splits through the Mercado Pago payments
// API. In mock mode it answers locally the way the sandbox would: cards are
// approved at once, pix and boleto stay pending until the patient pays.
type MercadoPagoGateway struct {
	client   payment.Client
	mockMode bool
	now      func() time.Time
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	if IsMockEnabled() {
		log.Printf("[payment][gateway] mock mode enabled")
		return NewMockGateway(), nil
	}

	if strings.TrimSpace(accessToken) == "" {
		log.Printf("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[payment][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{client: payment.NewClient(cfg), now: time.Now}, nil
}

// NewMockGateway returns a gateway that never leaves the process.
func NewMockGateway() *MercadoPagoGateway {
	return &MercadoPagoGateway{mockMode: true, now: time.Now}
}

func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, requestPayload json.RawMessage) (string, string, json.RawMessage, error) {
	if g != nil && g.mockMode {
		return g.mockCreate(requestPayload)
	}

	if g == nil || g.client == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return "", "", nil, ErrMercadoPagoGatewayNotConfigured
	}

	var req payment.Request
	if err := json.Unmarshal(requestPayload, &req); err != nil {
		log.Printf("[payment][gateway] payload unmarshal failed err=%v", err)
		return "", "", nil, err
	}
	log.Printf("[payment][gateway] create start method=%s amount=%.2f reference=%s", req.PaymentMethodID, req.TransactionAmount, req.ExternalReference)

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		log.Printf("[payment][gateway] sdk create failed reference=%s err=%v", req.ExternalReference, err)
		return "", "", nil, err
	}

	b, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[payment][gateway] response marshal failed err=%v", err)
		return "", "", nil, err
	}
	log.Printf("[payment][gateway] create success provider_payment_id=%d provider_status=%s", resp.ID, resp.Status)

	return fmt.Sprintf("%d", resp.ID), resp.Status, b, nil
}

func (g *MercadoPagoGateway) mockCreate(requestPayload json.RawMessage) (string, string, json.RawMessage, error) {
	resp := map[string]any{}
	if len(requestPayload) > 0 && json.Valid(requestPayload) {
		if err := json.Unmarshal(requestPayload, &resp); err != nil {
			resp = map[string]any{"request_payload_raw": string(requestPayload)}
		}
	}

	now := g.now().UTC()
	id := strconv.FormatInt(now.UnixNano(), 10)
	methodID, _ := resp["payment_method_id"].(string)

	status, detail := "approved", "accredited"
	switch methodID {
	case "pix":
		status, detail = "pending", "pending_waiting_transfer"
		resp["point_of_interaction"] = map[string]any{
			"transaction_data": map[string]any{
				"qr_code":    "00020126mock" + id,
				"ticket_url": "https://www.mercadopago.com.br/payments/" + id + "/ticket",
			},
		}
	case "bolbradesco":
		status, detail = "pending", "pending_waiting_payment"
		resp["transaction_details"] = map[string]any{
			"external_resource_url": "https://www.mercadopago.com.br/payments/" + id + "/ticket",
		}
	}

	resp["id"] = id
	resp["status"] = status
	resp["status_detail"] = detail
	resp["date_created"] = now.Format(time.RFC3339Nano)
	if status == "approved" {
		resp["date_approved"] = now.Format(time.RFC3339Nano)
	}

	b, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[payment][gateway] mock response marshal failed err=%v", err)
		return "", "", nil, err
	}

	log.Printf("[payment][gateway] mock create success provider_payment_id=%s method=%s provider_status=%s", id, methodID, status)
	return id, status, b, nil
}

// IsMockEnabled reports whether PAYMENT_GATEWAY_MOCK (or the older
// MERCADOPAGO_MOCK) asks for the local gateway.
func IsMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
