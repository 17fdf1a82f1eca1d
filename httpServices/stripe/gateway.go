package stripegw

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Gateway talks to Stripe with the credential pair selected at startup.
type Gateway struct {
	api            *client.API
	publishableKey string
}

func NewGateway(secretKey, publishableKey string, timeout time.Duration) *Gateway {
	g := &Gateway{publishableKey: publishableKey}
	if secretKey == "" {
		return g
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := &http.Client{Timeout: timeout}
	backendCfg := &stripe.BackendConfig{HTTPClient: httpClient}

	g.api = &client.API{}
	g.api.Init(secretKey, &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendCfg),
	})
	return g
}

// Configured reports whether a secret key was supplied.
func (g *Gateway) Configured() bool {
	return g.api != nil
}

func (g *Gateway) PublishableKey() string {
	return g.publishableKey
}

func (g *Gateway) CreatePaymentIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	if !g.Configured() {
		return nil, NewError(KindNoProviderKey, "Stripe secret key is not configured")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(strings.ToLower(req.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	if req.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(req.ReceiptEmail)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	key := req.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}
	params.SetIdempotencyKey(key)
	params.Context = ctx

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, classify(err)
	}
	return toIntent(pi), nil
}

func (g *Gateway) GetPaymentIntent(ctx context.Context, id string) (*Intent, error) {
	if !g.Configured() {
		return nil, NewError(KindNoProviderKey, "Stripe secret key is not configured")
	}

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, classify(err)
	}
	return toIntent(pi), nil
}

func (g *Gateway) CreateRefund(ctx context.Context, req RefundRequest) (*Refund, error) {
	if !g.Configured() {
		return nil, NewError(KindNoProviderKey, "Stripe secret key is not configured")
	}

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(req.PaymentIntentID),
	}
	if req.Amount > 0 {
		params.Amount = stripe.Int64(req.Amount)
	}
	if req.Reason != "" {
		params.Reason = stripe.String(req.Reason)
	}
	params.Context = ctx

	r, err := g.api.Refunds.New(params)
	if err != nil {
		return nil, classify(err)
	}

	out := &Refund{
		ID:       r.ID,
		Amount:   r.Amount,
		Currency: string(r.Currency),
		Status:   string(r.Status),
	}
	if r.PaymentIntent != nil {
		out.PaymentIntentID = r.PaymentIntent.ID
	}
	return out, nil
}

func toIntent(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:           pi.ID,
		Amount:       pi.Amount,
		Currency:     strings.ToUpper(string(pi.Currency)),
		Status:       string(pi.Status),
		ClientSecret: pi.ClientSecret,
		Metadata:     pi.Metadata,
	}
}
