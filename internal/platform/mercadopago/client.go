package mercadopago

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"go.uber.org/fx"
	"go.uber.org/zap"

	cfgpkg "github.com/juegotea/backend/pkg/config"
	"github.com/juegotea/backend/pkg/types"
)

// CheckoutRequest carries everything needed to open a checkout for a plan.
type CheckoutRequest struct {
	UserID          string
	Plan            *types.Plan
	PayerName       string
	PayerEmail      string
	SuccessURL      string
	FailureURL      string
	PendingURL      string
	NotificationURL string
}

// Checkout is the created preference; InitPoint is the production checkout
// URL, SandboxInitPoint the test one.
type Checkout struct {
	PreferenceID     string
	InitPoint        string
	SandboxInitPoint string
}

// Payment is the provider's view of a payment fetched by id.
type Payment struct {
	ID                int64
	Status            types.PaymentStatus
	ExternalReference string
	Metadata          map[string]any
	Amount            float64
}

// Gateway abstracts the payment provider so services and tests never touch
// the SDK directly.
type Gateway interface {
	CreatePreference(ctx context.Context, req *CheckoutRequest) (*Checkout, error)
	GetPayment(ctx context.Context, id int64) (*Payment, error)
}

type client struct {
	preferences preference.Client
	payments    payment.Client
	log         *zap.SugaredLogger
}

func New(cfg *cfgpkg.Config, log *zap.SugaredLogger) (Gateway, error) {
	if cfg.MercadoPago.AccessToken == "" {
		return nil, fmt.Errorf("mercadopago access token is empty")
	}
	mc, err := mpconfig.New(cfg.MercadoPago.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init mercadopago sdk: %w", err)
	}
	return &client{
		preferences: preference.NewClient(mc),
		payments:    payment.NewClient(mc),
		log:         log,
	}, nil
}

func (c *client) CreatePreference(ctx context.Context, req *CheckoutRequest) (*Checkout, error) {
	request := preference.Request{
		Items: []preference.ItemRequest{
			{
				ID:          req.Plan.ID,
				Title:       req.Plan.Title,
				Description: req.Plan.Description,
				Quantity:    1,
				UnitPrice:   req.Plan.Price,
				CurrencyID:  req.Plan.Currency,
			},
		},
		Payer: &preference.PayerRequest{
			Name:  req.PayerName,
			Email: req.PayerEmail,
		},
		BackURLs: &preference.BackURLsRequest{
			Success: req.SuccessURL,
			Failure: req.FailureURL,
			Pending: req.PendingURL,
		},
		AutoReturn:        "approved",
		NotificationURL:   req.NotificationURL,
		ExternalReference: req.UserID,
		Metadata: map[string]any{
			"user_id": req.UserID,
			"plan":    req.Plan.ID,
		},
		StatementDescriptor: "JUEGOTEA",
	}

	resp, err := c.preferences.Create(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to create preference: %w", err)
	}
	c.log.Infow("preference_created", "preference_id", resp.ID, "user_id", req.UserID, "plan", req.Plan.ID)
	return &Checkout{
		PreferenceID:     resp.ID,
		InitPoint:        resp.InitPoint,
		SandboxInitPoint: resp.SandboxInitPoint,
	}, nil
}

func (c *client) GetPayment(ctx context.Context, id int64) (*Payment, error) {
	resp, err := c.payments.Get(ctx, int(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get payment %d: %w", id, err)
	}
	return &Payment{
		ID:                int64(resp.ID),
		Status:            types.PaymentStatus(resp.Status),
		ExternalReference: resp.ExternalReference,
		Metadata:          resp.Metadata,
		Amount:            resp.TransactionAmount,
	}, nil
}

var Module = fx.Options(
	fx.Provide(New),
)
