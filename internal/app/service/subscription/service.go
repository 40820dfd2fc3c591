package subscription

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/juegotea/backend/internal/models"
	"github.com/juegotea/backend/internal/platform/firebase"
	"github.com/juegotea/backend/internal/platform/mercadopago"
	"github.com/juegotea/backend/internal/repository"
	cfgpkg "github.com/juegotea/backend/pkg/config"
	"github.com/juegotea/backend/pkg/logctx"
	"github.com/juegotea/backend/pkg/types"
)

var ErrUnknownPlan = errors.New("unknown plan")

// fallbackDurationDays guards webhook activation when the plan table changed
// between checkout and payment confirmation.
const fallbackDurationDays = 30

type Service struct {
	cfg     *cfgpkg.Config
	users   firebase.UserStore
	ledger  repository.Ledger
	gateway mercadopago.Gateway
	log     *zap.SugaredLogger
}

func NewService(cfg *cfgpkg.Config, users firebase.UserStore, ledger repository.Ledger, gateway mercadopago.Gateway, log *zap.SugaredLogger) *Service {
	return &Service{cfg: cfg, users: users, ledger: ledger, gateway: gateway, log: log}
}

// Logger exposes the base logger for handlers that enrich it per request.
func (s *Service) Logger() *zap.SugaredLogger { return s.log }

// CreateCheckout opens a MercadoPago checkout for the plan and persists the
// pending-payment row. The user gains nothing until the webhook confirms.
func (s *Service) CreateCheckout(ctx context.Context, id *types.Identity, planID string) (*mercadopago.Checkout, error) {
	user, err := s.users.Get(ctx, id.UID)
	if err != nil {
		return nil, err
	}
	plan := s.cfg.GetPlanByID(planID)
	if plan == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlan, planID)
	}

	payerEmail := user.Email
	if payerEmail == "" {
		payerEmail = id.Email
	}

	checkout, err := s.gateway.CreatePreference(ctx, &mercadopago.CheckoutRequest{
		UserID:          id.UID,
		Plan:            plan,
		PayerName:       user.Name,
		PayerEmail:      payerEmail,
		SuccessURL:      s.cfg.FrontendBaseURL + "/payment/success",
		FailureURL:      s.cfg.FrontendBaseURL + "/payment/failure",
		PendingURL:      s.cfg.FrontendBaseURL + "/payment/pending",
		NotificationURL: s.cfg.BackendBaseURL + "/subscription/webhook",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout: %w", err)
	}

	pending := &models.PendingPayment{
		PreferenceID: checkout.PreferenceID,
		UserID:       id.UID,
		Plan:         plan.ID,
		Status:       types.PaymentStatusPending,
		Amount:       plan.Price,
		Currency:     plan.Currency,
	}
	if err := s.ledger.CreatePending(ctx, pending); err != nil {
		return nil, fmt.Errorf("checkout created but pending payment not recorded: %w", err)
	}

	logctx.FromCtx(ctx, s.log).Infow("checkout_created",
		"user_id", id.UID, "plan", plan.ID, "preference_id", checkout.PreferenceID)
	return checkout, nil
}

// Activate opens a fresh subscription window from now. Re-activation resets
// the expiry to now+duration; windows never stack.
func (s *Service) Activate(ctx context.Context, uid, planID string) error {
	durationDays := fallbackDurationDays
	if plan := s.cfg.GetPlanByID(planID); plan != nil && plan.DurationDays > 0 {
		durationDays = plan.DurationDays
	}

	now := time.Now()
	expiry := now.Add(time.Duration(durationDays) * 24 * time.Hour)
	err := s.users.SetFields(ctx, uid, map[string]any{
		"subscriptionStatus":      types.SubscriptionStatusActive,
		"subscriptionPlan":        planID,
		"subscriptionExpiry":      expiry,
		"subscriptionActivatedAt": now,
	})
	if err != nil {
		return fmt.Errorf("failed to activate subscription: %w", err)
	}

	subscriptionEvents.WithLabelValues("activated").Inc()
	logctx.FromCtx(ctx, s.log).Infow("subscription_activated",
		"user_id", uid, "plan", planID, "expiry", expiry)
	return nil
}

// Status reports the subscription summary, reconciling a stale active window
// to expired before answering.
func (s *Service) Status(ctx context.Context, uid string) (*types.SubscriptionInfo, error) {
	user, err := s.users.Get(ctx, uid)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if reconciled, err := s.ReconcileExpiry(ctx, user, now); err != nil {
		return nil, err
	} else if reconciled {
		logctx.FromCtx(ctx, s.log).Infow("subscription_expired", "user_id", uid)
	}

	info := &types.SubscriptionInfo{
		Status: user.SubscriptionStatus,
		Plan:   user.SubscriptionPlan,
		Expiry: user.SubscriptionExpiry,
	}
	if user.HasActiveSubscription(now) {
		info.IsActive = true
		info.DaysRemaining = int(math.Ceil(user.SubscriptionExpiry.Sub(now).Hours() / 24))
	}
	return info, nil
}

// ReconcileExpiry persists the active→expired transition when the window has
// closed. It mutates user in place and reports whether a write happened.
func (s *Service) ReconcileExpiry(ctx context.Context, user *models.User, now time.Time) (bool, error) {
	if user.SubscriptionStatus != types.SubscriptionStatusActive {
		return false, nil
	}
	if user.SubscriptionExpiry != nil && user.SubscriptionExpiry.After(now) {
		return false, nil
	}
	err := s.users.SetFields(ctx, user.UID, map[string]any{
		"subscriptionStatus": types.SubscriptionStatusExpired,
	})
	if err != nil {
		return false, fmt.Errorf("failed to expire subscription: %w", err)
	}
	user.SubscriptionStatus = types.SubscriptionStatusExpired
	subscriptionEvents.WithLabelValues("expired").Inc()
	return true, nil
}

// Cancel marks the subscription cancelled. The previous expiry is kept for
// record-keeping; access checks only honor status=active anyway.
func (s *Service) Cancel(ctx context.Context, uid string) error {
	if _, err := s.users.Get(ctx, uid); err != nil {
		return err
	}
	err := s.users.SetFields(ctx, uid, map[string]any{
		"subscriptionStatus":      types.SubscriptionStatusCancelled,
		"subscriptionCancelledAt": time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to cancel subscription: %w", err)
	}
	subscriptionEvents.WithLabelValues("cancelled").Inc()
	logctx.FromCtx(ctx, s.log).Infow("subscription_cancelled", "user_id", uid)
	return nil
}
