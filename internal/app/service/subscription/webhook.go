package subscription

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/datatypes"

	"github.com/juegotea/backend/internal/models"
	"github.com/juegotea/backend/internal/platform/mercadopago"
	"github.com/juegotea/backend/internal/repository"
	"github.com/juegotea/backend/pkg/logctx"
	"github.com/juegotea/backend/pkg/tool"
	"github.com/juegotea/backend/pkg/types"
)

// WebhookEvent is the MercadoPago notification body. Only `type` and
// `data.id` matter; everything else is kept for the log row.
type WebhookEvent struct {
	Type   string `json:"type"`
	Action string `json:"action,omitempty"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

// HandleWebhook processes a payment notification: fetch the payment, activate
// the subscription on approval, resolve the pending-payment row, and record
// the whole attempt in the webhook log. The returned error is for logging
// only; the HTTP handler acknowledges receipt regardless.
func (s *Service) HandleWebhook(ctx context.Context, evt *WebhookEvent, rawPayload []byte) error {
	log := logctx.FromCtx(ctx, s.log)

	if evt.Type != "payment" {
		log.Infow("webhook_ignored", "type", evt.Type)
		webhooksReceived.WithLabelValues(evt.Type, "ignored").Inc()
		return nil
	}
	webhooksReceived.WithLabelValues(evt.Type, "received").Inc()

	entry := &models.WebhookLog{
		ID:      tool.GenerateUUIDV7(),
		Type:    evt.Type,
		TraceID: traceIDFrom(ctx),
		Payload: datatypes.JSON(rawPayload),
		Status:  models.WebhookLogStatusReceived,
	}

	paymentID, err := strconv.ParseInt(evt.Data.ID, 10, 64)
	if err != nil {
		entry.Status = models.WebhookLogStatusHandleFailed
		entry.Error = "unparseable payment id: " + evt.Data.ID
		_ = s.ledger.LogWebhook(ctx, entry)
		return fmt.Errorf("unparseable payment id %q: %w", evt.Data.ID, err)
	}
	entry.PaymentID = &paymentID
	_ = s.ledger.LogWebhook(ctx, entry)

	if err := s.processPayment(ctx, paymentID); err != nil {
		webhooksFailed.Inc()
		_ = s.ledger.UpdateWebhookLog(ctx, entry.ID, models.WebhookLogStatusHandleFailed, err.Error())
		return err
	}
	_ = s.ledger.UpdateWebhookLog(ctx, entry.ID, models.WebhookLogStatusHandled, "")
	return nil
}

func (s *Service) processPayment(ctx context.Context, paymentID int64) error {
	log := logctx.FromCtx(ctx, s.log)

	pay, err := s.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("failed to fetch payment detail: %w", err)
	}
	paymentsByStatus.WithLabelValues(string(pay.Status)).Inc()

	uid := pay.ExternalReference
	if uid == "" {
		log.Warnw("payment_without_external_reference", "payment_id", paymentID, "status", pay.Status)
		return nil
	}

	if pay.Status == types.PaymentStatusApproved {
		// Duplicate deliveries for the same payment must not re-open the
		// subscription window.
		processed, err := s.ledger.PaymentProcessed(ctx, paymentID)
		if err != nil {
			return err
		}
		if processed {
			log.Infow("payment_already_processed", "payment_id", paymentID, "user_id", uid)
		} else {
			if err := s.Activate(ctx, uid, s.planForPayment(ctx, pay, uid)); err != nil {
				return err
			}
		}
	}

	pending, err := s.ledger.FindOpenByUser(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warnw("no_open_pending_payment", "user_id", uid, "payment_id", paymentID)
			return nil
		}
		return err
	}
	status := pay.Status
	if !status.Terminal() {
		// in_process / pending updates keep the row open
		log.Infow("payment_not_terminal", "payment_id", paymentID, "status", status)
		return nil
	}
	if err := s.ledger.Resolve(ctx, pending.PreferenceID, status, paymentID); err != nil {
		return fmt.Errorf("failed to resolve pending payment: %w", err)
	}
	log.Infow("pending_payment_resolved",
		"preference_id", pending.PreferenceID, "payment_id", paymentID, "status", status)
	return nil
}

// planForPayment resolves the plan id carried through the payment flow:
// preference metadata first, then the open pending row, then the default.
func (s *Service) planForPayment(ctx context.Context, pay *mercadopago.Payment, uid string) string {
	if plan, ok := pay.Metadata["plan"].(string); ok && plan != "" {
		return plan
	}
	if pending, err := s.ledger.FindOpenByUser(ctx, uid); err == nil && pending.Plan != "" {
		return pending.Plan
	}
	return "premium"
}

func traceIDFrom(ctx context.Context) string {
	if tid, ok := ctx.Value("traceID").(string); ok {
		return tid
	}
	return ""
}
