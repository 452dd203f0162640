package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/salonat-app/salon-api/internal/config"
	"github.com/salonat-app/salon-api/internal/httperr"
	"github.com/salonat-app/salon-api/internal/httpresp"
	"github.com/salonat-app/salon-api/internal/middleware"
	"github.com/salonat-app/salon-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type SubscriptionHandler struct {
	db     *gorm.DB
	config *config.Config
	log    *zap.Logger
}

func NewSubscriptionHandler(db *gorm.DB, cfg *config.Config, log *zap.Logger) *SubscriptionHandler {
	stripe.Key = cfg.StripeSecretKey
	return &SubscriptionHandler{db: db, config: cfg, log: log}
}

// ======================================================
// REQUESTS
// ======================================================

type CheckoutRequest struct {
	Plan       string `json:"plan" binding:"required"`
	SuccessURL string `json:"success_url" binding:"required"`
	CancelURL  string `json:"cancel_url" binding:"required"`
}

// ======================================================
// SUBSCRIPTION
// ======================================================

func (h *SubscriptionHandler) Get(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var sub models.Subscription
	if err := h.db.Where("salon_id = ?", salonID).First(&sub).Error; err != nil {
		httpresp.OK(c, gin.H{"plan": "none", "status": "inactive"})
		return
	}

	httpresp.OK(c, sub)
}

// Checkout creates a Stripe checkout session for the chosen plan. The
// salon id travels as the client reference so the webhook can attach
// the resulting subscription.
func (h *SubscriptionHandler) Checkout(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "بيانات غير صالحة.")
		return
	}

	var priceID string
	switch req.Plan {
	case "basic":
		priceID = h.config.StripePriceBasic
	case "pro":
		priceID = h.config.StripePricePro
	default:
		httperr.BadRequest(c, "invalid_plan", "الباقة غير معروفة.")
		return
	}
	if priceID == "" {
		httperr.Internal(c, "plan_not_configured", "الباقة غير مفعّلة حالياً.")
		return
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Price:    stripe.String(priceID),
			Quantity: stripe.Int64(1),
		}},
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(fmt.Sprint(salonID)),
		Metadata: map[string]string{
			"salon_id": fmt.Sprint(salonID),
			"plan":     req.Plan,
		},
	}

	s, err := session.New(params)
	if err != nil {
		h.log.Error("stripe checkout session failed", zap.Error(err), zap.Uint("salon_id", salonID))
		httperr.Internal(c, "checkout_failed", "تعذر بدء عملية الدفع.")
		return
	}

	httpresp.OK(c, gin.H{"checkout_url": s.URL})
}

// ======================================================
// WEBHOOK
// ======================================================

func (h *SubscriptionHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 65536))
	if err != nil {
		httperr.BadRequest(c, "invalid_payload", "payload read failed")
		return
	}

	event, err := webhook.ConstructEvent(
		payload,
		c.GetHeader("Stripe-Signature"),
		h.config.StripeWebhookSecret,
	)
	if err != nil {
		httperr.BadRequest(c, "invalid_signature", "signature verification failed")
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		h.handleCheckoutCompleted(c, event)
	case "customer.subscription.updated", "customer.subscription.deleted":
		h.handleSubscriptionUpdate(c, event)
	default:
		httpresp.OK(c, gin.H{"received": true})
	}
}

func (h *SubscriptionHandler) handleCheckoutCompleted(c *gin.Context, event stripe.Event) {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		httperr.BadRequest(c, "invalid_event", "bad checkout session payload")
		return
	}

	salonID, err := strconv.ParseUint(sess.ClientReferenceID, 10, 64)
	if err != nil {
		h.log.Warn("checkout completed without salon reference", zap.String("session", sess.ID))
		httpresp.OK(c, gin.H{"received": true})
		return
	}

	plan := sess.Metadata["plan"]
	if plan == "" {
		plan = "basic"
	}

	var sub models.Subscription
	if err := h.db.Where("salon_id = ?", salonID).First(&sub).Error; err != nil {
		sub = models.Subscription{SalonID: uint(salonID)}
	}

	sub.Plan = plan
	sub.Status = "active"
	if sess.Customer != nil {
		sub.StripeCustomerID = sess.Customer.ID
	}
	if sess.Subscription != nil {
		sub.StripeSubscriptionID = sess.Subscription.ID
	}

	if err := h.db.Save(&sub).Error; err != nil {
		h.log.Error("failed to persist subscription", zap.Error(err))
		httperr.Internal(c, "subscription_save_failed", "persist failed")
		return
	}

	httpresp.OK(c, gin.H{"received": true})
}

func (h *SubscriptionHandler) handleSubscriptionUpdate(c *gin.Context, event stripe.Event) {
	var stripeSub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &stripeSub); err != nil {
		httperr.BadRequest(c, "invalid_event", "bad subscription payload")
		return
	}

	var sub models.Subscription
	if err := h.db.Where("stripe_subscription_id = ?", stripeSub.ID).First(&sub).Error; err != nil {
		// A subscription we never saw; nothing to update.
		httpresp.OK(c, gin.H{"received": true})
		return
	}

	switch stripeSub.Status {
	case stripe.SubscriptionStatusActive, stripe.SubscriptionStatusTrialing:
		sub.Status = "active"
	case stripe.SubscriptionStatusPastDue:
		sub.Status = "past_due"
	default:
		sub.Status = "cancelled"
	}

	if stripeSub.CurrentPeriodEnd > 0 {
		end := time.Unix(stripeSub.CurrentPeriodEnd, 0)
		sub.CurrentPeriodEnd = &end
	}

	if err := h.db.Save(&sub).Error; err != nil {
		h.log.Error("failed to persist subscription update", zap.Error(err))
		httperr.Internal(c, "subscription_save_failed", "persist failed")
		return
	}

	httpresp.OK(c, gin.H{"received": true})
}
