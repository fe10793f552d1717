package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"

	"digitalstore_back_end/internal/cache"
	"digitalstore_back_end/internal/events"
	"digitalstore_back_end/internal/middleware"
	"digitalstore_back_end/internal/models"
	"digitalstore_back_end/internal/store"
	"digitalstore_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/checkout/session"
	"github.com/stripe/stripe-go/v83/webhook"
)

const guestEmail = "guest@digitalstore.com"

type CheckoutHandler struct {
	orders        store.OrderStore
	processed     cache.EventMarker
	mailer        utils.Mailer
	publisher     *events.Publisher
	clientURL     string
	webhookSecret string

	// createSession is swapped out in tests; production uses the Stripe API.
	createSession func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

func NewCheckoutHandler(
	orders store.OrderStore,
	processed cache.EventMarker,
	mailer utils.Mailer,
	publisher *events.Publisher,
	clientURL, webhookSecret string,
) *CheckoutHandler {
	return &CheckoutHandler{
		orders:        orders,
		processed:     processed,
		mailer:        mailer,
		publisher:     publisher,
		clientURL:     clientURL,
		webhookSecret: webhookSecret,
		createSession: session.New,
	}
}

type checkoutItem struct {
	Name        models.LocalizedString  `json:"name"`
	Description *models.LocalizedString `json:"description"`
	Price       float64                 `json:"price"`
	Quantity    int                     `json:"quantity"`
	Images      []string                `json:"images"`
}

type createSessionRequest struct {
	Items         []checkoutItem `json:"items"`
	CustomerEmail string         `json:"customerEmail"`
	// OrderID correlates the session with a Pending order so the webhook
	// can confirm it.
	OrderID string `json:"orderId"`
}

// minorUnits converts a decimal price to the provider's integer cents.
// Plain truncation of price*100 drops a cent for values like 19.99.
func minorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CreateSession turns the cart into a Stripe Checkout Session and hands
// the hosted payment URL back to the browser.
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cart is empty"})
		return
	}

	locale := middleware.Locale(c)

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Items))
	for i, item := range req.Items {
		if item.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("Item %d has a non-positive price", i)})
			return
		}
		if item.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("Item %d has a non-positive quantity", i)})
			return
		}

		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(item.Name.Pick(locale)),
		}
		if item.Description != nil {
			if desc := item.Description.Pick(locale); desc != "" {
				productData.Description = stripe.String(desc)
			}
		}
		if len(item.Images) > 0 {
			productData.Images = stripe.StringSlice(item.Images[:1])
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String("usd"),
				ProductData: productData,
				UnitAmount:  stripe.Int64(minorUnits(item.Price)),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(h.clientURL + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:          stripe.String(h.clientURL + "/cart"),
	}

	// The email goes in metadata too so it survives even if Stripe clears
	// the dedicated field.
	metaEmail := req.CustomerEmail
	if metaEmail == "" {
		metaEmail = guestEmail
	}
	params.AddMetadata("customerEmail", metaEmail)
	params.AddMetadata("locale", locale)
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	if req.OrderID != "" {
		params.AddMetadata("order_id", req.OrderID)
	}

	s, err := h.createSession(params)
	if err != nil {
		log.Println("❌ Stripe session creation failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create checkout session", "error": err.Error()})
		return
	}

	log.Printf("💳 Checkout session %s created for %s (%d items)", s.ID, metaEmail, len(req.Items))
	c.JSON(http.StatusOK, gin.H{"sessionId": s.ID, "url": s.URL})
}

// Webhook handles Stripe's asynchronous payment callback. The body must
// stay raw until the signature over its exact bytes is verified; nothing
// may happen on an unverified payload.
func (h *CheckoutHandler) Webhook(c *gin.Context) {
	const maxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	payload, err := c.GetRawData()
	if err != nil {
		log.Println("❌ Could not read webhook body:", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not read request body"})
		return
	}

	if h.webhookSecret == "" {
		log.Println("❌ STRIPE_WEBHOOK_SECRET not set — refusing to process unverified events")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Webhook is not configured"})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		log.Println("❌ Webhook signature verification failed:", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Webhook Error: " + err.Error()})
		return
	}

	log.Printf("📥 Stripe event received: %s (%s)", event.Type, event.ID)

	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	ctx := c.Request.Context()

	// Stripe may deliver the same event more than once; a replay is
	// acknowledged without repeating any side effect.
	if h.processed != nil {
		first, err := h.processed.MarkProcessed(ctx, event.ID)
		if err != nil {
			log.Println("⚠️  Event dedup check failed, processing anyway:", err)
		} else if !first {
			log.Printf("🔁 Event %s already processed, skipping", event.ID)
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		log.Println("❌ Could not decode checkout session:", err)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	h.confirmOrder(c, sess)
	h.sendConfirmation(sess)

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// confirmOrder moves the correlated order to Processing once payment is
// confirmed. Only Pending orders move, so a replayed event or a racing
// admin update cannot regress the status.
func (h *CheckoutHandler) confirmOrder(c *gin.Context, sess stripe.CheckoutSession) {
	orderID := sess.Metadata["order_id"]
	if orderID == "" {
		return
	}

	ctx := c.Request.Context()
	order, err := h.orders.FindByID(ctx, orderID)
	if err != nil {
		log.Printf("⚠️  Paid session %s references unknown order %s", sess.ID, orderID)
		return
	}
	if order.Status != models.StatusPending {
		log.Printf("ℹ️  Order %s already %s, leaving it alone", orderID, order.Status)
		return
	}

	updated, err := h.orders.UpdateStatus(ctx, orderID, models.StatusProcessing)
	if err != nil {
		log.Printf("❌ Could not confirm order %s: %v", orderID, err)
		return
	}

	h.publisher.Publish(events.OrderPaid, updated)
	log.Printf("✅ Order %s confirmed (session %s)", orderID, sess.ID)
}

// sendConfirmation emails the customer. Best-effort only: a failed send
// is logged and never bubbles into the webhook response, otherwise
// Stripe would retry an already successful payment event.
func (h *CheckoutHandler) sendConfirmation(sess stripe.CheckoutSession) {
	email := sess.CustomerEmail
	if email == "" {
		email = sess.Metadata["customerEmail"]
	}
	if email == "" || h.mailer == nil {
		log.Println("ℹ️  No customer email on session, skipping confirmation")
		return
	}

	locale := sess.Metadata["locale"]
	total := float64(sess.AmountTotal) / 100

	subject := utils.OrderConfirmationSubject(locale)
	body := utils.OrderConfirmationHTML(sess.ID, total, locale)

	if err := h.mailer.Send(email, subject, body); err != nil {
		log.Println("❌ Could not send confirmation email:", err)
		return
	}
	log.Println("📧 Confirmation email sent to", email)
}
