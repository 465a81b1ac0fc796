package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sortelabs/bolao-backend/internal/services"
	"github.com/sortelabs/bolao-backend/pkg/paygate"
	"golang.org/x/exp/slog"
)

// PaymentHandler handles payment-gateway webhook requests
type PaymentHandler struct {
	betService services.BetService
	gateway    *paygate.Client
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(betService services.BetService, gateway *paygate.Client) *PaymentHandler {
	return &PaymentHandler{betService: betService, gateway: gateway}
}

// HandleWebhook handles POST /webhooks/pagamento. The signature is computed
// over the raw body, so the body is read before any JSON decoding.
func (h *PaymentHandler) HandleWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	signature := c.GetHeader("X-Signature")
	if !h.gateway.VerifySignature(body, signature) {
		slog.Warn("rejected webhook with invalid signature", "remoteAddr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
		return
	}

	var notification paygate.Notification
	if err := json.Unmarshal(body, &notification); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}
	if notification.TransactionRef == "" || notification.ExternalRef == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "transaction_ref and external_ref are required"})
		return
	}

	if err := h.betService.ConfirmPayment(c.Request.Context(), &notification); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
