package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/sterling-assoc/supportbot/internal/model/transaction"
)

const defaultBaseURL = "https://api.emailjs.com/api/v1.0/email/send"

// Config holds EmailJS credentials and the support inbox address.
type Config struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	BaseURL    string
	Recipient  string
}

// Enabled reports whether the required EmailJS credentials are present.
func (c Config) Enabled() bool {
	return c.ServiceID != "" && c.TemplateID != "" && c.PublicKey != ""
}

// EmailJSDispatcher sends action requests through the EmailJS REST API.
type EmailJSDispatcher struct {
	cfg    Config
	client *http.Client
	log    zerolog.Logger
}

// NewEmailJS creates a dispatcher for the configured EmailJS template.
func NewEmailJS(cfg Config, log zerolog.Logger) *EmailJSDispatcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &EmailJSDispatcher{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
		log:    log,
	}
}

// SendRefundRequest relays a refund request to the support inbox.
func (d *EmailJSDispatcher) SendRefundRequest(ctx context.Context, req transaction.ActionRequest) error {
	return d.send(ctx, req)
}

// SendCancellationRequest relays a subscription cancellation request.
func (d *EmailJSDispatcher) SendCancellationRequest(ctx context.Context, req transaction.ActionRequest) error {
	return d.send(ctx, req)
}

// SendPaymentUpdateRequest relays a payment-method update request.
func (d *EmailJSDispatcher) SendPaymentUpdateRequest(ctx context.Context, req transaction.ActionRequest) error {
	return d.send(ctx, req)
}

func (d *EmailJSDispatcher) send(ctx context.Context, req transaction.ActionRequest) error {
	payload := map[string]any{
		"service_id":      d.cfg.ServiceID,
		"template_id":     d.cfg.TemplateID,
		"user_id":         d.cfg.PublicKey,
		"template_params": templateParams(req, d.cfg.Recipient),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode emailjs payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build emailjs request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("send emailjs request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("emailjs responded %d: %s", resp.StatusCode, string(detail))
	}

	d.log.Info().
		Str("kind", req.Kind).
		Str("transactionId", req.TransactionID).
		Msg("support request dispatched")
	return nil
}

func templateParams(req transaction.ActionRequest, recipient string) map[string]any {
	params := map[string]any{
		"to_email":          recipient,
		"subject":           Subject(req),
		"message":           Body(req),
		"request_type":      req.Kind,
		"transaction_id":    req.TransactionID,
		"customer_name":     orNA(req.CustomerName),
		"customer_email":    orNA(req.CustomerEmail),
		"user_email":        orNA(req.RequesterEmail),
		"card_last_four":    req.LastFourDigits,
		"amount":            req.Amount,
		"transaction_date":  req.Date,
		"status":            req.Status,
		"merchant":          orNA(req.Merchant),
		"invoice":           orNA(req.Invoice),
		"card_type":         orNA(req.CardType),
		"response":          orNA(req.Response),
		"source":            orNA(req.Source),
		"request_timestamp": req.RequestedAt.Format(time.RFC3339),
	}
	return params
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
