// Package payment implements the payment provider gateway over its
// hosted-checkout HTTP API.
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	defaultTimeout            = 15 * time.Second
	defaultSignatureTolerance = 5 * time.Minute

	// SignatureHeader carries the webhook signature: "t=<unix>,v1=<hex hmac>".
	SignatureHeader = "X-Payment-Signature"
)

// client talks to the provider's REST API. All credentials come from the
// injected config; there is no package-level state.
type client struct {
	apiBase            string
	secretKey          string
	webhookSecret      string
	signatureTolerance time.Duration
	httpClient         *http.Client

	// now is overridable in tests for signature tolerance checks.
	now func() time.Time
}

// NewClient constructs the payment gateway from explicit configuration.
func NewClient(cfg *config.PaymentConfig) (service.PaymentGateway, error) {
	if cfg == nil {
		return nil, errors.New("payment config must be provided")
	}
	if cfg.SecretKey == "" || cfg.WebhookSecret == "" {
		return nil, errors.New("payment credentials must be provided")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	tolerance := cfg.SignatureTolerance
	if tolerance <= 0 {
		tolerance = defaultSignatureTolerance
	}

	return &client{
		apiBase:            strings.TrimRight(cfg.APIBase, "/"),
		secretKey:          cfg.SecretKey,
		webhookSecret:      cfg.WebhookSecret,
		signatureTolerance: tolerance,
		httpClient:         &http.Client{Timeout: timeout},
		now:                time.Now,
	}, nil
}

// sessionRequest is the wire format for creating a checkout session.
type sessionRequest struct {
	Mode       string            `json:"mode"`
	Currency   string            `json:"currency"`
	LineItems  []lineItem        `json:"line_items"`
	SuccessURL string            `json:"success_url"`
	CancelURL  string            `json:"cancel_url"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

type lineItem struct {
	Name       string `json:"name"`
	UnitAmount int64  `json:"unit_amount"`
	Quantity   int    `json:"quantity"`
}

// sessionResponse is the wire format of a created checkout session.
type sessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateSession creates a hosted checkout session and returns its redirect URL.
func (c *client) CreateSession(ctx context.Context, req *service.PaymentRequest) (*service.PaymentSession, error) {
	lines := make([]lineItem, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, lineItem{
			Name:       line.Name,
			UnitAmount: line.UnitAmount,
			Quantity:   line.Quantity,
		})
	}

	body, err := json.Marshal(sessionRequest{
		Mode:       "payment",
		Currency:   req.Currency,
		LineItems:  lines,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
		Metadata:   req.Metadata,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode session request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/v1/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build session request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, domainerrors.ErrPaymentSession.WrapMessage("payment provider request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read session response")
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, domainerrors.ErrPaymentSession.WithDetails(
			fmt.Sprintf("provider returned status %d", resp.StatusCode))
	}

	var session sessionResponse
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, errors.Wrap(err, "failed to decode session response")
	}
	if session.URL == "" {
		return nil, domainerrors.ErrPaymentSession.WithDetails("provider response missing redirect url")
	}

	return &service.PaymentSession{ID: session.ID, URL: session.URL}, nil
}

// webhookEvent is the wire format of a webhook notification.
type webhookEvent struct {
	ID       string            `json:"id"`
	Type     string            `json:"type"`
	Metadata map[string]string `json:"metadata"`
}

// VerifyWebhook authenticates the signature header against the raw payload.
// The header format is "t=<unix>,v1=<hex>", where v1 is HMAC-SHA256 of
// "<t>.<payload>" under the webhook secret. Stale timestamps are rejected
// to limit replay.
func (c *client) VerifyWebhook(payload []byte, sigHeader string) (*service.WebhookEvent, error) {
	timestamp, signature, err := parseSignatureHeader(sigHeader)
	if err != nil {
		return nil, domainerrors.ErrWebhookSignature.WrapMessage(err.Error())
	}

	age := c.now().Sub(time.Unix(timestamp, 0))
	if age > c.signatureTolerance || age < -c.signatureTolerance {
		return nil, domainerrors.ErrWebhookSignature.WithDetails("signature timestamp outside tolerance")
	}

	expected := computeSignature(c.webhookSecret, timestamp, payload)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, domainerrors.ErrWebhookSignature.WithDetails("signature mismatch")
	}

	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, errors.Wrap(err, "failed to decode webhook payload")
	}

	return &service.WebhookEvent{
		ID:       event.ID,
		Type:     event.Type,
		Metadata: event.Metadata,
	}, nil
}

// parseSignatureHeader splits "t=<unix>,v1=<hex>" into its parts.
func parseSignatureHeader(header string) (timestamp int64, signature string, err error) {
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			timestamp, err = strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, "", errors.New("invalid signature timestamp")
			}
		case "v1":
			signature = value
		}
	}

	if timestamp == 0 || signature == "" {
		return 0, "", errors.New("malformed signature header")
	}

	return timestamp, signature, nil
}

// computeSignature returns the hex HMAC-SHA256 of "<timestamp>.<payload>".
func computeSignature(secret string, timestamp int64, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)

	return hex.EncodeToString(mac.Sum(nil))
}
