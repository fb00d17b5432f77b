package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sterling-assoc/supportbot/internal/logger"
	"github.com/sterling-assoc/supportbot/internal/model/transaction"
)

func sampleRequest() transaction.ActionRequest {
	return transaction.ActionRequest{
		Kind:           "Refund Request",
		TransactionID:  "SA04149207",
		CustomerName:   "Juan Perez",
		CustomerEmail:  "juan.perez@example.com",
		RequesterEmail: "me@example.com",
		LastFourDigits: "1234",
		Amount:         "$49.99",
		Date:           "2025-06-15T14:30:00Z",
		Status:         "Completed",
		Merchant:       "TechFlow Solutions",
		RequestedAt:    time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestEmailJSSendsTemplateParams(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	d := NewEmailJS(Config{
		ServiceID:  "svc",
		TemplateID: "tpl",
		PublicKey:  "key",
		BaseURL:    server.URL,
		Recipient:  "support@example.com",
	}, logger.NewWithWriter(&bytes.Buffer{}))

	if err := d.SendRefundRequest(context.Background(), sampleRequest()); err != nil {
		t.Fatalf("send err: %v", err)
	}

	if captured["service_id"] != "svc" || captured["template_id"] != "tpl" || captured["user_id"] != "key" {
		t.Fatalf("credentials missing from payload: %v", captured)
	}
	params, ok := captured["template_params"].(map[string]any)
	if !ok {
		t.Fatalf("expected template_params object, got %T", captured["template_params"])
	}
	if params["to_email"] != "support@example.com" {
		t.Fatalf("unexpected recipient %v", params["to_email"])
	}
	if params["transaction_id"] != "SA04149207" {
		t.Fatalf("unexpected transaction id %v", params["transaction_id"])
	}
	if params["subject"] != "Refund Request - Transaction ID: SA04149207" {
		t.Fatalf("unexpected subject %v", params["subject"])
	}
	if params["invoice"] != "N/A" {
		t.Fatalf("blank optional fields should read N/A, got %v", params["invoice"])
	}
}

func TestEmailJSErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid public key", http.StatusForbidden)
	}))
	defer server.Close()

	d := NewEmailJS(Config{ServiceID: "svc", TemplateID: "tpl", PublicKey: "key", BaseURL: server.URL},
		logger.NewWithWriter(&bytes.Buffer{}))

	err := d.SendCancellationRequest(context.Background(), sampleRequest())
	if err == nil {
		t.Fatal("expected error on non-200 response")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Fatalf("error should carry the status, got %v", err)
	}
}

func TestLogDispatcherAlwaysSucceeds(t *testing.T) {
	var buf bytes.Buffer
	d := NewLogDispatcher(logger.NewWithWriter(&buf))

	if err := d.SendPaymentUpdateRequest(context.Background(), sampleRequest()); err != nil {
		t.Fatalf("simulation mode must not fail: %v", err)
	}
	if !strings.Contains(buf.String(), "email simulation") {
		t.Fatalf("expected simulation log, got %q", buf.String())
	}
}

func TestBodyLayout(t *testing.T) {
	body := Body(sampleRequest())

	for _, want := range []string{
		"REFUND REQUEST - STERLING & ASSOCIATES",
		"Transaction ID: SA04149207",
		"Card Ending in: ....1234",
		"Amount: $49.99",
		"Requester Email: me@example.com",
		"Action Required:",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}
