package events

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tokensave/buildtrust/internal/core/domain"
)

func createdEvent(t *testing.T) domain.DealWasCreated {
	t.Helper()
	price, err := domain.MoneyFromMajor(decimal.RequireFromString("1000.50"))
	if err != nil {
		t.Fatalf("money: %v", err)
	}
	return domain.DealWasCreated{
		DealID:   1,
		DealUUID: "uuid-1",
		AdID:     100,
		BuyerID:  10,
		SellerID: 20,
		Price:    price,
		At:       time.Now().UTC(),
	}
}

func TestNotifierSendsCreatedDeal(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	notifier := NewBlockchainNotifier(srv.URL, 0, nil)
	if err := notifier.Handle(context.Background(), createdEvent(t)); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if gotPath != "/save-deal" {
		t.Fatalf("expected /save-deal, got %s", gotPath)
	}
	if gotBody["deal_id"].(float64) != 1 {
		t.Fatalf("unexpected deal_id: %v", gotBody["deal_id"])
	}
	if gotBody["unique_id"] != "uuid-1" {
		t.Fatalf("unexpected unique_id: %v", gotBody["unique_id"])
	}
	if gotBody["status"] != "pending" {
		t.Fatalf("unexpected status: %v", gotBody["status"])
	}
	if gotBody["price"].(float64) != 1000.5 {
		t.Fatalf("unexpected price: %v", gotBody["price"])
	}
	if gotBody["notes"] != nil {
		t.Fatalf("expected null notes, got %v", gotBody["notes"])
	}
}

func TestNotifierReportsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	notifier := NewBlockchainNotifier(srv.URL, 0, nil)
	err := notifier.Handle(context.Background(), createdEvent(t))
	if err == nil {
		t.Fatal("expected error on 502")
	}
	if !strings.Contains(err.Error(), "deal 1") || !strings.Contains(err.Error(), "502") {
		t.Fatalf("error lacks context: %v", err)
	}
}

func TestNotifierIgnoresStatusChanges(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("unexpected request for status change")
	}))
	defer srv.Close()

	notifier := NewBlockchainNotifier(srv.URL, 0, nil)
	event := domain.DealStatusWasChanged{
		DealID:         1,
		PreviousStatus: domain.StatusPending,
		NewStatus:      domain.StatusAccepted,
		At:             time.Now().UTC(),
	}
	if err := notifier.Handle(context.Background(), event); err != nil {
		t.Fatalf("handle: %v", err)
	}
}

func TestNotifierUnreachableEndpoint(t *testing.T) {
	notifier := NewBlockchainNotifier("http://127.0.0.1:1", time.Second, nil)
	if err := notifier.Handle(context.Background(), createdEvent(t)); err == nil {
		t.Fatal("expected connection error")
	}
}
