package offers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalogd/internal/domain"
	"catalogd/internal/offers"
)

func TestClient_Authenticate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-123"})
	}))
	defer srv.Close()

	c := offers.NewClient(srv.URL)
	token, err := c.Authenticate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if token != "tok-123" {
		t.Fatalf("want tok-123, got %q", token)
	}
}

func TestClient_FetchOffersSendsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Bearer"); got != "tok-123" {
			t.Errorf("want Bearer header tok-123, got %q", got)
		}
		if r.URL.Path != "/products/42/offers" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"id": 1, "price": 11.5, "items_in_stock": 3}, {"id": 2, "price": null, "items_in_stock": 0}]`))
	}))
	defer srv.Close()

	c := offers.NewClient(srv.URL)
	c.UseToken("tok-123")

	fresh, err := c.FetchOffers(context.Background(), 42)
	if err != nil {
		t.Fatal(err)
	}
	if len(fresh) != 2 {
		t.Fatalf("want 2 offers, got %d", len(fresh))
	}
	if fresh[0].ForeignID != 1 || *fresh[0].Price != 11.5 || fresh[0].ItemsInStock != 3 {
		t.Fatalf("unexpected first offer %+v", fresh[0])
	}
	if fresh[1].Price != nil {
		t.Fatalf("want nil price for unpriced offer, got %v", *fresh[1].Price)
	}
}

func TestClient_RegisterProduct(t *testing.T) {
	var got domain.Product
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/register" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := offers.NewClient(srv.URL)
	p := domain.Product{ID: 7, Name: "pivo", Description: "kozel"}
	if err := c.RegisterProduct(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	if got != p {
		t.Fatalf("partner received %+v, want %+v", got, p)
	}
}

func TestClient_UpstreamErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := offers.NewClient(srv.URL)
	if _, err := c.FetchOffers(context.Background(), 1); !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("want ErrUpstream on 502, got %v", err)
	}

	srv.Close()
	if _, err := c.FetchOffers(context.Background(), 1); !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("want ErrUpstream on connection failure, got %v", err)
	}
}
