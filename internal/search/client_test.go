package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jayscottaf/pairscout/internal/model"
)

func TestClient_Search_Success(t *testing.T) {
	var captured model.SearchSpec

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("Expected path /search, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected JSON content type, got %s", r.Header.Get("Content-Type"))
		}
		if r.Header.Get("User-Agent") != "pairscout-test/1.0" {
			t.Errorf("Expected custom user agent, got %s", r.Header.Get("User-Agent"))
		}
		_ = json.NewDecoder(r.Body).Decode(&captured)

		_ = json.NewEncoder(w).Encode([]model.Pairing{
			{ID: 1, PairingNumber: "P4312", CreditHours: 18.5},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, "pairscout-test/1.0", nil)

	spec := model.SearchSpec{
		Filters: []model.FieldFilter{
			{Field: model.FieldPairingDays, Op: model.OpEq, Value: 4},
		},
		SortBy:    model.FieldCreditHours,
		SortOrder: "desc",
	}

	got, err := client.Search(context.Background(), spec)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(got) != 1 || got[0].PairingNumber != "P4312" {
		t.Errorf("Unexpected results: %+v", got)
	}
	if len(captured.Filters) != 1 || captured.Filters[0].Field != model.FieldPairingDays {
		t.Errorf("Spec should round-trip to the server, got %+v", captured)
	}
	if captured.SortBy != model.FieldCreditHours {
		t.Errorf("Sort hint should round-trip, got %q", captured.SortBy)
	}
}

func TestClient_Search_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, "", nil)

	_, err := client.Search(context.Background(), model.SearchSpec{})
	if err == nil {
		t.Fatal("Expected error for 502")
	}
	if _, ok := err.(*model.SearchError); !ok {
		t.Errorf("Expected *model.SearchError, got %T", err)
	}
}

func TestClient_Search_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, "", nil)

	_, err := client.Search(context.Background(), model.SearchSpec{})
	if err == nil {
		t.Fatal("Expected error for malformed body")
	}
	if _, ok := err.(*model.SearchError); !ok {
		t.Errorf("Expected *model.SearchError, got %T", err)
	}
}

func TestClient_Search_ConnectionRefused(t *testing.T) {
	// Port 0 is never listening.
	client := NewClient("http://127.0.0.1:0", 1*time.Second, "", nil)

	_, err := client.Search(context.Background(), model.SearchSpec{})
	if err == nil {
		t.Fatal("Expected transport error")
	}
	if _, ok := err.(*model.SearchError); !ok {
		t.Errorf("Expected *model.SearchError, got %T", err)
	}
}
