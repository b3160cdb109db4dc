package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/evcraddock/realty-site/internal/clientstate"
	"github.com/evcraddock/realty-site/internal/property"
)

// isolate points HOME and the API URL at throwaway locations so commands
// never touch the developer's real state.
func isolate(t *testing.T, apiURL string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("REALTY_API_URL", apiURL)
	t.Setenv("REALTY_CONTACT_PHONE", "")
	t.Setenv("IMGBB_API_KEY", "")
	flagDB = ""
	flagFormat = "text"
}

// captureStdout runs fn and returns what it printed to os.Stdout.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	done := make(chan string)
	go func() {
		b, _ := io.ReadAll(r)
		done <- string(b)
	}()

	fn()
	if err := w.Close(); err != nil {
		t.Fatalf("closing pipe: %v", err)
	}
	return <-done
}

// testState opens the client state the commands would use.
func testState(t *testing.T) *clientstate.Store {
	t.Helper()
	state, database, err := openState()
	if err != nil {
		t.Fatalf("open state: %v", err)
	}
	t.Cleanup(func() { closeDB(database) })
	return state
}

func listings() []property.Record {
	return []property.Record{
		{ID: 1, Title: "Garden Apartment", Location: "Copacabana", PriceValue: 850000, Price: "R$ 850.000", Bedrooms: 2, Bathrooms: 1, Type: property.TypeApartment, Operation: property.OperationBuy},
		{ID: 2, Title: "Beach House", Location: "Búzios", PriceValue: 4500, Price: "R$ 4.500/mês", Bedrooms: 4, Bathrooms: 3, Type: property.TypeHouse, Operation: property.OperationRent},
		{ID: 3, Title: "Corner Shop", Location: "Centro", PriceValue: 1200000, Price: "R$ 1.200.000", Type: property.TypeCommercial, Operation: property.OperationBuy},
	}
}

// listingsServer serves the given records from /property/all.
func listingsServer(t *testing.T, records []property.Record) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/property/all" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}
