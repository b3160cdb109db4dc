package property

import (
	"path/filepath"
	"testing"

	"github.com/evcraddock/realty-site/internal/db"
)

func TestReplaceAllAndList(t *testing.T) {
	repo := testRepo(t)

	records := []Record{
		{ID: 30, Title: "Third by id, first by position", PriceValue: 300000, Location: "Leblon", Type: TypeApartment, Operation: OperationBuy, Badge: BadgeHighlight},
		{ID: 10, Title: "Studio", PriceValue: 2500, Location: "Copacabana", Bedrooms: 1, Bathrooms: 1, Type: TypeApartment, Operation: OperationRent, IsNew: true},
		{ID: 20, Title: "Shop", PriceValue: 9000, Location: "Centro", Type: TypeCommercial, Operation: OperationRent},
	}

	if err := repo.ReplaceAll(records); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := repo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("got %d listings, want %d", len(got), len(records))
	}
	for i := range records {
		if got[i] != records[i] {
			t.Errorf("listing %d = %+v, want %+v", i, got[i], records[i])
		}
	}
}

func TestReplaceAllOverwrites(t *testing.T) {
	repo := testRepo(t)

	first := []Record{
		{ID: 1, Title: "Old", Location: "Tijuca", Type: TypeHouse, Operation: OperationBuy},
		{ID: 2, Title: "Old too", Location: "Tijuca", Type: TypeHouse, Operation: OperationBuy},
	}
	if err := repo.ReplaceAll(first); err != nil {
		t.Fatalf("first replace: %v", err)
	}

	second := []Record{{ID: 3, Title: "New", Location: "Urca", Type: TypeLand, Operation: OperationBuy}}
	if err := repo.ReplaceAll(second); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	got, err := repo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != 3 {
		t.Errorf("got %+v, want only listing 3", got)
	}
}

func TestReplaceAllRollsBackOnInvalidListing(t *testing.T) {
	repo := testRepo(t)

	good := []Record{{ID: 1, Title: "Keep me", Location: "Gávea", Type: TypeHouse, Operation: OperationBuy}}
	if err := repo.ReplaceAll(good); err != nil {
		t.Fatalf("replace: %v", err)
	}

	bad := []Record{
		{ID: 2, Title: "Fine", Location: "Lapa", Type: TypeHouse, Operation: OperationBuy},
		{ID: 3, Title: "Broken", Location: "Lapa", Type: "castle", Operation: OperationBuy},
	}
	if err := repo.ReplaceAll(bad); err == nil {
		t.Fatal("expected error for invalid type")
	}

	got, err := repo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("snapshot changed after failed replace: %+v", got)
	}
}

func TestListEmpty(t *testing.T) {
	repo := testRepo(t)

	got, err := repo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d listings, want 0", len(got))
	}
}

func TestSavedAt(t *testing.T) {
	repo := testRepo(t)

	ts, err := repo.SavedAt()
	if err != nil {
		t.Fatalf("saved at (empty): %v", err)
	}
	if !ts.IsZero() {
		t.Errorf("saved at = %v, want zero for empty snapshot", ts)
	}

	if err := repo.ReplaceAll([]Record{{ID: 1, Title: "x", Location: "y", Type: TypeLand, Operation: OperationBuy}}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	ts, err = repo.SavedAt()
	if err != nil {
		t.Fatalf("saved at: %v", err)
	}
	if ts.IsZero() {
		t.Error("expected non-zero saved at after replace")
	}
}

func testRepo(t *testing.T) *Repository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})
	return NewRepository(d)
}
