package firestore

import (
	"context"
	"strings"
	"testing"
	"time"

	pconfig "github.com/launchpage/api/internal/platform/config"
	pfirestore "github.com/launchpage/api/internal/platform/firestore"
)

func newTestStore(t *testing.T, opts ...StoreOption) *DocumentStore {
	t.Helper()
	provider := pfirestore.NewProvider(pconfig.FirestoreConfig{ProjectID: "test-project"})
	t.Cleanup(func() {
		_ = provider.Close(context.Background())
	})
	store, err := NewDocumentStore(provider, "acme-site", opts...)
	if err != nil {
		t.Fatalf("NewDocumentStore: %v", err)
	}
	return store
}

func TestNewDocumentStoreValidation(t *testing.T) {
	provider := pfirestore.NewProvider(pconfig.FirestoreConfig{ProjectID: "test-project"})
	if _, err := NewDocumentStore(nil, "acme"); err == nil {
		t.Fatal("expected error for nil provider")
	}
	if _, err := NewDocumentStore(provider, "   "); err == nil {
		t.Fatal("expected error for blank client id")
	}
}

func TestGenerateIDUsesCollectionInitial(t *testing.T) {
	at := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	store := newTestStore(t, WithClock(func() time.Time { return at }))

	cases := map[string]string{
		"products":     "p",
		"testimonials": "t",
		"siteData":     "s",
		"  products ":  "p",
	}
	for collection, prefix := range cases {
		id := store.generateID(collection)
		if !strings.HasPrefix(id, prefix) {
			t.Fatalf("id %q for %q: expected prefix %q", id, collection, prefix)
		}
		if want := prefix + "1740823200000"; id != want {
			t.Fatalf("id %q for %q: expected %q", id, collection, want)
		}
	}
}

func TestGenerateIDEmptyCollectionFallback(t *testing.T) {
	store := newTestStore(t)
	if id := store.generateID(""); !strings.HasPrefix(id, "x") {
		t.Fatalf("expected fallback prefix, got %q", id)
	}
}

func TestOpNaming(t *testing.T) {
	store := newTestStore(t)
	if got := store.op("products", "list"); got != "products.list" {
		t.Fatalf("unexpected op %q", got)
	}
	if got := store.op("", "collection"); got != "store.collection" {
		t.Fatalf("unexpected op %q", got)
	}
}
