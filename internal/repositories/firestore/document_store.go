package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domain "github.com/launchpage/api/internal/domain"
	pfirestore "github.com/launchpage/api/internal/platform/firestore"
	"github.com/launchpage/api/internal/platform/requestctx"
	"github.com/launchpage/api/internal/repositories"
	"go.uber.org/zap"
)

const clientRootCollection = "clients"

// DocumentStore implements repositories.DocumentStore on Firestore with all
// collections namespaced under a single client scope.
type DocumentStore struct {
	provider *pfirestore.Provider
	clientID string
	clock    func() time.Time
}

var _ repositories.DocumentStore = (*DocumentStore)(nil)

// StoreOption customises the DocumentStore.
type StoreOption func(*DocumentStore)

// WithClock injects a custom clock used for id generation (tests).
func WithClock(clock func() time.Time) StoreOption {
	return func(s *DocumentStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewDocumentStore constructs a client-scoped Firestore document store.
func NewDocumentStore(provider *pfirestore.Provider, clientID string, opts ...StoreOption) (*DocumentStore, error) {
	if provider == nil {
		return nil, errors.New("document store: firestore provider is required")
	}
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, errors.New("document store: client id is required")
	}

	store := &DocumentStore{
		provider: provider,
		clientID: clientID,
		clock:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store, nil
}

// ClientID returns the scope every collection path is namespaced under.
func (s *DocumentStore) ClientID() string { return s.clientID }

// List returns every record in the collection in store order.
func (s *DocumentStore) List(ctx context.Context, collection string) ([]domain.Record, error) {
	coll, err := s.collectionRef(ctx, collection)
	if err != nil {
		return nil, err
	}

	iter := coll.Documents(ctx)
	defer iter.Stop()

	var records []domain.Record
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, pfirestore.WrapError(s.op(collection, "list"), err)
		}
		records = append(records, recordFromSnapshot(snap))
	}

	requestctx.Logger(ctx).Debug("store: listed collection",
		zap.String("client", s.clientID),
		zap.String("collection", collection),
		zap.Int("count", len(records)),
	)
	return records, nil
}

// Get fetches a single record; absence is reported through the boolean.
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (domain.Record, bool, error) {
	doc, err := s.documentRef(ctx, collection, id)
	if err != nil {
		return nil, false, err
	}

	snap, err := doc.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, pfirestore.WrapError(s.op(collection, "get"), err)
	}
	return recordFromSnapshot(snap), true, nil
}

// Create writes a new record, generating an id when none is supplied.
func (s *DocumentStore) Create(ctx context.Context, collection string, data domain.Record, customID string) (domain.Record, error) {
	id := strings.TrimSpace(customID)
	if id == "" {
		id = s.generateID(collection)
	}

	doc, err := s.documentRef(ctx, collection, id)
	if err != nil {
		return nil, err
	}

	stored := make(domain.Record, len(data)+1)
	for key, value := range data {
		stored[key] = value
	}
	stored["id"] = id

	if _, err := doc.Set(ctx, map[string]any(stored)); err != nil {
		return nil, pfirestore.WrapError(s.op(collection, "create"), err)
	}

	requestctx.Logger(ctx).Debug("store: created document",
		zap.String("client", s.clientID),
		zap.String("collection", collection),
		zap.String("id", id),
	)
	return stored, nil
}

// Update merges the given fields into an existing record.
func (s *DocumentStore) Update(ctx context.Context, collection, id string, partial domain.Record) error {
	doc, err := s.documentRef(ctx, collection, id)
	if err != nil {
		return err
	}
	if len(partial) == 0 {
		return &pfirestore.Error{Op: s.op(collection, "update"), Err: errors.New("no fields to update")}
	}

	updates := make([]firestore.Update, 0, len(partial))
	for key, value := range partial {
		updates = append(updates, firestore.Update{Path: key, Value: value})
	}

	if _, err := doc.Update(ctx, updates); err != nil {
		return pfirestore.WrapError(s.op(collection, "update"), err)
	}
	return nil
}

// Remove deletes the record. Deleting an absent document succeeds.
func (s *DocumentStore) Remove(ctx context.Context, collection, id string) error {
	doc, err := s.documentRef(ctx, collection, id)
	if err != nil {
		return err
	}
	if _, err := doc.Delete(ctx); err != nil {
		return pfirestore.WrapError(s.op(collection, "remove"), err)
	}
	return nil
}

// generateID derives a document id from the collection's initial character and
// the current millisecond timestamp. Two creates in the same collection within
// one millisecond collide; acceptable for single-admin editing sessions.
func (s *DocumentStore) generateID(collection string) string {
	initial := "x"
	if trimmed := strings.TrimSpace(collection); trimmed != "" {
		initial = strings.ToLower(trimmed[:1])
	}
	return fmt.Sprintf("%s%d", initial, s.clock().UnixMilli())
}

func (s *DocumentStore) collectionRef(ctx context.Context, collection string) (*firestore.CollectionRef, error) {
	collection = strings.TrimSpace(collection)
	if collection == "" {
		return nil, &pfirestore.Error{Op: s.op(collection, "collection"), Err: errors.New("collection name is required")}
	}
	client, err := s.provider.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.Collection(clientRootCollection).Doc(s.clientID).Collection(collection), nil
}

func (s *DocumentStore) documentRef(ctx context.Context, collection, id string) (*firestore.DocumentRef, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &pfirestore.Error{Op: s.op(collection, "document"), Err: errors.New("document id is required")}
	}
	coll, err := s.collectionRef(ctx, collection)
	if err != nil {
		return nil, err
	}
	return coll.Doc(id), nil
}

func (s *DocumentStore) op(collection, action string) string {
	name := strings.TrimSpace(collection)
	if name == "" {
		name = "store"
	}
	return fmt.Sprintf("%s.%s", name, action)
}

func recordFromSnapshot(snap *firestore.DocumentSnapshot) domain.Record {
	data := snap.Data()
	if data == nil {
		data = map[string]any{}
	}
	record := domain.Record(data)
	record["id"] = snap.Ref.ID
	return record
}
