package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

type memoryStore struct {
	values map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
}

func (m *memoryStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.values[key] = value.(string)
	return nil
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (m *memoryStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

type prefixKeyer struct{}

func (prefixKeyer) SessionKey(accessID string) string { return "test:session:" + accessID }

func newTestManager() (*Manager, *memoryStore) {
	store := newMemoryStore()
	return &Manager{store: store, keyer: prefixKeyer{}, ttl: time.Hour}, store
}

func TestRegisterAndCheckSession(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()
	accessID := NewAccessID()

	if err := m.Register(ctx, accessID, uuid.New()); err != nil {
		t.Fatalf("register: %v", err)
	}

	ok, err := m.HasSession(ctx, accessID)
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if !ok {
		t.Fatal("expected session to exist")
	}
}

func TestRevokeSession(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()
	accessID := NewAccessID()

	if err := m.Register(ctx, accessID, uuid.New()); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := m.Revoke(ctx, accessID); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	ok, err := m.HasSession(ctx, accessID)
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if ok {
		t.Fatal("expected session to be gone")
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	m, _ := newTestManager()
	if err := m.Register(context.Background(), "", uuid.New()); err == nil {
		t.Fatal("expected error for empty access id")
	}
	if err := m.Register(context.Background(), "id", uuid.Nil); err == nil {
		t.Fatal("expected error for nil user id")
	}
}
