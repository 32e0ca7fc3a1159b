package state

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	contractx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/contract"
	upstashx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/pkg/upstash"
)

// fakeRedis emulates the Upstash REST endpoint over a plain key-value map.
type fakeRedis struct {
	mu       sync.Mutex
	values   map[string]string
	commands [][]any
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: make(map[string]string)}
}

func (f *fakeRedis) handler(w http.ResponseWriter, r *http.Request) {
	var cmd []any
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil || len(cmd) == 0 {
		http.Error(w, `{"error":"bad command"}`, http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.commands = append(f.commands, cmd)
	var result any
	switch cmd[0] {
	case "GET":
		if v, ok := f.values[cmd[1].(string)]; ok {
			result = v
		}
	case "SET":
		f.values[cmd[1].(string)] = cmd[2].(string)
		result = "OK"
	case "DEL":
		delete(f.values, cmd[1].(string))
		result = float64(1)
	}
	f.mu.Unlock()

	_ = json.NewEncoder(w).Encode(map[string]any{"result": result})
}

func (f *fakeRedis) lastCommand() []any {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.commands) == 0 {
		return nil
	}
	return f.commands[len(f.commands)-1]
}

func newTestStore(t *testing.T, redis *fakeRedis, opts ...StoreOption) *RedisStore {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(redis.handler))
	t.Cleanup(server.Close)

	client := upstashx.MustNew(upstashx.Config{URL: server.URL, Token: "test-token"})
	store, err := NewRedisStore(client, opts...)
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	return store
}

func TestRedisStoreKeyFormat(t *testing.T) {
	t.Parallel()

	redis := newFakeRedis()
	store := newTestStore(t, redis)
	ctx := context.Background()

	st := NewSessionState("thread-1", time.Now())
	if err := st.AppendMessage(contractx.UserMessage("hello")); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, st); err != nil {
		t.Fatalf("Save: %v", err)
	}

	cmd := redis.lastCommand()
	if len(cmd) < 3 || cmd[0] != "SET" {
		t.Fatalf("last command = %v, want SET", cmd)
	}
	if cmd[1] != "cadenza:session:thread-1" {
		t.Fatalf("redis key = %v, want cadenza:session:thread-1", cmd[1])
	}
	// Sessions expire; the SET must carry a TTL.
	if len(cmd) != 5 || cmd[3] != "EX" {
		t.Fatalf("SET without EX ttl: %v", cmd)
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	t.Parallel()

	redis := newFakeRedis()
	store := newTestStore(t, redis)
	ctx := context.Background()

	st := NewSessionState("thread-1", time.Now())
	if err := st.SetAccountID(123); err != nil {
		t.Fatal(err)
	}
	if err := st.AppendMessage(contractx.UserMessage("hello")); err != nil {
		t.Fatal(err)
	}
	st.AwaitingInput = true
	st.LoadedMemory = "Music Preferences: Rock"

	if err := store.Save(ctx, st); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load(ctx, "thread-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.ThreadID != "thread-1" {
		t.Fatalf("thread id = %q", loaded.ThreadID)
	}
	if loaded.AccountID == nil || *loaded.AccountID != 123 {
		t.Fatalf("account id = %v, want 123", loaded.AccountID)
	}
	if !loaded.AwaitingInput {
		t.Fatal("AwaitingInput must survive the round trip")
	}
	if len(loaded.Messages) != 1 || loaded.Messages[0].Content != "hello" {
		t.Fatalf("messages = %+v", loaded.Messages)
	}
	// Derived memory context is never persisted.
	if loaded.LoadedMemory != "" {
		t.Fatalf("LoadedMemory persisted as %q", loaded.LoadedMemory)
	}
}

func TestRedisStoreLoadMissing(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, newFakeRedis())

	_, err := store.Load(context.Background(), "unknown-thread")
	if !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("Load missing: err = %v, want ErrStateNotFound", err)
	}
}

func TestRedisStoreDelete(t *testing.T) {
	t.Parallel()

	redis := newFakeRedis()
	store := newTestStore(t, redis)
	ctx := context.Background()

	st := NewSessionState("thread-1", time.Now())
	if err := store.Save(ctx, st); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, "thread-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Load(ctx, "thread-1"); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("Load after delete: err = %v, want ErrStateNotFound", err)
	}
}

func TestRedisStoreOptions(t *testing.T) {
	t.Parallel()

	redis := newFakeRedis()
	store := newTestStore(t, redis, WithKeyPrefix("custom:"), WithTTL(time.Minute))

	st := NewSessionState("thread-1", time.Now())
	if err := store.Save(context.Background(), st); err != nil {
		t.Fatal(err)
	}

	cmd := redis.lastCommand()
	if cmd[1] != "custom:thread-1" {
		t.Fatalf("redis key = %v, want custom:thread-1", cmd[1])
	}
	if cmd[4] != float64(60) {
		t.Fatalf("ttl seconds = %v, want 60", cmd[4])
	}
}

func TestRedisStoreRejectsBlankThread(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, newFakeRedis())

	if _, err := store.Load(context.Background(), "  "); !errors.Is(err, ErrInvalidThread) {
		t.Fatalf("Load blank thread: err = %v, want ErrInvalidThread", err)
	}
	if err := store.Save(context.Background(), nil); !errors.Is(err, ErrNilSessionState) {
		t.Fatalf("Save nil: err = %v, want ErrNilSessionState", err)
	}
}
