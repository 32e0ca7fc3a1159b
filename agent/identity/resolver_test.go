package identity

import (
	"context"
	"errors"
	"testing"
)

type fakeDirectory struct {
	phones map[string]int64
	emails map[string]int64
	err    error

	lookups int
}

func (d *fakeDirectory) ByPhone(_ context.Context, phone string) (int64, bool, error) {
	d.lookups++
	if d.err != nil {
		return 0, false, d.err
	}
	id, ok := d.phones[phone]
	return id, ok, nil
}

func (d *fakeDirectory) ByEmail(_ context.Context, email string) (int64, bool, error) {
	d.lookups++
	if d.err != nil {
		return 0, false, d.err
	}
	id, ok := d.emails[email]
	return id, ok, nil
}

func TestResolverDigitsFastPath(t *testing.T) {
	t.Parallel()

	dir := &fakeDirectory{}
	resolver := NewResolver(dir)

	id, ok := resolver.Resolve(context.Background(), "123")
	if !ok || id != 123 {
		t.Fatalf("Resolve(123) = %d, %v; want 123, true", id, ok)
	}
	// Numeric ids never touch the directory.
	if dir.lookups != 0 {
		t.Fatalf("lookups = %d, want 0", dir.lookups)
	}
}

func TestResolverPhoneLookup(t *testing.T) {
	t.Parallel()

	dir := &fakeDirectory{phones: map[string]int64{"+15551234567": 456}}
	resolver := NewResolver(dir)

	id, ok := resolver.Resolve(context.Background(), "+15551234567")
	if !ok || id != 456 {
		t.Fatalf("Resolve(phone) = %d, %v; want 456, true", id, ok)
	}
	if dir.lookups != 1 {
		t.Fatalf("lookups = %d, want 1", dir.lookups)
	}
}

func TestResolverEmailLookup(t *testing.T) {
	t.Parallel()

	dir := &fakeDirectory{emails: map[string]int64{"luis@example.com": 3}}
	resolver := NewResolver(dir)

	if id, ok := resolver.Resolve(context.Background(), "luis@example.com"); !ok || id != 3 {
		t.Fatalf("Resolve(email) = %d, %v; want 3, true", id, ok)
	}

	// Unknown address is a miss, not an error.
	if _, ok := resolver.Resolve(context.Background(), "nobody@example.com"); ok {
		t.Fatal("unknown email must not resolve")
	}
}

func TestResolverUnrecognizedShapes(t *testing.T) {
	t.Parallel()

	dir := &fakeDirectory{}
	resolver := NewResolver(dir)
	ctx := context.Background()

	for _, identifier := range []string{"", "   ", "hello there", "12a4", "555-1234"} {
		if _, ok := resolver.Resolve(ctx, identifier); ok {
			t.Fatalf("Resolve(%q) resolved; want miss", identifier)
		}
	}
	if dir.lookups != 0 {
		t.Fatalf("lookups = %d, want 0 for unrecognized shapes", dir.lookups)
	}
}

func TestResolverLookupFailureDegradesToMiss(t *testing.T) {
	t.Parallel()

	dir := &fakeDirectory{err: errors.New("connection refused")}
	resolver := NewResolver(dir)

	if _, ok := resolver.Resolve(context.Background(), "+15551234567"); ok {
		t.Fatal("directory failure must degrade to a miss")
	}
	if _, ok := resolver.Resolve(context.Background(), "luis@example.com"); ok {
		t.Fatal("directory failure must degrade to a miss")
	}
}

func TestResolverNilDirectory(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(nil)

	// Digit fast path still works without a directory.
	if id, ok := resolver.Resolve(context.Background(), "9"); !ok || id != 9 {
		t.Fatalf("Resolve(9) = %d, %v; want 9, true", id, ok)
	}
	if _, ok := resolver.Resolve(context.Background(), "+15551234567"); ok {
		t.Fatal("phone lookup without a directory must miss")
	}
}
