package tool

import (
	"context"
	"encoding/json"
	"testing"

	contractx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/contract"
)

func TestBuildForRouteToolNames(t *testing.T) {
	t.Parallel()

	infos, exec := BuildForRoute(contractx.RouteInvoice, nil)
	if exec == nil {
		t.Fatal("executor must not be nil")
	}
	wantInvoice := map[string]bool{
		ToolInvoicesByDate:      false,
		ToolInvoicesByUnitPrice: false,
		ToolInvoiceSupportRep:   false,
	}
	for _, info := range infos {
		if _, ok := wantInvoice[info.Name]; !ok {
			t.Errorf("unexpected invoice tool %q", info.Name)
			continue
		}
		wantInvoice[info.Name] = true
	}
	for name, seen := range wantInvoice {
		if !seen {
			t.Errorf("missing invoice tool %q", name)
		}
	}

	infos, _ = BuildForRoute(contractx.RouteMusic, nil)
	if len(infos) != 4 {
		t.Fatalf("music tools = %d, want 4", len(infos))
	}

	if infos, _ := BuildForRoute(contractx.RouteGeneric, nil); infos != nil {
		t.Fatalf("generic route tools = %v, want none", infos)
	}
}

func TestExecutorReportsFailuresInResult(t *testing.T) {
	t.Parallel()

	exec := NewExecutor(contractx.RouteInvoice, nil)

	result, err := exec(context.Background(), ToolInvoicesByDate, map[string]any{"account_id": int64(1)})
	if err != nil {
		t.Fatalf("executor must not return errors, got %v", err)
	}
	if result.Tool != ToolInvoicesByDate || result.Error == "" {
		t.Fatalf("result = %+v, want a reported tool failure", result)
	}
}

func TestStringArg(t *testing.T) {
	t.Parallel()

	if v, err := stringArg(map[string]any{"name": "AC/DC"}, "name"); err != nil || v != "AC/DC" {
		t.Fatalf("stringArg = %q, %v", v, err)
	}
	if _, err := stringArg(map[string]any{}, "name"); err == nil {
		t.Fatal("missing key must fail")
	}
	if _, err := stringArg(map[string]any{"name": 7}, "name"); err == nil {
		t.Fatal("non-string must fail")
	}
	if _, err := stringArg(map[string]any{"name": ""}, "name"); err == nil {
		t.Fatal("empty string must fail")
	}
}

func TestInt64Arg(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  any
		want int64
	}{
		{"int64", int64(5), 5},
		{"int", 5, 5},
		{"float64", float64(5), 5},
		{"json number", json.Number("5"), 5},
	}
	for _, tt := range tests {
		got, err := int64Arg(map[string]any{"id": tt.raw}, "id")
		if err != nil || got != tt.want {
			t.Errorf("int64Arg(%s) = %d, %v; want %d", tt.name, got, err, tt.want)
		}
	}

	if _, err := int64Arg(map[string]any{}, "id"); err == nil {
		t.Fatal("missing key must fail")
	}
	if _, err := int64Arg(map[string]any{"id": "5"}, "id"); err == nil {
		t.Fatal("string must fail")
	}
}
