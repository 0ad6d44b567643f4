package agent

import (
	"context"
	"errors"
	"testing"
)

func noopHandler(context.Context, map[string]any) (string, error) {
	return "ok", nil
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(NewTool("a", "first"), noopHandler); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(NewTool("a", "duplicate"), noopHandler); err == nil {
		t.Error("expected error for duplicate name")
	}
	if err := r.Register(NewTool("", "unnamed"), noopHandler); err == nil {
		t.Error("expected error for empty name")
	}
	if err := r.Register(NewTool("b", "no handler"), nil); err == nil {
		t.Error("expected error for nil handler")
	}

	if !r.Has("a") {
		t.Error("Has(a) = false")
	}
	if r.Has("b") {
		t.Error("Has(b) = true after failed registration")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistryDescriptorsKeepRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	names := []string{"gamma", "alpha", "beta"}
	for _, name := range names {
		if err := r.Register(NewTool(name, ""), noopHandler); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	descs := r.Descriptors()
	if len(descs) != len(names) {
		t.Fatalf("got %d descriptors, want %d", len(descs), len(names))
	}
	for i, name := range names {
		if descs[i].Name != name {
			t.Errorf("descs[%d].Name = %q, want %q", i, descs[i].Name, name)
		}
		if descs[i].Type != "function" {
			t.Errorf("descs[%d].Type = %q, want function", i, descs[i].Type)
		}
	}
}

func TestRegistryCallUnknownTool(t *testing.T) {
	r := NewRegistry()
	_, err := r.Call(context.Background(), "missing", nil)
	if !errors.Is(err, ErrUnknownTool) {
		t.Errorf("err = %v, want ErrUnknownTool", err)
	}
}

func TestRegistryCallRecoversPanic(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(NewTool("boom", ""), func(context.Context, map[string]any) (string, error) {
		panic("exploded")
	})

	_, err := r.Call(context.Background(), "boom", nil)
	if err == nil {
		t.Fatal("expected error from panicking tool")
	}
}

func TestDescriptorBuilders(t *testing.T) {
	d := NewTool("sheets_write_range", "Write data to a range").
		WithString("spreadsheet_id", "ID of the spreadsheet", true).
		WithString("range_name", "A1 notation range", true).
		WithStringTable("values", "List of rows", true).
		WithInteger("max_results", "Limit", false).
		WithBoolean("is_html", "HTML body", false).
		WithEnum("role", "Permission role", false, "reader", "writer")

	if d.Parameters.Type != "object" {
		t.Errorf("schema type = %q", d.Parameters.Type)
	}
	if len(d.Parameters.Properties) != 6 {
		t.Errorf("got %d properties, want 6", len(d.Parameters.Properties))
	}
	if got := d.Parameters.Required; len(got) != 3 {
		t.Errorf("required = %v, want 3 entries", got)
	}

	values := d.Parameters.Properties["values"]
	if values.Type != "array" || values.Items == nil || values.Items.Type != "array" ||
		values.Items.Items == nil || values.Items.Items.Type != "string" {
		t.Errorf("values schema is not a string table: %+v", values)
	}

	role := d.Parameters.Properties["role"]
	if len(role.Enum) != 2 {
		t.Errorf("enum = %v", role.Enum)
	}
}
