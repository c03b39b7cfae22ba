package types

import (
	"encoding/json"
	"testing"
)

func TestOptionalDistinguishesAbsentNullAndValue(t *testing.T) {
	type payload struct {
		Description Optional[string] `json:"description"`
		Quantity    Optional[int]    `json:"quantity"`
	}

	t.Run("absent", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{}`), &p); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if p.Description.Set || p.Quantity.Set {
			t.Fatalf("expected unset fields, got %+v", p)
		}
	})

	t.Run("explicitNull", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{"description":null}`), &p); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if !p.Description.Set {
			t.Fatal("expected description to be set")
		}
		if p.Description.Valid {
			t.Fatal("expected description to be null")
		}
		if p.Description.Ptr() != nil {
			t.Fatal("Ptr should be nil for explicit null")
		}
	})

	t.Run("value", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{"description":"a widget","quantity":5}`), &p); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if !p.Description.Set || !p.Description.Valid || p.Description.Value != "a widget" {
			t.Fatalf("unexpected description %+v", p.Description)
		}
		if got := p.Quantity.Ptr(); got == nil || *got != 5 {
			t.Fatalf("unexpected quantity pointer %v", got)
		}
	})

	t.Run("emptyStringIsAValue", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{"description":""}`), &p); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if !p.Description.Valid || p.Description.Value != "" {
			t.Fatalf("empty string must stay distinct from null, got %+v", p.Description)
		}
	})

	t.Run("typeMismatch", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{"quantity":"five"}`), &p); err == nil {
			t.Fatal("expected type error")
		}
	})
}

func TestOptionalMarshalRoundTrip(t *testing.T) {
	out, err := json.Marshal(map[string]any{
		"some": Some("x"),
		"null": Null[string](),
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"null":null,"some":"x"}`
	if string(out) != want {
		t.Fatalf("unexpected output %s, want %s", out, want)
	}
}
