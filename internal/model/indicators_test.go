package model

import (
	"encoding/json"
	"math"
	"testing"
)

func TestNullFloat(t *testing.T) {
	tests := []struct {
		name   string
		in     NullFloat
		valid  bool
		str    string
		json   string
		driver any
	}{
		{"unavailable", None(), false, "-", "null", nil},
		{"finite", Some(12.5), true, "12.50", "12.5", 12.5},
		{"NaN", Some(math.NaN()), false, "-", "null", nil},
		{"Inf", Some(math.Inf(1)), false, "-", "null", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := tt.in.Get(); ok != tt.valid {
				t.Errorf("expected valid=%v, got %v", tt.valid, ok)
			}
			if s := tt.in.String(); s != tt.str {
				t.Errorf("expected %q, got %q", tt.str, s)
			}
			b, err := json.Marshal(tt.in)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(b) != tt.json {
				t.Errorf("expected json %s, got %s", tt.json, b)
			}
			var back NullFloat
			if err := json.Unmarshal(b, &back); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if back != tt.in {
				t.Errorf("expected %+v after decode, got %+v", tt.in, back)
			}
			v, err := tt.in.Value()
			if err != nil {
				t.Fatalf("value: %v", err)
			}
			if v != tt.driver {
				t.Errorf("expected driver value %v, got %v", tt.driver, v)
			}
		})
	}
}

func TestNullFloat_UnmarshalInvalid(t *testing.T) {
	var n NullFloat
	if err := json.Unmarshal([]byte(`"abc"`), &n); err == nil {
		t.Error("expected error for non-numeric JSON")
	}
}
