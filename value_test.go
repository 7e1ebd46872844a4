package vitrin

import (
	"encoding/json"
	"math"
	"testing"
)

func TestAsString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "hello", "hello"},
		{"bool", true, "true"},
		{"float", 3.5, "3.5"},
		{"float whole", 2015.0, "2015"},
		{"int", 42, "42"},
		{"json number", json.Number("12.5"), "12.5"},
		{"map", map[string]any{}, ""},
		{"slice", []string{"a"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := asString(tt.in); got != tt.want {
				t.Errorf("asString(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestAsNumber(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   float64
		wantOK bool
	}{
		{"float", 12.5, 12.5, true},
		{"int", 7, 7, true},
		{"numeric string", " 100 ", 100, true},
		{"blank string", "   ", 0, false},
		{"garbage string", "soon", 0, false},
		{"json number", json.Number("3"), 3, true},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
		{"nan", math.NaN(), 0, false},
		{"inf", math.Inf(1), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := asNumber(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("asNumber(%v) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestIsTruthy(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{true, true},
		{false, false},
		{"true", true},
		{"1", true},
		{"yes", false},
		{1.0, true},
		{0.0, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := isTruthy(tt.in); got != tt.want {
			t.Errorf("isTruthy(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{nil, true},
		{"", true},
		{"   ", true},
		{"x", false},
		{[]string{}, true},
		{[]string{"a"}, false},
		{[]any{}, true},
		{0.0, false},
		{false, false},
	}
	for _, tt := range tests {
		if got := isEmpty(tt.in); got != tt.want {
			t.Errorf("isEmpty(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTrimOrNil(t *testing.T) {
	if got := trimOrNil("  Kadikoy "); got == nil || *got != "Kadikoy" {
		t.Errorf("trimOrNil trimmed = %v", got)
	}
	if got := trimOrNil("   "); got != nil {
		t.Errorf("trimOrNil blank = %v, want nil", got)
	}
	if got := trimOrNil(nil); got != nil {
		t.Errorf("trimOrNil nil = %v, want nil", got)
	}
}

func TestRangeBound(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *float64
	}{
		{"value", 90000.0, f64(90000)},
		{"string value", "2015", f64(2015)},
		{"zero float", 0.0, nil},
		{"zero string", "0", nil},
		{"blank", "", nil},
		{"nil", nil, nil},
		{"negative survives", -5.0, f64(-5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rangeBound(tt.in)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("rangeBound(%v) = %v, want nil", tt.in, *got)
			case tt.want != nil && (got == nil || *got != *tt.want):
				t.Errorf("rangeBound(%v) = %v, want %v", tt.in, got, *tt.want)
			}
		})
	}
}

func TestToStringSlice(t *testing.T) {
	if got := toStringSlice([]any{"a", 2.0, ""}); len(got) != 2 || got[0] != "a" || got[1] != "2" {
		t.Errorf("toStringSlice mixed = %v", got)
	}
	if got := toStringSlice("solo"); len(got) != 1 || got[0] != "solo" {
		t.Errorf("toStringSlice scalar = %v", got)
	}
	if got := toStringSlice("  "); got != nil {
		t.Errorf("toStringSlice blank = %v, want nil", got)
	}
	if got := toStringSlice(nil); got != nil {
		t.Errorf("toStringSlice nil = %v, want nil", got)
	}
}
