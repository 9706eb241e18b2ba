package typespec

import (
	"errors"
	"strings"
	"testing"
)

// fakeInstance satisfies Typed for validator tests.
type fakeInstance struct {
	class     string
	ancestors map[string]bool
}

func (f *fakeInstance) TypeName() string { return f.class }
func (f *fakeInstance) IsTypeOf(name string) bool {
	return f.class == name || f.ancestors[name]
}

func TestValidatePrimitives(t *testing.T) {
	tests := []struct {
		name  string
		decl  string
		value any
		ok    bool
	}{
		{"int is number", "number", 7, true},
		{"int64 is number", "number", int64(7), true},
		{"float is number", "number", 2.5, true},
		{"string not number", "number", "7", false},
		{"string ok", "string", "hi", true},
		{"bool ok", "boolean", true, true},
		{"map is table", "table", map[string]any{}, true},
		{"slice is table", "table", []any{1}, true},
		{"number not table", "table", 5, false},
		{"func ok", "function", func() {}, true},
		{"any takes number", "any", 1, true},
		{"any takes table", "any", map[string]any{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseOne(nil, tt.decl)
			if err != nil {
				t.Fatalf("ParseOne(%q) error = %v", tt.decl, err)
			}
			got, err := Validate(c, tt.value)
			if tt.ok && err != nil {
				t.Fatalf("Validate error = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrTypeMismatch) {
				t.Fatalf("Validate error = %v, want ErrTypeMismatch", err)
			}
			if tt.ok && got == nil {
				t.Error("Validate returned nil value on success")
			}
		})
	}
}

func TestValidateAbsence(t *testing.T) {
	required, _ := ParseOne(nil, "number")
	optional, _ := ParseOne(nil, "?number")
	defaulted, _ := ParseOne(nil, "number=14")
	anyReq, _ := ParseOne(nil, "any")

	if _, err := Validate(required, nil); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("required absent: error = %v, want ErrTypeMismatch", err)
	}
	if v, err := Validate(optional, nil); err != nil || v != nil {
		t.Errorf("optional absent: (%v, %v), want (nil, nil)", v, err)
	}
	if v, err := Validate(defaulted, nil); err != nil || v != int64(14) {
		t.Errorf("defaulted absent: (%v, %v), want (14, nil)", v, err)
	}
	if v, err := Validate(defaulted, 7); err != nil || v != 7 {
		t.Errorf("defaulted present: (%v, %v), want (7, nil)", v, err)
	}
	// "any" matches present values only.
	if _, err := Validate(anyReq, nil); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("required any absent: error = %v, want ErrTypeMismatch", err)
	}
}

func TestValidateEntity(t *testing.T) {
	lookup := fakeLookup{"Animal": true, "Dog": true}
	c, err := ParseOne(lookup, "Animal")
	if err != nil {
		t.Fatalf("ParseOne error = %v", err)
	}

	dog := &fakeInstance{class: "Dog", ancestors: map[string]bool{"Animal": true}}
	rock := &fakeInstance{class: "Rock"}

	if _, err := Validate(c, dog); err != nil {
		t.Errorf("Dog against Animal: error = %v, want nil", err)
	}
	if _, err := Validate(c, rock); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Rock against Animal: error = %v, want ErrTypeMismatch", err)
	}
	if _, err := Validate(c, 42); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("number against Animal: error = %v, want ErrTypeMismatch", err)
	}
}

func TestValidateListPositions(t *testing.T) {
	cs, err := Parse(nil, "string", "number", "?boolean")
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}

	if _, err := ValidateList(cs, []any{"a", 1, true}); err != nil {
		t.Errorf("full match: error = %v, want nil", err)
	}
	if _, err := ValidateList(cs, []any{"a", 1}); err != nil {
		t.Errorf("absent optional tail: error = %v, want nil", err)
	}

	_, err = ValidateList(cs, []any{"a", "not a number"})
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("mismatch error = %v, want ErrTypeMismatch", err)
	}
	if !strings.Contains(err.Error(), "position 2") {
		t.Errorf("mismatch error %q does not name position 2", err)
	}

	_, err = ValidateList(cs, nil)
	if !errors.Is(err, ErrTypeMismatch) || !strings.Contains(err.Error(), "position 1") {
		t.Errorf("missing required error = %v, want ErrTypeMismatch at position 1", err)
	}
}

func TestValidateListDefaultsAndExtras(t *testing.T) {
	cs, err := Parse(nil, "string", "number=14")
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}

	out, err := ValidateList(cs, []any{"a"})
	if err != nil {
		t.Fatalf("ValidateList error = %v", err)
	}
	if len(out) != 2 || out[1] != int64(14) {
		t.Errorf("out = %v, want [a 14]", out)
	}

	// Values beyond the declared list pass through unchanged.
	out, err = ValidateList(cs, []any{"a", 7, "extra"})
	if err != nil {
		t.Fatalf("ValidateList error = %v", err)
	}
	if len(out) != 3 || out[2] != "extra" {
		t.Errorf("out = %v, want trailing extra preserved", out)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{nil, "nil"},
		{1, "number"},
		{"s", "string"},
		{false, "boolean"},
		{map[string]any{}, "table"},
		{[]any{}, "table"},
		{func() {}, "function"},
		{&fakeInstance{class: "Dog"}, "Dog"},
	}
	for _, tt := range tests {
		if got := KindOf(tt.value); got != tt.want {
			t.Errorf("KindOf(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
