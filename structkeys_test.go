package keyswap

import (
	"slices"
	"testing"
)

type testAddress struct {
	Street string `json:"street"`
	City   string `json:"city"`
}

type testAudit struct {
	CreatedBy string `json:"created_by"`
}

type testAccount struct {
	testAudit
	ID       string            `json:"id"`
	Name     string            `keyswap:"full_name" json:"name"`
	Email    string            `json:"email,omitempty"`
	Password string            `json:"-"`
	Internal string            `keyswap:"-"`
	Home     *testAddress      `json:"home"`
	Previous []testAddress     `json:"previous"`
	Labels   map[string]string `json:"labels"`
	Plain    int
	secret   string //nolint:unused
}

type testNode struct {
	Value    int         `json:"value"`
	Children []*testNode `json:"children"`
}

func TestKeysOf(t *testing.T) {
	got := KeysOf[testAccount]()
	want := []string{"created_by", "id", "full_name", "email", "home", "street", "city", "previous", "labels", "Plain"}

	if !slices.Equal(got, want) {
		t.Errorf("KeysOf() = %v, want %v", got, want)
	}
	for _, skipped := range []string{"name", "Password", "Internal", "secret", "testAudit"} {
		if slices.Contains(got, skipped) {
			t.Errorf("KeysOf() = %v, should not contain %q", got, skipped)
		}
	}
}

type testPointerEmbed struct {
	*testAudit
	ID string `json:"id"`
}

type testTaggedEmbed struct {
	testAudit `json:"audit"`
	ID        string `json:"id"`
}

func TestKeysOf_Embedded(t *testing.T) {
	tests := []struct {
		name string
		got  []string
		want []string
	}{
		{"unexported pointer", KeysOf[testPointerEmbed](), []string{"created_by", "id"}},
		{"tagged embed is a named field", KeysOf[testTaggedEmbed](), []string{"audit", "created_by", "id"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !slices.Equal(tt.got, tt.want) {
				t.Errorf("KeysOf() = %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestTokenize_EmbeddedFieldsAreMapped(t *testing.T) {
	dict, err := BuildFor[testAccount]()
	if err != nil {
		t.Fatalf("BuildFor() error: %v", err)
	}
	in := NewObject()
	in.Set("created_by", String("ada"))

	out, err := dict.Tokenize(in)
	if err != nil {
		t.Fatalf("Tokenize() error: %v", err)
	}
	if out.(*Object).Has("created_by") {
		t.Errorf("promoted key should be tokenized, got keys %v", out.(*Object).Keys())
	}
}

func TestKeysOf_Order(t *testing.T) {
	got := KeysOf[testAddress]()
	want := []string{"street", "city"}

	if !slices.Equal(got, want) {
		t.Errorf("KeysOf() = %v, want %v", got, want)
	}
}

func TestKeysOf_Recursive(t *testing.T) {
	got := KeysOf[testNode]()
	want := []string{"value", "children"}

	if !slices.Equal(got, want) {
		t.Errorf("KeysOf() = %v, want %v", got, want)
	}
}

func TestBuildFor(t *testing.T) {
	dict, err := BuildFor[testAddress](WithMethod(MethodNumeric))
	if err != nil {
		t.Fatalf("BuildFor() error: %v", err)
	}

	if tok, _ := dict.Token("street"); tok != "0" {
		t.Errorf("Token(street) = %q, want 0", tok)
	}
	if tok, _ := dict.Token("city"); tok != "1" {
		t.Errorf("Token(city) = %q, want 1", tok)
	}
}

func TestBuildFor_UnsafeFieldName(t *testing.T) {
	type bad struct {
		Ctor string `json:"constructor"`
	}

	if _, err := BuildFor[bad](); err == nil {
		t.Error("BuildFor() should reject a reserved wire name")
	}
}
