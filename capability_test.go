package keyswap

import "testing"

func TestIsValidMethod(t *testing.T) {
	tests := []struct {
		method Method
		want   bool
	}{
		{MethodAlphabetic, true},
		{MethodNumeric, true},
		{MethodPadded, true},
		{MethodBase64, true},
		{MethodShort, true},
		{MethodCustom, true},
		{"unknown", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			if got := IsValidMethod(tt.method); got != tt.want {
				t.Errorf("IsValidMethod(%q) = %v, want %v", tt.method, got, tt.want)
			}
		})
	}
}

func TestMethod_Deterministic(t *testing.T) {
	tests := []struct {
		method Method
		want   bool
	}{
		{MethodAlphabetic, true},
		{MethodNumeric, true},
		{MethodPadded, true},
		{MethodBase64, true},
		{MethodShort, false},
		{MethodCustom, false},
		{"unknown", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			if got := tt.method.Deterministic(); got != tt.want {
				t.Errorf("%q.Deterministic() = %v, want %v", tt.method, got, tt.want)
			}
		})
	}
}

func TestMethods(t *testing.T) {
	methods := Methods()
	if len(methods) != len(validMethods) {
		t.Fatalf("Methods() returned %d methods, want %d", len(methods), len(validMethods))
	}
	for _, m := range methods {
		if !IsValidMethod(m) {
			t.Errorf("Methods() returned unknown method %q", m)
		}
	}
}
