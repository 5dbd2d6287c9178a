package keyswap

import (
	"errors"
	"testing"
)

func TestUnsafeKeyError_Is(t *testing.T) {
	err := newUnsafeKeyError("token", "__proto__", "is a reserved identifier")

	if !errors.Is(err, ErrUnsafeKey) {
		t.Error("UnsafeKeyError should unwrap to ErrUnsafeKey")
	}
	if errors.Is(err, ErrCollision) {
		t.Error("UnsafeKeyError should not match ErrCollision")
	}
}

func TestUnsafeKeyError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "explicit role",
			err:  newUnsafeKeyError("token", "valueOf", "is a reserved identifier"),
			want: `unsafe key: token "valueOf" is a reserved identifier`,
		},
		{
			name: "default role",
			err:  &UnsafeKeyError{Key: "a\x00", Reason: "contains a control character"},
			want: `unsafe key: key "a\x00" contains a control character`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCollisionError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "duplicate",
			err:  &CollisionError{Key: "name", Duplicate: true},
			want: `key collision: duplicate key "name"`,
		},
		{
			name: "shared token",
			err:  &CollisionError{Key: "b", Token: "x", Existing: "a"},
			want: `key collision: keys "a" and "b" both map to token "x"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !errors.Is(tt.err, ErrCollision) {
				t.Error("CollisionError should unwrap to ErrCollision")
			}
		})
	}
}

func TestConfigError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "with method",
			err:  newConfigError("generator", MethodCustom, "required"),
			want: `invalid configuration: generator for method "custom": required`,
		},
		{
			name: "option only",
			err:  newConfigError("padding", "", "must not be negative"),
			want: `invalid configuration: padding: must not be negative`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !errors.Is(tt.err, ErrConfiguration) {
				t.Error("ConfigError should unwrap to ErrConfiguration")
			}
		})
	}
}

func TestStructuralError_Is(t *testing.T) {
	cause := newUnsafeKeyError("key", "__proto__", "is a reserved identifier")
	err := newStructuralError("root.user.__proto__", "__proto__", cause)

	if !errors.Is(err, ErrStructuralValidation) {
		t.Error("StructuralError should match ErrStructuralValidation")
	}
	if !errors.Is(err, ErrUnsafeKey) {
		t.Error("StructuralError should match ErrUnsafeKey through its cause")
	}

	var keyErr *UnsafeKeyError
	if !errors.As(err, &keyErr) || keyErr != cause {
		t.Error("errors.As should reach the cause")
	}

	want := "structural validation failed at root.user.__proto__: is a reserved identifier"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestStructuralError_NoCause(t *testing.T) {
	err := &StructuralError{Path: "root.x"}

	if errors.Is(err, ErrUnsafeKey) {
		t.Error("StructuralError without cause should not match ErrUnsafeKey")
	}
	if got := err.Error(); got != "structural validation failed at root.x" {
		t.Errorf("Error() = %q", got)
	}
}

func TestCodecError_Is(t *testing.T) {
	err := newCodecError(ErrUnmarshal, "application/json", errors.New("invalid json"))

	if !errors.Is(err, ErrUnmarshal) {
		t.Error("CodecError should unwrap to ErrUnmarshal")
	}
	if errors.Is(err, ErrMarshal) {
		t.Error("CodecError should not match ErrMarshal")
	}
}

func TestCodecError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "with cause",
			err:  newCodecError(ErrMarshal, "application/msgpack", errors.New("bad value")),
			want: "marshal failed (application/msgpack): bad value",
		},
		{
			name: "no cause",
			err:  &CodecError{Err: ErrUnmarshal, ContentType: "application/json"},
			want: "unmarshal failed (application/json)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
