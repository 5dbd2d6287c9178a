package keyswap_test

import (
	"errors"
	"testing"

	"github.com/zoobzio/keyswap"
)

func TestValidateDictionaryKeys(t *testing.T) {
	if err := keyswap.ValidateDictionaryKeys(map[string]string{"name": "a"}); err != nil {
		t.Errorf("ValidateDictionaryKeys() error: %v", err)
	}
	err := keyswap.ValidateDictionaryKeys(map[string]string{"name": "a", "__proto__": "b"})
	if !errors.Is(err, keyswap.ErrUnsafeKey) {
		t.Errorf("ValidateDictionaryKeys() error = %v, want ErrUnsafeKey", err)
	}
}

func TestValidateObjectKeys(t *testing.T) {
	profile := keyswap.NewObject()
	profile.Set("__proto__", keyswap.Null{})
	user := keyswap.NewObject()
	user.Set("profile", profile)
	doc := keyswap.NewObject()
	doc.Set("user", user)

	err := keyswap.ValidateObjectKeys(doc, "")
	var structErr *keyswap.StructuralError
	if !errors.As(err, &structErr) {
		t.Fatalf("ValidateObjectKeys() error = %v, want *StructuralError", err)
	}
	if structErr.Path != "root.user.profile.__proto__" {
		t.Errorf("Path = %q, want root.user.profile.__proto__", structErr.Path)
	}
}

func TestCreateSafeContainer(t *testing.T) {
	c := keyswap.CreateSafeContainer()
	if c.Len() != 0 {
		t.Errorf("CreateSafeContainer().Len() = %d, want 0", c.Len())
	}
	if err := keyswap.SafeAssign(c, "toString", keyswap.Bool(true)); !errors.Is(err, keyswap.ErrUnsafeKey) {
		t.Errorf("SafeAssign(toString) error = %v, want ErrUnsafeKey", err)
	}
	if c.Has("toString") {
		t.Error("rejected key should not be stored")
	}
}

func TestSanitizeObject(t *testing.T) {
	doc := keyswap.NewObject()
	doc.Set("ok", keyswap.Int(1))
	doc.Set("constructor", keyswap.Int(2))

	out, err := keyswap.SanitizeObject(doc, keyswap.DefaultSanitizeOptions())
	if err != nil {
		t.Fatalf("SanitizeObject() error: %v", err)
	}
	if keys := out.(*keyswap.Object).Keys(); len(keys) != 1 || keys[0] != "ok" {
		t.Errorf("SanitizeObject() keys = %v, want [ok]", keys)
	}
	if !keyswap.IsSafeObject(out) {
		t.Error("sanitized output should be safe")
	}
	if keyswap.IsSafeObject(doc) {
		t.Error("input with constructor should not be safe")
	}
}

func TestIsSafeObject_NonObject(t *testing.T) {
	for _, v := range []keyswap.Value{nil, keyswap.Null{}, keyswap.String("x"), keyswap.Array{}} {
		if keyswap.IsSafeObject(v) {
			t.Errorf("IsSafeObject(%v) = true, want false", v)
		}
	}
}
