package keyswap

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEmitDictionaryBuilt_Success(_ *testing.T) {
	// Should not panic
	emitDictionaryBuilt(context.Background(), MethodAlphabetic, 3, time.Millisecond, nil)
}

func TestEmitDictionaryBuilt_Error(_ *testing.T) {
	emitDictionaryBuilt(context.Background(), MethodCustom, 0, time.Millisecond, errors.New("test error"))
}

func TestEmitProcessorCreated(_ *testing.T) {
	emitProcessorCreated(context.Background(), "application/json", "0123456789abcdef")
}

func TestEmitTokenizeStart(_ *testing.T) {
	emitTokenizeStart(context.Background(), "application/json", MethodNumeric)
}

func TestEmitTokenizeComplete_Success(_ *testing.T) {
	emitTokenizeComplete(context.Background(), "application/json", MethodNumeric, 1024, 100*time.Millisecond, nil)
}

func TestEmitTokenizeComplete_Error(_ *testing.T) {
	emitTokenizeComplete(context.Background(), "application/json", MethodNumeric, 0, 100*time.Millisecond, errors.New("test error"))
}

func TestEmitDetokenizeStart(_ *testing.T) {
	emitDetokenizeStart(context.Background(), "application/yaml", MethodBase64)
}

func TestEmitDetokenizeComplete_Success(_ *testing.T) {
	emitDetokenizeComplete(context.Background(), "application/yaml", MethodBase64, 512, 100*time.Millisecond, nil)
}

func TestEmitDetokenizeComplete_Error(_ *testing.T) {
	emitDetokenizeComplete(context.Background(), "application/yaml", MethodBase64, 0, 100*time.Millisecond, errors.New("test error"))
}

func TestSignalVariables(t *testing.T) {
	// Verify signals are properly initialized
	signals := []struct {
		name   string
		signal interface{}
	}{
		{"SignalDictionaryBuilt", SignalDictionaryBuilt},
		{"SignalProcessorCreated", SignalProcessorCreated},
		{"SignalTokenizeStart", SignalTokenizeStart},
		{"SignalTokenizeComplete", SignalTokenizeComplete},
		{"SignalDetokenizeStart", SignalDetokenizeStart},
		{"SignalDetokenizeComplete", SignalDetokenizeComplete},
	}

	for _, s := range signals {
		if s.signal == nil {
			t.Errorf("%s is nil", s.name)
		}
	}
}

func TestKeyVariables(t *testing.T) {
	keys := []struct {
		name string
		key  interface{}
	}{
		{"KeyContentType", KeyContentType},
		{"KeyMethod", KeyMethod},
		{"KeyFingerprint", KeyFingerprint},
		{"KeyKeyCount", KeyKeyCount},
		{"KeySize", KeySize},
		{"KeyDuration", KeyDuration},
		{"KeyError", KeyError},
	}

	for _, k := range keys {
		if k.key == nil {
			t.Errorf("%s is nil", k.name)
		}
	}
}
