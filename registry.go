package keyswap

import "sync"

// registryKey combines dictionary fingerprint and codec for cache lookup.
type registryKey struct {
	fingerprint string
	contentType string
}

var (
	registry   = make(map[registryKey]*Processor)
	registryMu sync.RWMutex
)

// Use returns a cached processor or builds a new one.
// The processor is cached by dictionary fingerprint and codec content type.
func Use(codec Codec, dict *Dictionary) (*Processor, error) {
	if codec == nil || dict == nil {
		return NewProcessor(codec, dict)
	}
	key := registryKey{fingerprint: dict.Fingerprint(), contentType: codec.ContentType()}

	// Fast path: read-lock cache check
	registryMu.RLock()
	if cached, ok := registry[key]; ok {
		registryMu.RUnlock()
		return cached, nil
	}
	registryMu.RUnlock()

	// Slow path: build and cache with write-lock
	registryMu.Lock()
	defer registryMu.Unlock()

	// Double-check pattern
	if cached, ok := registry[key]; ok {
		return cached, nil
	}

	processor, err := NewProcessor(codec, dict)
	if err != nil {
		return nil, err
	}

	registry[key] = processor
	return processor, nil
}

// Reset clears the processor registry.
// This is primarily useful for test isolation.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[registryKey]*Processor)
}
