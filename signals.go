package keyswap

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for keyswap events.
var (
	SignalDictionaryBuilt    = capitan.NewSignal("keyswap.dictionary.built", "Dictionary construction finished")
	SignalProcessorCreated   = capitan.NewSignal("keyswap.processor.created", "Processor instantiated")
	SignalTokenizeStart      = capitan.NewSignal("keyswap.tokenize.start", "Tokenize operation beginning")
	SignalTokenizeComplete   = capitan.NewSignal("keyswap.tokenize.complete", "Tokenize operation finished")
	SignalDetokenizeStart    = capitan.NewSignal("keyswap.detokenize.start", "Detokenize operation beginning")
	SignalDetokenizeComplete = capitan.NewSignal("keyswap.detokenize.complete", "Detokenize operation finished")
)

// Keys for typed event data.
var (
	KeyContentType = capitan.NewStringKey("content_type")
	KeyMethod      = capitan.NewStringKey("method")
	KeyFingerprint = capitan.NewStringKey("fingerprint")
	KeyKeyCount    = capitan.NewIntKey("key_count")
	KeySize        = capitan.NewIntKey("size")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
)

// emitDictionaryBuilt emits an event when Build finishes, successfully or not.
func emitDictionaryBuilt(ctx context.Context, method Method, keyCount int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyMethod.Field(string(method)),
		KeyKeyCount.Field(keyCount),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDictionaryBuilt, fields...)
	} else {
		capitan.Emit(ctx, SignalDictionaryBuilt, fields...)
	}
}

// emitProcessorCreated emits an event when a processor is created.
func emitProcessorCreated(ctx context.Context, contentType, fingerprint string) {
	capitan.Emit(ctx, SignalProcessorCreated,
		KeyContentType.Field(contentType),
		KeyFingerprint.Field(fingerprint),
	)
}

// emitTokenizeStart emits an event when tokenize begins.
func emitTokenizeStart(ctx context.Context, contentType string, method Method) {
	capitan.Emit(ctx, SignalTokenizeStart,
		KeyContentType.Field(contentType),
		KeyMethod.Field(string(method)),
	)
}

// emitTokenizeComplete emits an event when tokenize finishes.
func emitTokenizeComplete(ctx context.Context, contentType string, method Method, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyMethod.Field(string(method)),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalTokenizeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalTokenizeComplete, fields...)
	}
}

// emitDetokenizeStart emits an event when detokenize begins.
func emitDetokenizeStart(ctx context.Context, contentType string, method Method) {
	capitan.Emit(ctx, SignalDetokenizeStart,
		KeyContentType.Field(contentType),
		KeyMethod.Field(string(method)),
	)
}

// emitDetokenizeComplete emits an event when detokenize finishes.
func emitDetokenizeComplete(ctx context.Context, contentType string, method Method, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyMethod.Field(string(method)),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDetokenizeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDetokenizeComplete, fields...)
	}
}
