package keyswap

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Processor binds a Codec to a Dictionary so encoded payloads can be
// tokenized and detokenized in one call. Use Tokenize on egress and
// Detokenize on ingress.
//
// Processors hold no mutable state and are safe for concurrent use.
type Processor struct {
	codec Codec
	dict  *Dictionary
}

// NewProcessor creates a Processor for the given codec and dictionary.
func NewProcessor(codec Codec, dict *Dictionary) (*Processor, error) {
	if codec == nil {
		return nil, newConfigError("codec", "", "must not be nil")
	}
	if dict == nil {
		return nil, newConfigError("dictionary", "", "must not be nil")
	}

	p := &Processor{codec: codec, dict: dict}
	emitProcessorCreated(context.Background(), codec.ContentType(), dict.Fingerprint())
	return p, nil
}

// Dictionary returns the dictionary the processor applies.
func (p *Processor) Dictionary() *Dictionary { return p.dict }

// ContentType returns the codec's MIME type.
func (p *Processor) ContentType() string { return p.codec.ContentType() }

// Tokenize decodes data, replaces its keys with tokens, and encodes the result.
//
//nolint:dupl // Intentional parallel structure with Detokenize
func (p *Processor) Tokenize(ctx context.Context, data []byte) ([]byte, error) {
	start := time.Now()
	emitTokenizeStart(ctx, p.codec.ContentType(), p.dict.Method())

	var retErr error
	var retData []byte
	defer func() {
		emitTokenizeComplete(ctx, p.codec.ContentType(), p.dict.Method(),
			len(retData), time.Since(start), retErr)
	}()

	retData, retErr = p.convert(data, p.dict.Tokenize)
	if retErr != nil {
		retErr = fmt.Errorf("tokenize: %w", retErr)
		return nil, retErr
	}
	return retData, nil
}

// Detokenize decodes data, restores its source keys, and encodes the result.
//
//nolint:dupl // Intentional parallel structure with Tokenize
func (p *Processor) Detokenize(ctx context.Context, data []byte) ([]byte, error) {
	start := time.Now()
	emitDetokenizeStart(ctx, p.codec.ContentType(), p.dict.Method())

	var retErr error
	var retData []byte
	defer func() {
		emitDetokenizeComplete(ctx, p.codec.ContentType(), p.dict.Method(),
			len(retData), time.Since(start), retErr)
	}()

	retData, retErr = p.convert(data, p.dict.Detokenize)
	if retErr != nil {
		retErr = fmt.Errorf("detokenize: %w", retErr)
		return nil, retErr
	}
	return retData, nil
}

// TokenizeValue tokenizes an already decoded value.
func (p *Processor) TokenizeValue(ctx context.Context, v Value) (Value, error) {
	start := time.Now()
	emitTokenizeStart(ctx, "", p.dict.Method())
	out, err := p.dict.Tokenize(v)
	emitTokenizeComplete(ctx, "", p.dict.Method(), 0, time.Since(start), err)
	return out, err
}

// DetokenizeValue detokenizes an already decoded value.
func (p *Processor) DetokenizeValue(ctx context.Context, v Value) (Value, error) {
	start := time.Now()
	emitDetokenizeStart(ctx, "", p.dict.Method())
	out, err := p.dict.Detokenize(v)
	emitDetokenizeComplete(ctx, "", p.dict.Method(), 0, time.Since(start), err)
	return out, err
}

// convert runs decode -> fn -> encode, wrapping codec failures in CodecError.
func (p *Processor) convert(data []byte, fn func(Value) (Value, error)) ([]byte, error) {
	v, err := p.codec.Unmarshal(data)
	if err != nil {
		return nil, newCodecError(ErrUnmarshal, p.codec.ContentType(), err)
	}

	out, err := fn(v)
	if err != nil {
		return nil, err
	}

	encoded, err := p.codec.Marshal(out)
	if err != nil {
		var codecErr *CodecError
		if errors.As(err, &codecErr) {
			return nil, err
		}
		return nil, newCodecError(ErrMarshal, p.codec.ContentType(), err)
	}
	return encoded, nil
}
