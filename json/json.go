// Package json provides an order-preserving JSON codec implementation.
package json

import (
	"bytes"
	stdjson "encoding/json"
	"errors"
	"fmt"

	"github.com/buger/jsonparser"
	"github.com/zoobzio/keyswap"
)

// ErrInvalidJSON indicates the input is not a single well-formed JSON value.
var ErrInvalidJSON = errors.New("invalid json")

// jsonCodec implements keyswap.Codec for JSON.
type jsonCodec struct{}

// New returns a JSON codec.
func New() keyswap.Codec {
	return &jsonCodec{}
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as compact JSON, keeping object key order.
func (c *jsonCodec) Marshal(v keyswap.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes JSON data, keeping object key order.
func (c *jsonCodec) Unmarshal(data []byte) (keyswap.Value, error) {
	if !stdjson.Valid(data) {
		return nil, ErrInvalidJSON
	}
	raw, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, err
	}
	return decode(raw, dataType)
}

func decode(raw []byte, dataType jsonparser.ValueType) (keyswap.Value, error) {
	switch dataType {
	case jsonparser.Null:
		return keyswap.Null{}, nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(raw)
		if err != nil {
			return nil, err
		}
		return keyswap.Bool(b), nil
	case jsonparser.Number:
		return keyswap.Number(string(raw)), nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(raw)
		if err != nil {
			return nil, err
		}
		return keyswap.String(s), nil
	case jsonparser.Array:
		arr := keyswap.Array{}
		var elemErr error
		_, err := jsonparser.ArrayEach(raw, func(value []byte, vt jsonparser.ValueType, _ int, err error) {
			if elemErr != nil {
				return
			}
			if err != nil {
				elemErr = err
				return
			}
			elem, err := decode(value, vt)
			if err != nil {
				elemErr = err
				return
			}
			arr = append(arr, elem)
		})
		if err != nil {
			return nil, err
		}
		if elemErr != nil {
			return nil, elemErr
		}
		return arr, nil
	case jsonparser.Object:
		obj := keyswap.NewObject()
		err := jsonparser.ObjectEach(raw, func(key, value []byte, vt jsonparser.ValueType, _ int) error {
			elem, err := decode(value, vt)
			if err != nil {
				return err
			}
			obj.Set(string(key), elem)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("%w: unexpected value type %v", ErrInvalidJSON, dataType)
	}
}

func encode(buf *bytes.Buffer, v keyswap.Value) error {
	switch tv := v.(type) {
	case nil, keyswap.Null:
		buf.WriteString("null")
	case keyswap.Bool:
		if tv {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case keyswap.Number:
		if !stdjson.Valid([]byte(tv)) {
			return fmt.Errorf("invalid number literal %q", string(tv))
		}
		buf.WriteString(string(tv))
	case keyswap.String:
		return writeString(buf, string(tv))
	case keyswap.Array:
		buf.WriteByte('[')
		for i, elem := range tv {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encode(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *keyswap.Object:
		buf.WriteByte('{')
		var err error
		first := true
		tv.Range(func(k string, elem keyswap.Value) bool {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			if err = writeString(buf, k); err != nil {
				return false
			}
			buf.WriteByte(':')
			err = encode(buf, elem)
			return err == nil
		})
		if err != nil {
			return err
		}
		buf.WriteByte('}')
	case keyswap.Opaque:
		b, err := stdjson.Marshal(tv.V)
		if err != nil {
			return err
		}
		buf.Write(b)
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	b, err := stdjson.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
