// Package msgpack provides an order-preserving MessagePack codec implementation.
package msgpack

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
	"github.com/zoobzio/keyswap"
)

// msgpackCodec implements keyswap.Codec for MessagePack.
type msgpackCodec struct{}

// New returns a MessagePack codec.
func New() keyswap.Codec {
	return &msgpackCodec{}
}

// ContentType returns the MIME type for MessagePack.
func (c *msgpackCodec) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes v as MessagePack, writing map entries in object order.
func (c *msgpackCodec) Marshal(v keyswap.Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := encode(enc, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes MessagePack data, keeping map entry order.
func (c *msgpackCodec) Unmarshal(data []byte) (keyswap.Value, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	return decode(dec)
}

func decode(dec *msgpack.Decoder) (keyswap.Value, error) {
	c, err := dec.PeekCode()
	if err != nil {
		return nil, err
	}

	switch {
	case c == msgpcode.Nil:
		if err := dec.DecodeNil(); err != nil {
			return nil, err
		}
		return keyswap.Null{}, nil
	case c == msgpcode.True || c == msgpcode.False:
		b, err := dec.DecodeBool()
		if err != nil {
			return nil, err
		}
		return keyswap.Bool(b), nil
	case msgpcode.IsString(c):
		s, err := dec.DecodeString()
		if err != nil {
			return nil, err
		}
		return keyswap.String(s), nil
	case msgpcode.IsFixedArray(c) || c == msgpcode.Array16 || c == msgpcode.Array32:
		n, err := dec.DecodeArrayLen()
		if err != nil {
			return nil, err
		}
		arr := make(keyswap.Array, 0, max(n, 0))
		for i := 0; i < n; i++ {
			elem, err := decode(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, elem)
		}
		return arr, nil
	case msgpcode.IsFixedMap(c) || c == msgpcode.Map16 || c == msgpcode.Map32:
		n, err := dec.DecodeMapLen()
		if err != nil {
			return nil, err
		}
		obj := keyswap.NewObject()
		for i := 0; i < n; i++ {
			key, err := dec.DecodeString()
			if err != nil {
				return nil, fmt.Errorf("map key: %w", err)
			}
			elem, err := decode(dec)
			if err != nil {
				return nil, err
			}
			obj.Set(key, elem)
		}
		return obj, nil
	case c == msgpcode.Float:
		f, err := dec.DecodeFloat32()
		if err != nil {
			return nil, err
		}
		// Kept as float32 so re-encoding does not widen it.
		return keyswap.Opaque{V: f}, nil
	case c == msgpcode.Double:
		f, err := dec.DecodeFloat64()
		if err != nil {
			return nil, err
		}
		return keyswap.Float(f), nil
	}

	v, err := dec.DecodeInterfaceLoose()
	if err != nil {
		return nil, err
	}
	switch n := v.(type) {
	case int64:
		return keyswap.Int(n), nil
	case uint64:
		return keyswap.Number(strconv.FormatUint(n, 10)), nil
	case float64:
		return keyswap.Float(n), nil
	default:
		return keyswap.Opaque{V: v}, nil
	}
}

func encode(enc *msgpack.Encoder, v keyswap.Value) error {
	switch tv := v.(type) {
	case nil, keyswap.Null:
		return enc.EncodeNil()
	case keyswap.Bool:
		return enc.EncodeBool(bool(tv))
	case keyswap.Number:
		return encodeNumber(enc, tv)
	case keyswap.String:
		return enc.EncodeString(string(tv))
	case keyswap.Array:
		if err := enc.EncodeArrayLen(len(tv)); err != nil {
			return err
		}
		for _, elem := range tv {
			if err := encode(enc, elem); err != nil {
				return err
			}
		}
		return nil
	case *keyswap.Object:
		if err := enc.EncodeMapLen(tv.Len()); err != nil {
			return err
		}
		var err error
		tv.Range(func(k string, elem keyswap.Value) bool {
			if err = enc.EncodeString(k); err != nil {
				return false
			}
			err = encode(enc, elem)
			return err == nil
		})
		return err
	case keyswap.Opaque:
		return enc.Encode(tv.V)
	}
	return nil
}

// encodeNumber writes the narrowest of int64, uint64 or float64 that holds n.
func encodeNumber(enc *msgpack.Encoder, n keyswap.Number) error {
	if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		return enc.EncodeInt(i)
	}
	if u, err := strconv.ParseUint(string(n), 10, 64); err == nil {
		return enc.EncodeUint(u)
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return fmt.Errorf("invalid number literal %q", string(n))
	}
	return enc.EncodeFloat64(f)
}
