// Package bson provides an order-preserving BSON codec implementation.
//
// BSON documents must be objects at the top level; other values fail to marshal.
package bson

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/zoobzio/keyswap"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotDocument indicates a non-object value at the top level.
var ErrNotDocument = errors.New("bson top-level value must be an object")

// bsonCodec implements keyswap.Codec for BSON.
type bsonCodec struct{}

// New returns a BSON codec.
func New() keyswap.Codec {
	return &bsonCodec{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return "application/bson"
}

// Marshal encodes an object as a BSON document, keeping element order.
func (c *bsonCodec) Marshal(v keyswap.Value) ([]byte, error) {
	obj, ok := v.(*keyswap.Object)
	if !ok {
		return nil, fmt.Errorf("%w, got %s", ErrNotDocument, kindOf(v))
	}
	doc, err := toD(obj)
	if err != nil {
		return nil, err
	}
	return bson.Marshal(doc)
}

// Unmarshal decodes a BSON document, keeping element order.
func (c *bsonCodec) Unmarshal(data []byte) (keyswap.Value, error) {
	var doc bson.D
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return fromD(doc), nil
}

func fromD(doc bson.D) *keyswap.Object {
	obj := keyswap.NewObject()
	for _, e := range doc {
		obj.Set(e.Key, fromBSON(e.Value))
	}
	return obj
}

func fromBSON(v any) keyswap.Value {
	switch tv := v.(type) {
	case nil, primitive.Null, primitive.Undefined:
		return keyswap.Null{}
	case bool:
		return keyswap.Bool(tv)
	case string:
		return keyswap.String(tv)
	case int32:
		// Kept as int32 so re-encoding does not widen it to int64.
		return keyswap.Opaque{V: tv}
	case int64:
		return keyswap.Int(tv)
	case float64:
		return keyswap.Float(tv)
	case bson.D:
		return fromD(tv)
	case bson.M:
		keys := make([]string, 0, len(tv))
		for k := range tv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := keyswap.NewObject()
		for _, k := range keys {
			obj.Set(k, fromBSON(tv[k]))
		}
		return obj
	case bson.A:
		arr := make(keyswap.Array, len(tv))
		for i, elem := range tv {
			arr[i] = fromBSON(elem)
		}
		return arr
	case []any:
		arr := make(keyswap.Array, len(tv))
		for i, elem := range tv {
			arr[i] = fromBSON(elem)
		}
		return arr
	default:
		return keyswap.Opaque{V: v}
	}
}

func toD(obj *keyswap.Object) (bson.D, error) {
	doc := make(bson.D, 0, obj.Len())
	var err error
	obj.Range(func(k string, elem keyswap.Value) bool {
		var v any
		if v, err = toBSON(elem); err != nil {
			return false
		}
		doc = append(doc, bson.E{Key: k, Value: v})
		return true
	})
	return doc, err
}

func toBSON(v keyswap.Value) (any, error) {
	switch tv := v.(type) {
	case nil, keyswap.Null:
		return nil, nil
	case keyswap.Bool:
		return bool(tv), nil
	case keyswap.String:
		return string(tv), nil
	case keyswap.Number:
		if i, err := tv.Int64(); err == nil {
			return i, nil
		}
		f, err := strconv.ParseFloat(string(tv), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number literal %q", string(tv))
		}
		return f, nil
	case keyswap.Array:
		arr := make(bson.A, len(tv))
		for i, elem := range tv {
			b, err := toBSON(elem)
			if err != nil {
				return nil, err
			}
			arr[i] = b
		}
		return arr, nil
	case *keyswap.Object:
		return toD(tv)
	case keyswap.Opaque:
		return tv.V, nil
	}
	return nil, fmt.Errorf("unsupported value %T", v)
}

func kindOf(v keyswap.Value) string {
	if v == nil {
		return keyswap.KindNull.String()
	}
	return v.Kind().String()
}
