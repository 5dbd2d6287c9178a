// Package yaml provides an order-preserving YAML codec implementation.
package yaml

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/zoobzio/keyswap"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedNode indicates a YAML construct with no JSON-like equivalent,
// such as a mapping with non-scalar keys.
var ErrUnsupportedNode = errors.New("unsupported yaml node")

// yamlCodec implements keyswap.Codec for YAML.
type yamlCodec struct{}

// New returns a YAML codec.
func New() keyswap.Codec {
	return &yamlCodec{}
}

// ContentType returns the MIME type for YAML.
func (c *yamlCodec) ContentType() string {
	return "application/yaml"
}

// Marshal encodes v as YAML, writing mapping entries in object order.
func (c *yamlCodec) Marshal(v keyswap.Value) ([]byte, error) {
	node, err := toNode(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

// Unmarshal decodes the first YAML document in data, keeping mapping order.
// An empty document decodes to null.
func (c *yamlCodec) Unmarshal(data []byte) (keyswap.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return keyswap.Null{}, nil
	}
	return fromNode(doc.Content[0])
}

func fromNode(n *yaml.Node) (keyswap.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return keyswap.Null{}, nil
		}
		return fromNode(n.Content[0])
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.SequenceNode:
		arr := make(keyswap.Array, 0, len(n.Content))
		for _, child := range n.Content {
			elem, err := fromNode(child)
			if err != nil {
				return nil, err
			}
			arr = append(arr, elem)
		}
		return arr, nil
	case yaml.MappingNode:
		obj := keyswap.NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valNode := n.Content[i], n.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: non-scalar key at line %d", ErrUnsupportedNode, keyNode.Line)
			}
			elem, err := fromNode(valNode)
			if err != nil {
				return nil, err
			}
			obj.Set(keyNode.Value, elem)
		}
		return obj, nil
	case yaml.ScalarNode:
		return fromScalar(n)
	}
	return nil, fmt.Errorf("%w: kind %d", ErrUnsupportedNode, n.Kind)
}

func fromScalar(n *yaml.Node) (keyswap.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return keyswap.Null{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return keyswap.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return keyswap.Int(i), nil
		}
		var u uint64
		if err := n.Decode(&u); err != nil {
			return nil, err
		}
		return keyswap.Number(strconv.FormatUint(u, 10)), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return keyswap.Opaque{V: f}, nil
		}
		return keyswap.Float(f), nil
	case "!!str":
		return keyswap.String(n.Value), nil
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return keyswap.Opaque{V: v}, nil
	}
}

func toNode(v keyswap.Value) (*yaml.Node, error) {
	switch tv := v.(type) {
	case nil, keyswap.Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case keyswap.Bool:
		return scalar(bool(tv))
	case keyswap.Number:
		if i, err := tv.Int64(); err == nil {
			return scalar(i)
		}
		if u, err := strconv.ParseUint(string(tv), 10, 64); err == nil {
			return scalar(u)
		}
		f, err := tv.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number literal %q", string(tv))
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return scalar(f)
		}
		// Written from the literal: yaml.v3 prints 1.0 as 1, which reads back as an int.
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: string(tv)}, nil
	case keyswap.String:
		return scalar(string(tv))
	case keyswap.Array:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, elem := range tv {
			child, err := toNode(elem)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, child)
		}
		return seq, nil
	case *keyswap.Object:
		mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		var err error
		tv.Range(func(k string, elem keyswap.Value) bool {
			var keyNode, valNode *yaml.Node
			if keyNode, err = scalar(k); err != nil {
				return false
			}
			if valNode, err = toNode(elem); err != nil {
				return false
			}
			mapping.Content = append(mapping.Content, keyNode, valNode)
			return true
		})
		if err != nil {
			return nil, err
		}
		return mapping, nil
	case keyswap.Opaque:
		return scalar(tv.V)
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedNode, v)
}

// scalar lets yaml.v3 pick the tag and quoting for a Go value, so strings
// such as "true" or "123" stay strings.
func scalar(v any) (*yaml.Node, error) {
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return &n, nil
}
