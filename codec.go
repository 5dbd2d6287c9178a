package keyswap

// Codec provides content-type aware marshaling of Values.
// Implementations must keep object key order on both decode and encode.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v Value) ([]byte, error)

	// Unmarshal decodes data into a Value.
	Unmarshal(data []byte) (Value, error)
}
