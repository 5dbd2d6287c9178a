package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/keyswap"
	"github.com/zoobzio/keyswap/bson"
	"github.com/zoobzio/keyswap/json"
	"github.com/zoobzio/keyswap/msgpack"
	kstest "github.com/zoobzio/keyswap/testing"
	"github.com/zoobzio/keyswap/yaml"
)

func codecs() []keyswap.Codec {
	return []keyswap.Codec{json.New(), yaml.New(), msgpack.New(), bson.New()}
}

func TestProcessor_RoundTrip_AllCodecs(t *testing.T) {
	for _, codec := range codecs() {
		for method, opts := range kstest.AllMethods() {
			t.Run(codec.ContentType()+"/"+string(method), func(t *testing.T) {
				dict := kstest.MustBuild(t, kstest.SampleKeys(), opts...)
				proc, err := keyswap.NewProcessor(codec, dict)
				require.NoError(t, err)

				original := kstest.SampleDocument()
				data, err := codec.Marshal(original)
				require.NoError(t, err)

				tokenized, err := proc.Tokenize(context.Background(), data)
				require.NoError(t, err)

				compact, err := codec.Unmarshal(tokenized)
				require.NoError(t, err)
				nameToken, _ := dict.Token("name")
				assert.True(t, compact.(*keyswap.Object).Has(nameToken), "tokenized payload should use %q", nameToken)
				assert.False(t, compact.(*keyswap.Object).Has("name"))

				restored, err := proc.Detokenize(context.Background(), tokenized)
				require.NoError(t, err)

				back, err := codec.Unmarshal(restored)
				require.NoError(t, err)
				assert.True(t, keyswap.Equal(back, original), "round-trip mismatch: %v", keyswap.ToAny(back))
				assert.Equal(t, original.Keys(), back.(*keyswap.Object).Keys())
			})
		}
	}
}

func TestProcessor_JSON_ExactBytes(t *testing.T) {
	dict := kstest.MustBuild(t, kstest.SampleKeys())
	proc, err := keyswap.NewProcessor(json.New(), dict)
	require.NoError(t, err)

	tokenized, err := proc.Tokenize(context.Background(), []byte(kstest.SampleJSON))
	require.NoError(t, err)
	assert.Equal(t,
		`{"a":"u-1","b":"Ada","c":"ada@example.com","d":true,"e":{"f":"12 St James's Square","g":"London"},`+
			`"h":["math","poetry"],"i":[{"a":"u-2","b":"Charles","score":9.5}]}`,
		string(tokenized))

	restored, err := proc.Detokenize(context.Background(), tokenized)
	require.NoError(t, err)
	assert.Equal(t, kstest.SampleJSON, string(restored))
	assert.Less(t, len(tokenized), len(kstest.SampleJSON))
}

func TestProcessor_RejectsPoisonedInput(t *testing.T) {
	dict := kstest.MustBuild(t, kstest.SampleKeys())

	for _, codec := range codecs() {
		t.Run(codec.ContentType(), func(t *testing.T) {
			proc, err := keyswap.NewProcessor(codec, dict)
			require.NoError(t, err)

			data, err := codec.Marshal(kstest.PoisonedDocument())
			require.NoError(t, err)

			_, err = proc.Tokenize(context.Background(), data)
			require.ErrorIs(t, err, keyswap.ErrStructuralValidation)
			require.ErrorIs(t, err, keyswap.ErrUnsafeKey)

			var structErr *keyswap.StructuralError
			require.ErrorAs(t, err, &structErr)
			assert.Equal(t, "root.home.__proto__", structErr.Path)
		})
	}
}

func TestUse_StructKeys(t *testing.T) {
	keyswap.Reset()
	t.Cleanup(keyswap.Reset)

	dict, err := keyswap.BuildFor[kstest.Account](keyswap.WithMethod(keyswap.MethodBase64))
	require.NoError(t, err)

	proc, err := keyswap.Use(msgpack.New(), dict)
	require.NoError(t, err)

	again, err := keyswap.Use(msgpack.New(), dict)
	require.NoError(t, err)
	assert.Same(t, proc, again)

	data, err := msgpack.New().Marshal(kstest.SampleDocument())
	require.NoError(t, err)

	tokenized, err := proc.Tokenize(context.Background(), data)
	require.NoError(t, err)
	restored, err := proc.Detokenize(context.Background(), tokenized)
	require.NoError(t, err)
	assert.Equal(t, data, restored)
}

func TestProcessor_CodecMismatch(t *testing.T) {
	dict := kstest.MustBuild(t, kstest.SampleKeys())
	proc, err := keyswap.NewProcessor(json.New(), dict)
	require.NoError(t, err)

	data, err := msgpack.New().Marshal(kstest.SampleDocument())
	require.NoError(t, err)

	_, err = proc.Tokenize(context.Background(), data)
	require.ErrorIs(t, err, keyswap.ErrUnmarshal)
}
