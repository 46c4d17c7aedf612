package fuzzy

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

var magic = []byte("SIDX")

// EncodeAll & DecodeAll are safe for concurrent use
var (
	encoder = mustEncoder()
	decoder = mustDecoder()
)

func mustEncoder() *zstd.Encoder {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		panic(fmt.Sprintf("zstd encoder: %v", err))
	}
	return enc
}

func mustDecoder() *zstd.Decoder {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		panic(fmt.Sprintf("zstd decoder: %v", err))
	}
	return dec
}

// Encode serializes idx as "SIDX" followed by the zstd compressed msgpack form of the index.
// equal indexes always encode to equal bytes.
func Encode(idx *Index) ([]byte, error) {
	raw, err := msgpack.Marshal(idx)
	if err != nil {
		return nil, fmt.Errorf("marshal index: %w", err)
	}
	out := make([]byte, 0, len(magic)+len(raw)/2)
	out = append(out, magic...)
	return encoder.EncodeAll(raw, out), nil
}

// Decode parses an index written by Encode and validates it.
func Decode(blob []byte) (*Index, error) {
	if !bytes.HasPrefix(blob, magic) {
		return nil, fmt.Errorf("%w: missing index header", ErrCorruptIndex)
	}
	raw, err := decoder.DecodeAll(blob[len(magic):], nil)
	if err != nil {
		return nil, fmt.Errorf("%w: decompress: %v", ErrCorruptIndex, err)
	}

	idx := &Index{}
	if err := msgpack.Unmarshal(raw, idx); err != nil {
		return nil, fmt.Errorf("%w: unmarshal: %v", ErrCorruptIndex, err)
	}
	if err := idx.Validate(); err != nil {
		return nil, err
	}
	return idx, nil
}
