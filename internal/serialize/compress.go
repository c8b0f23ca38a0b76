// Package serialize provides ZStandard compression for criteria tokens.
package serialize

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// MaxDecodedSize bounds the decompressed size of a token. Tokens come from
// clients, so a decoder must not be allowed to inflate arbitrary input.
const MaxDecodedSize = 1 << 20

// Compressor compresses token payloads.
// Create once and reuse; Compress is safe for concurrent use.
type Compressor struct {
	encoder *zstd.Encoder
}

// NewCompressor creates a compressor tuned for small payloads.
func NewCompressor() (*Compressor, error) {
	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
		zstd.WithEncoderCRC(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	return &Compressor{encoder: encoder}, nil
}

// Compress returns the zstd frame for data.
func (c *Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}
	return c.encoder.EncodeAll(data, make([]byte, 0, len(data))), nil
}

// Close releases encoder resources.
func (c *Compressor) Close() error {
	if c.encoder != nil {
		return c.encoder.Close()
	}
	return nil
}

// Decompressor decompresses token payloads.
// Create once and reuse; Decompress is safe for concurrent use.
type Decompressor struct {
	decoder *zstd.Decoder
}

// NewDecompressor creates a decompressor limited to MaxDecodedSize.
func NewDecompressor() (*Decompressor, error) {
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxDecodedSize))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &Decompressor{decoder: decoder}, nil
}

// Decompress returns the payload of a zstd frame.
func (d *Decompressor) Decompress(compressed []byte) ([]byte, error) {
	if len(compressed) == 0 {
		return []byte{}, nil
	}
	data, err := d.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	return data, nil
}

// Close releases decoder resources.
func (d *Decompressor) Close() {
	if d.decoder != nil {
		d.decoder.Close()
	}
}
