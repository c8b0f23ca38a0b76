package filter

import (
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/hugr-lab/criteria-go/internal/serialize"
)

// Shared zstd codecs; both are safe for concurrent use.
var (
	tokenCompressor   = sync.OnceValues(serialize.NewCompressor)
	tokenDecompressor = sync.OnceValues(serialize.NewDecompressor)
)

// EncodeToken packs criteria into an opaque, URL-safe string suitable for
// saved filters and pagination cursors: base64url(zstd(msgpack)).
func EncodeToken(criteria []Criterion) (string, error) {
	data, err := EncodeCriteria(criteria)
	if err != nil {
		return "", fmt.Errorf("filter: encode token: %w", err)
	}

	c, err := tokenCompressor()
	if err != nil {
		return "", err
	}

	compressed, err := c.Compress(data)
	if err != nil {
		return "", fmt.Errorf("filter: encode token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(compressed), nil
}

// DecodeToken reverses EncodeToken.
func DecodeToken(token string) ([]Criterion, error) {
	compressed, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("filter: malformed token: %w", err)
	}

	d, err := tokenDecompressor()
	if err != nil {
		return nil, err
	}

	data, err := d.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("filter: malformed token: %w", err)
	}
	return DecodeCriteria(data)
}
