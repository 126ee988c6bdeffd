package badger

import (
	"encoding/binary"

	"github.com/poiesic/profindex/core"
)

const embeddingCachePrefix = "embcache:"

// makeEmbeddingKey generates a key for a cached vector.
// Format: prefix + 8 byte big-endian content key
func makeEmbeddingKey(key core.ID) []byte {
	buf := make([]byte, len(embeddingCachePrefix)+8)
	offset := copy(buf, embeddingCachePrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(key))
	return buf
}
