package utils

import "sync"

// BytePool is a pool of reusable byte slices for encoding frames before hashing.
var BytePool = sync.Pool{
	New: func() interface{} {
		s := make([]byte, 0, 256)
		return &s
	},
}

// GetBytes retrieves an empty byte slice from the pool.
func GetBytes() *[]byte {
	b := BytePool.Get().(*[]byte)
	*b = (*b)[:0]
	return b
}

// PutBytes returns a byte slice to the pool.
func PutBytes(b *[]byte) {
	BytePool.Put(b)
}
