// Package bufferpool provides pooled byte buffers.
package bufferpool

import "github.com/valyala/bytebufferpool"

var pool bytebufferpool.Pool

// Get returns an empty buffer from the pool.
func Get() *bytebufferpool.ByteBuffer {
	return pool.Get()
}

// Put returns a buffer to the pool.
func Put(b *bytebufferpool.ByteBuffer) {
	pool.Put(b)
}
