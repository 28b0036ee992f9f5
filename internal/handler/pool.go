package handler

import (
	"bytes"
	"sync"
)

// Response buffer sizing. A game view with a full board and a few active
// tasks encodes to roughly 1KB.
const (
	responseBufferSize   = 1 << 10
	maxPooledBufferBytes = 64 << 10
)

var responseBuffers = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, responseBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return responseBuffers.Get().(*bytes.Buffer)
}

// putBuffer returns buf to the pool unless it grew past maxPooledBufferBytes
func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBufferBytes {
		return
	}
	buf.Reset()
	responseBuffers.Put(buf)
}
