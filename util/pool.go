package util

import "sync"

// LineBufSize is the standard buffer size for reading protocol lines
// (32 KiB, far above any well-formed request).
const LineBufSize = 32 * 1024

// LinePool provides reusable byte buffers for per-session line
// scanners, reducing GC pressure when many short-lived connections
// come and go.
var LinePool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, LineBufSize)
		return &buf
	},
}

// GetLineBuf retrieves a buffer from the pool.  Callers must return it
// with [PutLineBuf] when finished.
func GetLineBuf() *[]byte {
	return LinePool.Get().(*[]byte)
}

// PutLineBuf returns a buffer to the pool for reuse.
func PutLineBuf(buf *[]byte) {
	if buf == nil {
		return
	}
	LinePool.Put(buf)
}
