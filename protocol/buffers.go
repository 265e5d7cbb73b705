package protocol

import "sync"

// FifoBuffer is a byte ring between a receive path and the tick loop.
// Capacity is rounded up to a power of two so indexing is a mask, and
// head/tail run free so every slot is usable.
type FifoBuffer struct {
	buf  []byte
	mask uint32
	head uint32 // next read
	tail uint32 // next write
}

// NewFifoBuffer creates a FIFO holding at least capacity bytes
func NewFifoBuffer(capacity int) *FifoBuffer {
	size := uint32(1)
	for int(size) < capacity {
		size <<= 1
	}
	return &FifoBuffer{
		buf:  make([]byte, size),
		mask: size - 1,
	}
}

// Cap returns the number of bytes the FIFO can hold
func (f *FifoBuffer) Cap() int {
	return len(f.buf)
}

// Write queues as much of data as fits and returns the count
func (f *FifoBuffer) Write(data []byte) int {
	n := 0
	for _, b := range data {
		if f.tail-f.head == uint32(len(f.buf)) {
			break
		}
		f.buf[f.tail&f.mask] = b
		f.tail++
		n++
	}
	return n
}

// TryReadByte pops one byte without blocking
func (f *FifoBuffer) TryReadByte() (byte, bool) {
	if f.head == f.tail {
		return 0, false
	}
	b := f.buf[f.head&f.mask]
	f.head++
	return b, true
}

// Available returns the number of queued bytes
func (f *FifoBuffer) Available() int {
	return int(f.tail - f.head)
}

// Reset drops everything queued
func (f *FifoBuffer) Reset() {
	f.head, f.tail = 0, 0
}

// SyncFifo is a FifoBuffer that one goroutine fills while the tick loop
// drains it. TryReadByte never waits on the writer for longer than a copy.
type SyncFifo struct {
	mu   sync.Mutex
	fifo *FifoBuffer
}

// NewSyncFifo creates a SyncFifo holding at least capacity bytes
func NewSyncFifo(capacity int) *SyncFifo {
	return &SyncFifo{fifo: NewFifoBuffer(capacity)}
}

// Write appends as much of data as fits and reports how much that was
func (s *SyncFifo) Write(data []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fifo.Write(data), nil
}

// TryReadByte pops one byte without blocking
func (s *SyncFifo) TryReadByte() (byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fifo.TryReadByte()
}

// Available returns the number of queued bytes
func (s *SyncFifo) Available() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fifo.Available()
}
