package transport

import (
	"bytes"
	"sync"
)

// MockPort implements Port with configurable behaviour for testing.
// Reads drain a scripted buffer and return (0, nil) when it is empty,
// matching the non-blocking contract of ports opened through Open.
type MockPort struct {
	mu sync.Mutex

	// ReadBuffer holds data to be returned by Read calls.
	ReadBuffer *bytes.Buffer

	// WriteBuffer captures data written to the port.
	WriteBuffer *bytes.Buffer

	// ReadError is returned by the next Read call if set.
	ReadError error

	// WriteError is returned by the next Write call if set.
	WriteError error

	// ReadCalls records the number of Read calls.
	ReadCalls int

	// DrainCalls records the number of Drain calls.
	DrainCalls int
}

// NewMockPort creates a new MockPort.
func NewMockPort() *MockPort {
	return &MockPort{
		ReadBuffer:  bytes.NewBuffer(nil),
		WriteBuffer: bytes.NewBuffer(nil),
	}
}

// Read reads from the read buffer, returning 0 bytes when it is empty.
func (m *MockPort) Read(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ReadCalls++

	if m.ReadError != nil {
		err := m.ReadError
		m.ReadError = nil
		return 0, err
	}

	if m.ReadBuffer.Len() == 0 {
		return 0, nil
	}
	return m.ReadBuffer.Read(p)
}

// Write appends to the write buffer.
func (m *MockPort) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.WriteError != nil {
		err := m.WriteError
		m.WriteError = nil
		return 0, err
	}
	return m.WriteBuffer.Write(p)
}

// Drain records the call and returns immediately.
func (m *MockPort) Drain() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DrainCalls++
	return nil
}

// AddReadData appends data to be returned by subsequent Read calls.
func (m *MockPort) AddReadData(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ReadBuffer.Write(data)
}

// WrittenData returns all data written to the port.
func (m *MockPort) WrittenData() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]byte(nil), m.WriteBuffer.Bytes()...)
}

// Reset clears both buffers and all recorded state.
func (m *MockPort) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ReadBuffer.Reset()
	m.WriteBuffer.Reset()
	m.ReadCalls = 0
	m.DrainCalls = 0
	m.ReadError = nil
	m.WriteError = nil
}
