package adb

import (
	"io"
	"strings"
	"sync"

	"github.com/kvnxiao/aim/adb/wire"
	"github.com/kvnxiao/aim/internal/errors"
)

// MockServer implements server, Scanner, and Sender. Safe for concurrent
// use so fan-out code paths can be exercised against it.
type MockServer struct {
	mu sync.Mutex

	// Each time an operation is performed, if this slice is non-empty, the head element
	// of this slice is returned and removed from the slice. If the head is nil, it is removed
	// but not returned.
	Errs []error

	Status string

	// Messages are returned from read calls in order, as raw payloads.
	Messages     []string
	nextMsgIndex int

	// Each message passed to a send call is appended to this slice.
	Requests []string

	// Each time an operation is performed, its name is appended to this slice.
	Trace []string
}

var _ server = &MockServer{}

func (s *MockServer) Dial() (*wire.Conn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logMethod("Dial")
	if err := s.getNextErrToReturn(); err != nil {
		return nil, err
	}
	return wire.NewConn(s, s), nil
}

func (s *MockServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logMethod("Start")
	return nil
}

func (s *MockServer) Kill() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logMethod("Kill")
	return nil
}

func (s *MockServer) Probe() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logMethod("Probe")
	return true
}

func (s *MockServer) Address() string {
	return "127.0.0.1:5037"
}

func (s *MockServer) ReadStatus(req string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logMethod("ReadStatus")
	if err := s.getNextErrToReturn(); err != nil {
		return "", err
	}
	return s.Status, nil
}

func (s *MockServer) ReadMessage() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logMethod("ReadMessage")
	if err := s.getNextErrToReturn(); err != nil {
		return nil, err
	}
	if s.nextMsgIndex >= len(s.Messages) {
		return nil, errors.WrapErrorf(io.EOF, errors.NetworkError, "")
	}

	s.nextMsgIndex++
	return []byte(s.Messages[s.nextMsgIndex-1]), nil
}

func (s *MockServer) ReadUntilEof() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logMethod("ReadUntilEof")
	if err := s.getNextErrToReturn(); err != nil {
		return nil, err
	}

	var data []string
	for ; s.nextMsgIndex < len(s.Messages); s.nextMsgIndex++ {
		data = append(data, s.Messages[s.nextMsgIndex])
	}
	return []byte(strings.Join(data, "")), nil
}

func (s *MockServer) SendMessage(msg []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logMethod("SendMessage")
	if err := s.getNextErrToReturn(); err != nil {
		return err
	}
	s.Requests = append(s.Requests, string(msg))
	return nil
}

func (s *MockServer) NewSyncScanner() wire.SyncScanner {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logMethod("NewSyncScanner")
	return nil
}

func (s *MockServer) NewSyncSender() wire.SyncSender {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logMethod("NewSyncSender")
	return nil
}

func (s *MockServer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logMethod("Close")
	if err := s.getNextErrToReturn(); err != nil {
		return err
	}
	return nil
}

// Callers hold mu.
func (s *MockServer) getNextErrToReturn() (err error) {
	if len(s.Errs) > 0 {
		err = s.Errs[0]
		s.Errs = s.Errs[1:]
	}
	return
}

// Callers hold mu.
func (s *MockServer) logMethod(name string) {
	s.Trace = append(s.Trace, name)
}
