package logging

import (
	"errors"
	"net"
	"strings"
	"sync"
	"time"
)

const (
	dialTimeout   = 2 * time.Second
	writeTimeout  = time.Second
	retryInterval = 5 * time.Second
)

// TCPMirror forwards log lines to a Logstash TCP input without ever blocking
// the caller. While the remote end is unreachable, writes are dropped and
// reconnects are rate limited to one attempt per retry window.
type TCPMirror struct {
	addr string

	mu        sync.Mutex
	conn      net.Conn
	nextRetry time.Time
}

func NewTCPMirror(addr string) (*TCPMirror, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("logging: empty address")
	}
	return &TCPMirror{addr: addr}, nil
}

// Write implements io.Writer for use with log.SetOutput via io.MultiWriter.
// It always reports success so a dead Logstash never breaks local logging.
func (w *TCPMirror) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.conn == nil {
		if time.Now().Before(w.nextRetry) {
			return len(p), nil
		}
		conn, err := net.DialTimeout("tcp", w.addr, dialTimeout)
		if err != nil {
			w.nextRetry = time.Now().Add(retryInterval)
			return len(p), nil
		}
		w.conn = conn
	}

	_ = w.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if _, err := w.conn.Write(p); err != nil {
		_ = w.conn.Close()
		w.conn = nil
		w.nextRetry = time.Now().Add(retryInterval)
	}
	return len(p), nil
}

func (w *TCPMirror) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn == nil {
		return nil
	}
	err := w.conn.Close()
	w.conn = nil
	return err
}
