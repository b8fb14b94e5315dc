package adb

import (
	"sync"

	"github.com/kvnxiao/aim/adb/wire"
)

// DefaultPoolSize bounds the free list of an unconfigured pool.
const DefaultPoolSize = 4

/*
ConnectionPool keeps a bounded free list of idle server connections so a
caller can skip a dial. It is opt-in: nothing else in this package (the
property fan-out included) dials through it.

A connection is owned by exactly one caller between Acquire and Release.
Connections that have been switched into sync mode or handed over to a
streaming shell consume the socket; they must never be released back (the
high-level Device methods already respect this by closing such connections
themselves). The mutex is held only around list push/pop, never across
I/O.
*/
type ConnectionPool struct {
	server server
	max    int

	mu   sync.Mutex
	free []*wire.Conn
}

func NewConnectionPool(client *Adb, size int) *ConnectionPool {
	if size <= 0 {
		size = DefaultPoolSize
	}
	return &ConnectionPool{server: client.server, max: size}
}

// Acquire returns an idle connection or dials a new one.
func (p *ConnectionPool) Acquire() (*wire.Conn, error) {
	p.mu.Lock()
	if n := len(p.free); n > 0 {
		conn := p.free[n-1]
		p.free = p.free[:n-1]
		p.mu.Unlock()
		return conn, nil
	}
	p.mu.Unlock()

	return p.server.Dial()
}

// Release returns conn to the free list, or closes it if the pool is full.
func (p *ConnectionPool) Release(conn *wire.Conn) {
	p.mu.Lock()
	if len(p.free) < p.max {
		p.free = append(p.free, conn)
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	conn.Close()
}

// Clear drops all idle connections.
func (p *ConnectionPool) Clear() {
	p.mu.Lock()
	free := p.free
	p.free = nil
	p.mu.Unlock()

	for _, conn := range free {
		conn.Close()
	}
}
