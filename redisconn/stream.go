package redisconn

import (
	"bufio"
	"context"
	"net"
	"time"
)

// stream is one connection generation: the raw socket plus buffered
// reader/writer the Writer and Reader tasks operate on (spec §4.2). A new
// stream is built by the connector on every successful (re)connect.
type stream struct {
	conn net.Conn
	r    *bufio.Reader
	w    *bufio.Writer
}

// dial opens the configured endpoint: a unix socket if Path is non-empty,
// TCP otherwise (spec §4.2/§6 — "Selection by whether path is non-empty").
func dial(ctx context.Context, opts Opts) (*stream, error) {
	network, address := "tcp", opts.addr()
	if opts.Path != "" {
		network, address = "unix", opts.Path
	}
	var d net.Dialer
	conn, err := d.DialContext(ctx, network, address)
	if err != nil {
		return nil, err
	}
	return &stream{
		conn: conn,
		r:    bufio.NewReaderSize(conn, 64*1024),
		w:    bufio.NewWriterSize(conn, 64*1024),
	}, nil
}

func (s *stream) close() error {
	return s.conn.Close()
}

// armDeadline bounds the next read/write on s; timeout <= 0 disables it,
// matching teacher's Opts.IOTimeout negative-to-disable convention.
func (s *stream) armDeadline(timeout time.Duration) {
	if timeout <= 0 {
		s.conn.SetDeadline(time.Time{})
		return
	}
	s.conn.SetDeadline(time.Now().Add(timeout))
}
