package redisconn

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/icinga/icingadb-redis/resp"
)

// connectorLoop implements spec §4.7: dial, optionally AUTH/SELECT, mark
// connected, invoke OnConnected, then idle until a fault (observed by
// Writer or Reader) re-arms it. It is the only place that calls Set on
// c.connected, and the only place that dials.
func (c *Connection) connectorLoop(ctx context.Context) {
	defer c.wg.Done()
	for {
		if ctx.Err() != nil {
			return
		}
		c.connectWithRetry(ctx)
		if ctx.Err() != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-c.needConnect:
		}
	}
}

func (c *Connection) connectWithRetry(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		c.opts.Logger.Report(LogConnecting, c, nil, "connecting to redis")

		s, err := c.handshake(ctx)
		if err == nil {
			c.opts.Logger.Report(LogConnected, c, nil, "connected to redis")

			// OnConnected runs before c.cur is published, so Writer/Reader
			// stay blocked in currentStream for the whole callback — the
			// same inline, before-Reader/Writer-proceed ordering as the
			// source's m_ConnectedCallback(yc). Anything OnConnected
			// itself enqueues through FireOne/FireMany is queued like any
			// other submission: it goes out in the usual priority order,
			// behind items already queued at the same priority while
			// disconnected.
			if c.opts.OnConnected != nil {
				c.opts.OnConnected(ctx, c)
			}

			c.mu.Lock()
			c.cur = s
			c.mu.Unlock()
			c.connected.Set()
			return
		}

		c.opts.Logger.Report(LogConnectFailed, c, logrus.Fields{"error": err}, "failed to connect to redis")

		select {
		case <-ctx.Done():
			return
		case <-time.After(c.opts.ReconnectPause):
		}
	}
}

// handshake dials and, per spec §4.7(a), issues AUTH/SELECT above all user
// traffic before the connection is considered usable — these go straight
// over the wire rather than through the priority queues, exactly as the
// Connector in the C++ source does in its own coroutine.
func (c *Connection) handshake(ctx context.Context) (*stream, error) {
	s, err := dial(ctx, c.opts)
	if err != nil {
		return nil, err
	}
	if c.opts.Password != "" {
		if err := c.handshakeRequest(s, resp.StringQuery("AUTH", c.opts.Password)); err != nil {
			s.close()
			return nil, err
		}
	}
	if c.opts.DB != 0 {
		if err := c.handshakeRequest(s, resp.StringQuery("SELECT", strconv.Itoa(c.opts.DB))); err != nil {
			s.close()
			return nil, err
		}
	}
	return s, nil
}

func (c *Connection) handshakeRequest(s *stream, q Query) error {
	s.armDeadline(c.opts.IOTimeout)
	buf := resp.AppendQuery(nil, q)
	if _, err := s.w.Write(buf); err != nil {
		return err
	}
	if err := s.w.Flush(); err != nil {
		return err
	}
	reply, err := resp.DecodeReply(s.r)
	if err != nil {
		return err
	}
	if reply.IsError() {
		return errors.New(reply.String())
	}
	return nil
}

// currentStream blocks until a connected stream is available, or ctx is
// done. Writer and Reader both call this before touching the socket.
func (c *Connection) currentStream(ctx context.Context) (*stream, bool) {
	for {
		c.mu.Lock()
		s := c.cur
		c.mu.Unlock()
		if s != nil {
			return s, true
		}
		select {
		case <-c.connected.Wait():
		case <-ctx.Done():
			return nil, false
		}
	}
}

// fault tears down stream s (if it is still the current one — Writer and
// Reader can both fault on the same generation, and only the first should
// act) and re-arms the connector. Per spec §4.7/I5, everything in-flight —
// the response plan and both waiter queues — is failed with a
// TransportError; items still sitting unsent in the priority queues are
// left alone; they are retried once the new connection is up (§1: "survive
// transient transport failures... without loss of future work").
func (c *Connection) fault(s *stream, cause error) {
	c.mu.Lock()
	if c.cur != s {
		c.mu.Unlock()
		return
	}
	c.cur = nil
	c.mu.Unlock()

	c.connected.Clear()
	s.close()

	err := wrapIOError(c.Addr(), cause)
	c.plan.drain(err)
	c.opts.Logger.Report(LogDisconnected, c, logrus.Fields{"error": cause}, "redis connection broken")

	select {
	case c.needConnect <- struct{}{}:
	default:
	}
}

func wrapIOError(addr string, err error) error {
	if isProtocolErr(err) {
		return protocolError(addr, err)
	}
	return transportError(addr, err)
}

func isProtocolErr(err error) bool {
	switch err {
	case resp.ErrHeaderlineTooLarge, resp.ErrHeaderlineEmpty, resp.ErrIntegerParsing,
		resp.ErrNoFinalCRLF, resp.ErrUnknownHeaderType:
		return true
	default:
		return false
	}
}
