package redisconn

import (
	"context"
	"fmt"
	"time"
)

// Opts configures a Connection (spec §6). Either Host/Port or Path select
// the transport; Password/DB drive the handshake the connector performs on
// every successful (re)connect.
type Opts struct {
	// Host, Port address a TCP endpoint; used when Path is empty.
	Host string
	Port uint16
	// Path, if non-empty, selects a unix-domain socket and overrides Host/Port.
	Path string

	// Password, if set, is sent as AUTH on every (re)connect; a failure is
	// fatal for that connection attempt (the reconnect loop then retries).
	Password string
	// DB, if non-zero, is sent as SELECT on every (re)connect.
	DB int

	// OnConnected, if set, is invoked on the connector's own goroutine after
	// a successful connect/auth/select, before Writer/Reader are released
	// to make progress (spec §4.7, and original_source's inline,
	// synchronous callback ordering — see SPEC_FULL.md). Anything it
	// submits through conn's FireOne/FireMany is queued like any other
	// submission, in the usual priority order and behind items already
	// queued at the same priority; it must not AwaitOne/AwaitMany on
	// conn itself, though, since Writer/Reader haven't been released yet
	// and the call would block forever waiting for its own completion.
	OnConnected func(ctx context.Context, conn *Connection)

	// ReconnectPause is the fixed back-off between failed connect attempts.
	// Zero means the spec's reference default of 5 seconds.
	ReconnectPause time.Duration

	// IOTimeout bounds every individual socket read/write (handshake
	// included). Zero disables it — the reference default from teacher's
	// Opts.IOTimeout doesn't apply here because pipelines idle between
	// bursts are normal, not a hang, and there is no caller-side
	// cancellation to race against (spec §5).
	IOTimeout time.Duration

	// Logger receives every observability event (spec §6). Nil means a
	// logrus-backed default.
	Logger Logger
}

func (o Opts) addr() string {
	if o.Path != "" {
		return o.Path
	}
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}

func (o Opts) withDefaults() Opts {
	if o.ReconnectPause == 0 {
		o.ReconnectPause = defaultReconnectPause
	}
	if o.Logger == nil {
		o.Logger = defaultLogger
	}
	return o
}
