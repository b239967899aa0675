package redisconn

import "github.com/joomcode/errorx"

// Error taxonomy, per spec §7. Protocol is registered as a subtype of
// Transport so errorx.IsOfType(err, Transport) is true for both — a
// malformed RESP reply is treated as a transport failure for reconnect
// purposes, while errorx.IsOfType(err, Protocol) still lets a caller tell
// the two apart.
var (
	namespace = errorx.NewNamespace("redisconn")

	// Transport marks a socket connect/read/write failure (§7).
	Transport = namespace.NewType("transport")
	// Protocol marks an undecodable RESP reply (§7); a Transport subtype.
	Protocol = Transport.NewSubtype("protocol")
	// Shutdown marks a submission made after the connection was closed (§7).
	Shutdown = namespace.NewType("shutdown")

	propAddr  = errorx.RegisterProperty("addr")
	propQuery = errorx.RegisterProperty("query")
)

func transportError(addr string, cause error) error {
	return Transport.Wrap(cause, "transport error").WithProperty(propAddr, addr)
}

func protocolError(addr string, cause error) error {
	return Protocol.Wrap(cause, "protocol error").WithProperty(propAddr, addr)
}

func shutdownError(addr string) error {
	return Shutdown.New("connection is closed").WithProperty(propAddr, addr)
}

// withQuery annotates a Transport/Protocol error with the query that was
// in flight when it happened, for a caller's own logging — the property
// carries the same truncated rendering as the Notice-level submission log
// (spec §4.3, scenario 6) rather than a raw, possibly huge, argument dump.
func withQuery(err error, q Query) error {
	if ex, ok := err.(*errorx.Error); ok {
		return ex.WithProperty(propQuery, renderQuery(q))
	}
	return err
}
