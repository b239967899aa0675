package redisconn

import "github.com/sirupsen/logrus"

// LogKind enumerates the events §6 requires observability for, plus the
// connect-lifecycle events a reconnecting actor needs to surface. Query
// acceptance is logged at Notice, connection attempts/success at
// Information, and connect/write/decode failures at Critical — logrus has
// no Notice level of its own, so Notice and Information both map onto
// InfoLevel with a "severity" field distinguishing them.
type LogKind int

const (
	LogQueryAccepted LogKind = iota
	LogConnecting
	LogConnected
	LogConnectFailed
	LogDisconnected
	LogFireAndForgetFailed
	LogDiscardedReplyFailed
	LogContextClosed
)

// Logger receives every event a Connection emits. Implementations must be
// safe to call from the actor's own goroutines; the default logs through
// logrus.
type Logger interface {
	Report(event LogKind, conn *Connection, fields logrus.Fields, msg string)
}

// NoopLogger discards every event; use it to silence the connection
// entirely (e.g. under test).
type NoopLogger struct{}

func (NoopLogger) Report(LogKind, *Connection, logrus.Fields, string) {}

type logrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger adapts an existing *logrus.Logger into a Logger (nil
// means logrus's standard logger), so the embedding service's own log sink is reused rather
// than a second one being stood up.
func NewLogrusLogger(log *logrus.Logger) Logger {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return logrusLogger{entry: logrus.NewEntry(log)}
}

func (l logrusLogger) Report(event LogKind, conn *Connection, fields logrus.Fields, msg string) {
	entry := l.entry.WithField("addr", conn.Addr())
	if fields != nil {
		entry = entry.WithFields(fields)
	}
	switch event {
	case LogQueryAccepted:
		entry.WithField("severity", "notice").Info(msg)
	case LogConnecting, LogConnected:
		entry.WithField("severity", "information").Info(msg)
	case LogConnectFailed, LogDisconnected, LogFireAndForgetFailed, LogDiscardedReplyFailed:
		entry.WithField("severity", "critical").Error(msg)
	case LogContextClosed:
		entry.WithField("severity", "information").Info(msg)
	default:
		entry.Warn(msg)
	}
}

var defaultLogger Logger = NewLogrusLogger(nil)
