package redisconn

import "time"

// Priority is the small, dense, compile-time-known enumeration of spec §3.
// Lower ordinal means higher priority; the Writer always scans from
// Heartbeat toward CheckResult (§4.4).
type Priority int

const (
	Heartbeat Priority = iota
	Config
	State
	History
	CheckResult

	priorityCount
)

func (p Priority) String() string {
	switch p {
	case Heartbeat:
		return "heartbeat"
	case Config:
		return "config"
	case State:
		return "state"
	case History:
		return "history"
	case CheckResult:
		return "check-result"
	default:
		return "unknown"
	}
}

const defaultReconnectPause = 5 * time.Second
