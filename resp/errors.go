package resp

import "errors"

// Sentinel causes for a decode-time ProtocolError (§4.1). These are wrapped
// by redisconn into an errorx Protocol error; resp itself stays dependency-free
// so it can be reused outside the connection actor (e.g. by the fakeredis test
// server).
var (
	ErrHeaderlineTooLarge = errors.New("resp: header line too large")
	ErrHeaderlineEmpty    = errors.New("resp: empty header line")
	ErrIntegerParsing     = errors.New("resp: malformed integer")
	ErrNoFinalCRLF        = errors.New("resp: missing trailing CRLF")
	ErrUnknownHeaderType  = errors.New("resp: unknown reply header type")
)
