package resp

import "strconv"

// Query is an ordered sequence of opaque byte-string arguments — the argv of
// one Redis command, first element being the command name (spec §3). It is
// never mutated once submitted.
type Query [][]byte

// Queries is an ordered batch of independent Query values, as submitted by
// FireMany/AwaitMany (spec §3).
type Queries []Query

// StringQuery is a convenience constructor for building a Query out of
// string arguments, the common case when callers aren't already holding
// []byte.
func StringQuery(args ...string) Query {
	q := make(Query, len(args))
	for i, a := range args {
		q[i] = []byte(a)
	}
	return q
}

// AppendQuery appends the RESP encoding of q to buf and returns the
// extended slice, per spec §4.1: "*N\r\n" followed by "$len\r\n<bytes>\r\n"
// for each argument. Arguments are opaque bytes; nothing is escaped.
func AppendQuery(buf []byte, q Query) []byte {
	buf = appendHeader(buf, typeArray, len(q))
	for _, arg := range q {
		buf = appendHeader(buf, typeBulkString, len(arg))
		buf = append(buf, arg...)
		buf = append(buf, crlf...)
	}
	return buf
}

func appendHeader(buf []byte, t byte, n int) []byte {
	buf = append(buf, t)
	buf = strconv.AppendInt(buf, int64(n), 10)
	return append(buf, crlf...)
}
