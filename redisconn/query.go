package redisconn

import (
	"bytes"
	"strconv"

	"github.com/icinga/icingadb-redis/resp"
)

// Query and Queries are re-exported from resp: the wire codec already owns
// the argv shape, and the actor adds nothing to it beyond logging.
type Query = resp.Query
type Queries = resp.Queries

const (
	logArgLimit    = 7  // render at most this many arguments (original_source LogQuery: `++i == 8` breaks before the 8th)
	logArgTrimSize = 64 // each rendered argument is truncated to this many bytes, "..." included
)

// renderQuery produces the truncated, human-readable rendering of a query
// used for Notice-level submission logging (spec §4.3, scenario 6). It
// reproduces original_source/redisconnection.cpp's LogQuery exactly: the
// first logArgLimit arguments are shown, each capped to logArgTrimSize
// bytes (the last three of which are "..." when the argument was longer),
// and an omission marker follows if the query had more arguments left.
func renderQuery(q Query) string {
	var b bytes.Buffer
	shown := len(q)
	truncated := false
	if shown > logArgLimit {
		shown = logArgLimit
		truncated = true
	}
	for i := 0; i < shown; i++ {
		b.WriteByte(' ')
		b.WriteByte('\'')
		b.Write(trimArg(q[i]))
		b.WriteByte('\'')
	}
	if truncated {
		b.WriteString(" ...")
	}
	return b.String()
}

func trimArg(arg []byte) []byte {
	if len(arg) <= logArgTrimSize {
		return arg
	}
	return append(append([]byte{}, arg[:logArgTrimSize-3]...), '.', '.', '.')
}

func renderQueries(qs Queries) string {
	var b bytes.Buffer
	b.WriteString(strconv.Itoa(len(qs)))
	b.WriteString(" queries:")
	for _, q := range qs {
		b.WriteString(renderQuery(q))
		b.WriteByte(';')
	}
	return b.String()
}
