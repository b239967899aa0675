package resp_test

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/icinga/icingadb-redis/resp"
)

func TestAppendReplySimpleString(t *testing.T) {
	buf := resp.AppendReply(nil, resp.SimpleString("OK"))
	require.Equal(t, "+OK\r\n", string(buf))
}

func TestAppendReplyError(t *testing.T) {
	buf := resp.AppendReply(nil, resp.Error("ERR boom"))
	require.Equal(t, "-ERR boom\r\n", string(buf))
}

func TestAppendReplyInteger(t *testing.T) {
	buf := resp.AppendReply(nil, resp.Integer(-7))
	require.Equal(t, ":-7\r\n", string(buf))
}

func TestAppendReplyBulkString(t *testing.T) {
	buf := resp.AppendReply(nil, resp.BulkString([]byte("hi")))
	require.Equal(t, "$2\r\nhi\r\n", string(buf))
}

func TestAppendReplyNullBulkString(t *testing.T) {
	buf := resp.AppendReply(nil, resp.NullBulkString())
	require.Equal(t, "$-1\r\n", string(buf))
}

func TestAppendReplyNullArray(t *testing.T) {
	buf := resp.AppendReply(nil, resp.NullArray())
	require.Equal(t, "*-1\r\n", string(buf))
}

func TestAppendReplyArrayNested(t *testing.T) {
	r := resp.Array([]resp.Reply{resp.Integer(1), resp.BulkString([]byte("a"))})
	buf := resp.AppendReply(nil, r)
	require.Equal(t, "*2\r\n:1\r\n$1\r\na\r\n", string(buf))
}

// AppendReply must invert DecodeReply exactly, since internal/fakeredis
// relies on that round trip to answer client requests.
func TestAppendReplyRoundTrip(t *testing.T) {
	r := resp.Array([]resp.Reply{
		resp.SimpleString("OK"),
		resp.Integer(42),
		resp.NullBulkString(),
		resp.Array([]resp.Reply{resp.BulkString([]byte("nested"))}),
	})
	wire := resp.AppendReply(nil, r)
	got, err := resp.DecodeReply(bufio.NewReader(strings.NewReader(string(wire))))
	require.NoError(t, err)
	require.Equal(t, r, got)
}
