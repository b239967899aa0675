package resp_test

import (
	"bufio"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/icinga/icingadb-redis/resp"
)

func decode(t *testing.T, wire string) resp.Reply {
	t.Helper()
	r, err := resp.DecodeReply(bufio.NewReader(strings.NewReader(wire)))
	require.NoError(t, err)
	return r
}

func TestDecodeSimpleString(t *testing.T) {
	r := decode(t, "+PONG\r\n")
	require.Equal(t, resp.SimpleString("PONG"), r)
}

func TestDecodeError(t *testing.T) {
	r := decode(t, "-ERR wrong number of arguments for 'get' command\r\n")
	require.True(t, r.IsError())
	require.Equal(t, "ERR wrong number of arguments for 'get' command", string(r.Str))
}

func TestDecodeInteger(t *testing.T) {
	require.Equal(t, resp.Integer(3), decode(t, ":3\r\n"))
	require.Equal(t, resp.Integer(-7), decode(t, ":-7\r\n"))
}

func TestDecodeBulkString(t *testing.T) {
	r := decode(t, "$5\r\nhello\r\n")
	require.Equal(t, []byte("hello"), r.Bulk)
	require.False(t, r.Null)
}

func TestDecodeBulkStringEmpty(t *testing.T) {
	r := decode(t, "$0\r\n\r\n")
	require.Equal(t, []byte{}, r.Bulk)
	require.False(t, r.Null)
}

func TestDecodeBulkStringNull(t *testing.T) {
	r := decode(t, "$-1\r\n")
	require.True(t, r.Null)
	require.Equal(t, resp.KindBulkString, r.Kind)
}

func TestDecodeArrayNull(t *testing.T) {
	r := decode(t, "*-1\r\n")
	require.True(t, r.Null)
	require.Equal(t, resp.KindArray, r.Kind)
}

func TestDecodeArrayNested(t *testing.T) {
	r := decode(t, "*2\r\n:1\r\n*1\r\n+ok\r\n")
	require.Len(t, r.Array, 2)
	require.Equal(t, resp.Integer(1), r.Array[0])
	require.Equal(t, resp.KindArray, r.Array[1].Kind)
	require.Equal(t, resp.SimpleString("ok"), r.Array[1].Array[0])
}

func TestDecodeUnknownHeader(t *testing.T) {
	_, err := resp.DecodeReply(bufio.NewReader(strings.NewReader("!nope\r\n")))
	require.ErrorIs(t, err, resp.ErrUnknownHeaderType)
}

func TestDecodeBadInteger(t *testing.T) {
	_, err := resp.DecodeReply(bufio.NewReader(strings.NewReader(":not-a-number\r\n")))
	require.ErrorIs(t, err, resp.ErrIntegerParsing)
}

func TestDecodeMissingTrailingCRLF(t *testing.T) {
	_, err := resp.DecodeReply(bufio.NewReader(strings.NewReader("$5\r\nhelloXX")))
	require.ErrorIs(t, err, resp.ErrNoFinalCRLF)
}

func TestRoundTrip(t *testing.T) {
	q := resp.StringQuery("SET", "counter", "1")
	wire := resp.AppendQuery(nil, q)
	echoed := "$" + strconv.Itoa(len(wire)) + "\r\n" + string(wire) + "\r\n"
	r := decode(t, echoed)
	require.Equal(t, wire, r.Bulk)
}
