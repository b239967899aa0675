package resp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/icinga/icingadb-redis/resp"
)

func TestAppendQuery(t *testing.T) {
	q := resp.StringQuery("SET", "k", "v")
	buf := resp.AppendQuery(nil, q)
	require.Equal(t, "*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$1\r\nv\r\n", string(buf))
}

func TestAppendQueryEmptyArgument(t *testing.T) {
	q := resp.Query{[]byte("GET"), []byte("")}
	buf := resp.AppendQuery(nil, q)
	require.Equal(t, "*2\r\n$3\r\nGET\r\n$0\r\n\r\n", string(buf))
}

func TestAppendQueryEmptyArray(t *testing.T) {
	buf := resp.AppendQuery(nil, resp.Query{})
	require.Equal(t, "*0\r\n", string(buf))
}

func TestAppendQueryLargeArgument(t *testing.T) {
	big := make([]byte, 1<<20)
	for i := range big {
		big[i] = 'x'
	}
	q := resp.Query{[]byte("SET"), []byte("k"), big}
	buf := resp.AppendQuery(nil, q)
	prefix := "*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$1048576\r\n"
	require.True(t, len(buf) > len(prefix))
	require.Equal(t, prefix, string(buf[:len(prefix)]))
	require.Equal(t, "\r\n", string(buf[len(buf)-2:]))
	require.Equal(t, len(prefix)+len(big)+2, len(buf))
}
