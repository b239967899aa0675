package redisconn

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/icinga/icingadb-redis/resp"
)

func TestQueueSetPriorityScan(t *testing.T) {
	qs := newQueueSet(newEvent())
	qs.push(History, fireOneItem{query: resp.StringQuery("LOW")})
	qs.push(Heartbeat, fireOneItem{query: resp.StringQuery("HIGH")})

	item, p, ok := qs.next()
	require.True(t, ok)
	require.Equal(t, Heartbeat, p)
	require.Equal(t, resp.StringQuery("HIGH"), item.(fireOneItem).query)

	item, p, ok = qs.next()
	require.True(t, ok)
	require.Equal(t, History, p)
	require.Equal(t, resp.StringQuery("LOW"), item.(fireOneItem).query)

	_, _, ok = qs.next()
	require.False(t, ok)
}

func TestQueueSetSuppressionSkipsQueue(t *testing.T) {
	qs := newQueueSet(newEvent())
	qs.push(Heartbeat, fireOneItem{query: resp.StringQuery("A")})
	qs.push(History, fireOneItem{query: resp.StringQuery("B")})

	qs.suppress(Heartbeat)

	item, p, ok := qs.next()
	require.True(t, ok)
	require.Equal(t, History, p)
	require.Equal(t, resp.StringQuery("B"), item.(fireOneItem).query)

	qs.unsuppress(Heartbeat)
	item, p, ok = qs.next()
	require.True(t, ok)
	require.Equal(t, Heartbeat, p)
	require.Equal(t, resp.StringQuery("A"), item.(fireOneItem).query)
}

func TestQueueSetCloseAndDrainFailsWaitersAndReportsFireAndForget(t *testing.T) {
	qs := newQueueSet(newEvent())

	completion := newCompletion[resp.Reply]()
	qs.push(State, awaitOneItem{query: resp.StringQuery("GET", "k"), completion: completion})
	qs.push(History, fireOneItem{query: resp.StringQuery("SET", "k", "v")})

	cause := errors.New("boom")
	var dropped []writeItem
	qs.closeAndDrain(cause, func(items []writeItem) { dropped = items })

	_, err := completion.Wait()
	require.ErrorIs(t, err, cause)
	require.Len(t, dropped, 1)

	_, _, ok := qs.next()
	require.False(t, ok)
}

func TestQueueSetPushAfterCloseIsRejected(t *testing.T) {
	qs := newQueueSet(newEvent())
	qs.closeAndDrain(errors.New("closed"), nil)

	ok := qs.push(Heartbeat, fireOneItem{query: resp.StringQuery("PING")})
	require.False(t, ok)

	_, _, ok = qs.next()
	require.False(t, ok)
}
