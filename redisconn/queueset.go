package redisconn

import (
	"sync"

	"github.com/edwingeng/deque/v2"

	"github.com/icinga/icingadb-redis/resp"
)

var emptyReply = resp.Reply{}

// queueSet is the priority queue set of spec §4.4: one FIFO per Priority,
// plus the suppression set. FIFOs are backed by edwingeng/deque (as in
// jsp-lqk/metapipe-memcached's pipelined TCP client, which matches
// in-flight requests against a streamed decoder the same way this actor
// does) — push on the front, pop from the back, same as that client.
type queueSet struct {
	mu         sync.Mutex
	queues     [priorityCount]*deque.Deque[writeItem]
	suppressed [priorityCount]bool
	closed     bool
	pending    *event
}

func newQueueSet(pending *event) *queueSet {
	qs := &queueSet{pending: pending}
	for p := range qs.queues {
		qs.queues[p] = deque.NewDeque[writeItem]()
	}
	return qs
}

// push appends item to priority p's FIFO and wakes the Writer, unless the
// set has already been closed, in which case it reports false and leaves
// item untouched so the caller can fail it the same way closeAndDrain fails
// everything already queued. Checking closed and appending under the same
// mu that closeAndDrain takes is what makes "submit after Close" race-free
// (spec §7, I5): a push can never land in a queue closeAndDrain has already
// emptied and that nobody will ever pop again. Items for a suppressed
// priority still accumulate (spec §3, Suppression set) — they just aren't
// picked until the priority is unsuppressed.
func (qs *queueSet) push(p Priority, item writeItem) bool {
	qs.mu.Lock()
	if qs.closed {
		qs.mu.Unlock()
		return false
	}
	qs.queues[p].PushFront(item)
	qs.mu.Unlock()
	qs.pending.Set()
	return true
}

// next scans from Heartbeat toward CheckResult and pops the front item of
// the first non-empty, non-suppressed queue it finds (spec §4.4). A
// suppressed queue is skipped even if non-empty, exactly as if it were
// empty — it never blocks the scan from reaching lower-priority items.
func (qs *queueSet) next() (writeItem, Priority, bool) {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	for p := Priority(0); p < priorityCount; p++ {
		if qs.suppressed[p] {
			continue
		}
		q := qs.queues[p]
		if q.Len() == 0 {
			continue
		}
		return q.PopBack(), p, true
	}
	return nil, 0, false
}

func (qs *queueSet) suppress(p Priority) {
	qs.mu.Lock()
	qs.suppressed[p] = true
	qs.mu.Unlock()
}

// unsuppress re-enables p and wakes the Writer, since previously-queued
// items for p may now be eligible (spec §4.3).
func (qs *queueSet) unsuppress(p Priority) {
	qs.mu.Lock()
	qs.suppressed[p] = false
	qs.mu.Unlock()
	qs.pending.Set()
}

// closeAndDrain marks the set closed — every push from here on fails — and
// empties every priority queue under that same lock, failing each pending
// Await* item's Completion with err and reporting each fire-and-forget item
// via onFireAndForget (they have no waiter to inform). Only ever called
// from Close (spec §4.7, I5); a mid-connection fault leaves these queues
// alone so unsent work survives into the next connection generation.
func (qs *queueSet) closeAndDrain(err error, onFireAndForget func(items []writeItem)) {
	qs.mu.Lock()
	qs.closed = true
	var dropped []writeItem
	for p := range qs.queues {
		q := qs.queues[p]
		for q.Len() > 0 {
			item := q.PopBack()
			switch it := item.(type) {
			case awaitOneItem:
				it.completion.fulfill(emptyReply, err)
			case awaitManyItem:
				it.completion.fulfill(nil, err)
			default:
				dropped = append(dropped, item)
			}
		}
	}
	qs.mu.Unlock()
	if len(dropped) > 0 && onFireAndForget != nil {
		onFireAndForget(dropped)
	}
}
