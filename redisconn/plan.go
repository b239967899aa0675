package redisconn

import (
	"sync"

	"github.com/edwingeng/deque/v2"

	"github.com/icinga/icingadb-redis/resp"
)

type action int

const (
	actionIgnore action = iota
	actionDeliver
	actionDeliverBulk
)

// planEntry is the FutureResponseAction run-length record of spec §3: "the
// next amount replies are to be routed this way."
type planEntry struct {
	action action
	amount int
}

// entryQueue is a small FIFO of planEntry that additionally supports
// incrementing the trailing entry's amount in place — the coalescing rule
// of spec §3/§4.9 needs tail access that a pure push/pop deque interface
// doesn't expose, so the plan itself (unlike the waiter queues below) is
// kept on a plain growable slice with a head index (the tail is the end of
// the slice).
type entryQueue struct {
	items []planEntry
	head  int
}

func (q *entryQueue) len() int { return len(q.items) - q.head }

func (q *entryQueue) pushBack(e planEntry) {
	q.items = append(q.items, e)
}

func (q *entryQueue) back() *planEntry {
	if q.len() == 0 {
		return nil
	}
	return &q.items[len(q.items)-1]
}

func (q *entryQueue) popFront() planEntry {
	e := q.items[q.head]
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	} else if q.head > 64 && q.head*2 > len(q.items) {
		q.items = append(q.items[:0], q.items[q.head:]...)
		q.head = 0
	}
	return e
}

// responsePlan is the Writer→Reader handoff: a run-length queue of routing
// instructions, plus the two waiter FIFOs it stays aligned with (I3). The
// Writer is the only producer, the Reader the only consumer; both sides
// take mu, so the invariants hold even though (unlike the C++ source's
// single-threaded strand) Writer and Reader are separate goroutines here.
type responsePlan struct {
	mu            sync.Mutex
	entries       entryQueue
	singleWaiters *deque.Deque[Completion[resp.Reply]]
	bulkWaiters   *deque.Deque[Completion[resp.Replies]]
	pending       *event
}

func newResponsePlan(pending *event) *responsePlan {
	return &responsePlan{
		singleWaiters: deque.NewDeque[Completion[resp.Reply]](),
		bulkWaiters:   deque.NewDeque[Completion[resp.Replies]](),
		pending:       pending,
	}
}

// recordIgnore coalesces amount into the trailing Ignore entry, or appends
// a fresh one (spec §3: "consecutive Ignore records coalesce").
func (p *responsePlan) recordIgnore(amount int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.coalesce(actionIgnore, amount)
	p.pending.Set()
}

// recordDeliver appends completion to the single-reply waiter queue and
// coalesces one unit into the trailing Deliver entry (spec §3/§4.5).
func (p *responsePlan) recordDeliver(completion Completion[resp.Reply]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.singleWaiters.PushFront(completion)
	p.coalesce(actionDeliver, 1)
	p.pending.Set()
}

// recordDeliverBulk appends completion to the bulk-reply waiter queue and a
// fresh DeliverBulk entry — these never coalesce (spec §3: "one record per
// AwaitMany").
func (p *responsePlan) recordDeliverBulk(completion Completion[resp.Replies], amount int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bulkWaiters.PushFront(completion)
	p.entries.pushBack(planEntry{action: actionDeliverBulk, amount: amount})
	p.pending.Set()
}

// coalesce must be called with mu held.
func (p *responsePlan) coalesce(a action, amount int) {
	if back := p.entries.back(); back != nil && back.action == a {
		back.amount += amount
		return
	}
	p.entries.pushBack(planEntry{action: a, amount: amount})
}

// next pops the head plan entry, or reports empty.
func (p *responsePlan) next() (planEntry, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.entries.len() == 0 {
		return planEntry{}, false
	}
	return p.entries.popFront(), true
}

func (p *responsePlan) popSingleWaiter() Completion[resp.Reply] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.singleWaiters.PopBack()
}

func (p *responsePlan) popBulkWaiter() Completion[resp.Replies] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bulkWaiters.PopBack()
}

// drain fails every pending waiter with err and empties the plan, leaving
// it ready for the next connection generation (spec §4.7, I5).
func (p *responsePlan) drain(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.singleWaiters.Len() > 0 {
		p.singleWaiters.PopBack().fulfill(emptyReply, err)
	}
	for p.bulkWaiters.Len() > 0 {
		p.bulkWaiters.PopBack().fulfill(nil, err)
	}
	p.entries = entryQueue{}
}
