package redisconn

import (
	"context"
	"sync"

	"github.com/icinga/icingadb-redis/resp"
)

// Connection is the priority-aware, pipelined, single-socket actor of
// spec §3-§4: three background tasks (Connector, Writer, Reader) sharing a
// priority queue set and a response plan, exposed to callers through four
// thread-safe submission methods. It is built idle by Connect and torn
// down, once, by Close.
type Connection struct {
	opts Opts

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu  sync.Mutex
	cur *stream

	connected     *event
	writesPending *event
	readsPending  *event
	needConnect   chan struct{}

	queues *queueSet
	plan   *responsePlan

	closeOnce sync.Once
}

// Connect constructs a Connection against opts and immediately starts its
// three background tasks; the first connection attempt happens
// asynchronously, so Connect itself never blocks on the network (spec §3:
// "the actor is constructed idle... start is idempotent").
func Connect(ctx context.Context, opts Opts) *Connection {
	opts = opts.withDefaults()
	ctx, cancel := context.WithCancel(ctx)

	c := &Connection{
		opts:          opts,
		ctx:           ctx,
		cancel:        cancel,
		connected:     newEvent(),
		writesPending: newEvent(),
		readsPending:  newEvent(),
		needConnect:   make(chan struct{}, 1),
	}
	c.queues = newQueueSet(c.writesPending)
	c.plan = newResponsePlan(c.readsPending)

	c.wg.Add(3)
	go c.connectorLoop(ctx)
	go c.writerLoop(ctx)
	go c.readerLoop(ctx)

	return c
}

// Addr reports the endpoint this connection dials.
func (c *Connection) Addr() string {
	return c.opts.addr()
}

// ConnectedNow reports whether a stream is currently established. It is a
// snapshot; the state may change concurrently with the caller observing it.
func (c *Connection) ConnectedNow() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur != nil
}

// Close tears the actor down: the connector, writer and reader tasks are
// stopped, the socket (if any) is closed, and every item still sitting in
// the priority queues or the response plan is failed with a Shutdown error
// (spec §7, "submission after shutdown"). Close waits for all three tasks
// to exit before returning and is safe to call more than once. Submission
// methods and Close itself both resolve "is this connection closed" through
// queues.push/closeAndDrain's shared mutex, so a FireOne/AwaitOne/etc. that
// starts concurrently with Close either lands before closeAndDrain (and
// gets failed by it) or is rejected outright — it can never be pushed into
// a queue closeAndDrain has already emptied and that nothing will ever pop
// again (spec §7, I5).
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		c.opts.Logger.Report(LogContextClosed, c, nil, "connection closing")
		c.cancel()

		c.mu.Lock()
		s := c.cur
		c.cur = nil
		c.mu.Unlock()
		if s != nil {
			s.close()
		}

		c.writesPending.Set()
		c.readsPending.Set()

		err := shutdownError(c.Addr())
		c.plan.drain(err)
		c.queues.closeAndDrain(err, func(dropped []writeItem) {
			for _, item := range dropped {
				for _, q := range item.queries() {
					c.opts.Logger.Report(LogFireAndForgetFailed, c, nil, "fire-and-forget query discarded on close: "+renderQuery(q))
				}
			}
		})

		c.wg.Wait()
	})
}

// FireOne submits a single query at priority p without waiting for a
// reply (spec §3's FireOne). The reply, if any, is decoded and discarded.
func (c *Connection) FireOne(p Priority, query Query) error {
	if !c.queues.push(p, fireOneItem{query: query}) {
		return shutdownError(c.Addr())
	}
	c.opts.Logger.Report(LogQueryAccepted, c, nil, "fire:"+renderQuery(query))
	return nil
}

// FireMany submits a batch of queries at priority p without waiting for
// any reply, preserving the batch's relative order on the wire (spec §3's
// FireMany).
func (c *Connection) FireMany(p Priority, batch Queries) error {
	if !c.queues.push(p, fireManyItem{batch: batch}) {
		return shutdownError(c.Addr())
	}
	c.opts.Logger.Report(LogQueryAccepted, c, nil, "fire-many:"+renderQueries(batch))
	return nil
}

// AwaitOne submits query at priority p and blocks until its reply arrives
// or the connection fails it (spec §3's AwaitOne). A RESP error reply is
// returned as a *Reply* value (Reply.IsError() true), never as the Go
// error — the Go error return is reserved for transport/protocol/shutdown
// failures (spec §7, scenario 5).
func (c *Connection) AwaitOne(p Priority, query Query) (resp.Reply, error) {
	completion := newCompletion[resp.Reply]()
	if !c.queues.push(p, awaitOneItem{query: query, completion: completion}) {
		return emptyReply, shutdownError(c.Addr())
	}
	c.opts.Logger.Report(LogQueryAccepted, c, nil, "await:"+renderQuery(query))
	return completion.Wait()
}

// AwaitMany submits batch at priority p as a single pipelined unit and
// blocks until every reply has arrived, in request order, or the batch is
// failed as a whole (spec §3's AwaitMany). An empty batch returns
// immediately with an empty, nil-error result.
func (c *Connection) AwaitMany(p Priority, batch Queries) (resp.Replies, error) {
	if len(batch) == 0 {
		return resp.Replies{}, nil
	}
	completion := newCompletion[resp.Replies]()
	if !c.queues.push(p, awaitManyItem{batch: batch, completion: completion}) {
		return nil, shutdownError(c.Addr())
	}
	c.opts.Logger.Report(LogQueryAccepted, c, nil, "await-many:"+renderQueries(batch))
	return completion.Wait()
}

// Suppress removes priority p from the Writer's scan until Unsuppress is
// called (spec §3/§4.4). Items already queued at p are left in place and
// become eligible again on Unsuppress; suppressing an already-suppressed
// priority is a no-op (original_source's idempotent suppress/unsuppress).
func (c *Connection) Suppress(p Priority) {
	c.queues.suppress(p)
}

// Unsuppress re-enables priority p. It is a no-op if p was not suppressed.
func (c *Connection) Unsuppress(p Priority) {
	c.queues.unsuppress(p)
}
