package redisconn

import (
	"context"

	"github.com/icinga/icingadb-redis/resp"
)

// readerLoop is the Reader task of spec §4.6: pull the next plan entry and
// decode exactly as many replies as it names, routing them per its action.
// Like the Writer, it idles on readsPending and blocks on currentStream
// while disconnected.
func (c *Connection) readerLoop(ctx context.Context) {
	defer c.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.readsPending.Wait():
		}
		for {
			if ctx.Err() != nil {
				return
			}
			entry, ok := c.plan.next()
			if !ok {
				// See writerLoop's matching comment: re-check once after
				// Clear to close the race against a concurrent recordX's
				// Set landing between the check above and this Clear.
				c.readsPending.Clear()
				entry, ok = c.plan.next()
				if !ok {
					break
				}
			}
			s, ok := c.currentStream(ctx)
			if !ok {
				return
			}
			if err := c.consume(s, entry); err != nil {
				c.fault(s, err)
				break
			}
		}
	}
}

// consume decodes entry.amount replies from s and routes them per
// entry.action. A decode error is always treated as fatal to the
// connection, for Deliver/DeliverBulk as well as Ignore — a deliberate
// extension past §4.6's literal per-unit-continuation wording for the
// former two, recorded in DESIGN.md's "Open Questions resolved": RESP
// framing has no resync point, so a malformed reply here means every
// subsequent byte on the stream is misaligned too, and continuing to route
// replies to the remaining waiters risks handing one of them a reply meant
// for another. consume fulfils whatever waiter is at hand with the error
// and returns it to force a reconnect; waiters not yet reached are left for
// responsePlan.drain to fail.
func (c *Connection) consume(s *stream, entry planEntry) error {
	switch entry.action {
	case actionIgnore:
		for i := 0; i < entry.amount; i++ {
			s.armDeadline(c.opts.IOTimeout)
			if _, err := resp.DecodeReply(s.r); err != nil {
				c.opts.Logger.Report(LogDiscardedReplyFailed, c, nil, "failed to decode fire-and-forget reply")
				return err
			}
		}
		return nil

	case actionDeliver:
		for i := 0; i < entry.amount; i++ {
			waiter := c.plan.popSingleWaiter()
			s.armDeadline(c.opts.IOTimeout)
			reply, err := resp.DecodeReply(s.r)
			if err != nil {
				waiter.fulfill(emptyReply, wrapIOError(c.Addr(), err))
				return err
			}
			waiter.fulfill(reply, nil)
		}
		return nil

	case actionDeliverBulk:
		waiter := c.plan.popBulkWaiter()
		replies := make(resp.Replies, 0, entry.amount)
		for i := 0; i < entry.amount; i++ {
			s.armDeadline(c.opts.IOTimeout)
			reply, err := resp.DecodeReply(s.r)
			if err != nil {
				waiter.fulfill(nil, wrapIOError(c.Addr(), err))
				return err
			}
			replies = append(replies, reply)
		}
		waiter.fulfill(replies, nil)
		return nil
	}
	return nil
}
