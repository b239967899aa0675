package redisconn

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/icinga/icingadb-redis/resp"
)

// writerLoop is the Writer task of spec §4.5: pull the highest-priority
// pending item, write its frame(s), record how the Reader must route the
// reply(s), repeat. It idles on writesPending between bursts and blocks on
// currentStream whenever the connection is down, resuming exactly where it
// left off once the connector re-arms it.
func (c *Connection) writerLoop(ctx context.Context) {
	defer c.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.writesPending.Wait():
		}
		for {
			if ctx.Err() != nil {
				return
			}
			item, _, ok := c.queues.next()
			if !ok {
				// Clear races with a concurrent push's Set: a push between
				// the check above and this Clear would otherwise have its
				// wakeup silently swallowed. Re-check once after clearing —
				// if something snuck in, we either see it here or the
				// racing push's Set (which strictly follows its append)
				// still lands and wakes the outer select.
				c.writesPending.Clear()
				item, _, ok = c.queues.next()
				if !ok {
					break
				}
			}
			s, ok := c.currentStream(ctx)
			if !ok {
				// item is already out of the queues, so Close's
				// closeAndDrain cannot reach it; fail its waiter here.
				switch it := item.(type) {
				case awaitOneItem:
					it.completion.fulfill(emptyReply, shutdownError(c.Addr()))
				case awaitManyItem:
					it.completion.fulfill(nil, shutdownError(c.Addr()))
				}
				return
			}
			if err := c.emit(s, item); err != nil {
				c.fault(s, err)
				break
			}
		}
	}
}

// emit writes item's frame(s) to s and records the corresponding plan
// entry. On a write error it reports/fulfils as appropriate and returns
// the error so the caller tears the connection down (spec §4.5's REDESIGN:
// a FireMany that fails partway forces an immediate reconnect rather than
// leaving the stream's framing in an inconsistent state for whichever
// error eventually surfaces on the read side).
func (c *Connection) emit(s *stream, item writeItem) error {
	switch it := item.(type) {
	case fireOneItem:
		if err := c.writeQuery(s, it.query); err != nil {
			c.opts.Logger.Report(LogFireAndForgetFailed, c, logrus.Fields{
				"query": renderQuery(it.query), "error": err,
			}, "fire-and-forget write failed")
			return err
		}
		c.plan.recordIgnore(1)
		return nil

	case fireManyItem:
		for _, q := range it.batch {
			if err := c.writeQuery(s, q); err != nil {
				c.opts.Logger.Report(LogFireAndForgetFailed, c, logrus.Fields{
					"query": renderQuery(q), "error": err,
				}, "fire-and-forget batch write failed")
				return err
			}
		}
		c.plan.recordIgnore(len(it.batch))
		return nil

	case awaitOneItem:
		if err := c.writeQuery(s, it.query); err != nil {
			it.completion.fulfill(emptyReply, withQuery(wrapIOError(c.Addr(), err), it.query))
			return err
		}
		c.plan.recordDeliver(it.completion)
		return nil

	case awaitManyItem:
		for _, q := range it.batch {
			if err := c.writeQuery(s, q); err != nil {
				it.completion.fulfill(nil, withQuery(wrapIOError(c.Addr(), err), q))
				return err
			}
		}
		c.plan.recordDeliverBulk(it.completion, len(it.batch))
		return nil
	}
	return nil
}

func (c *Connection) writeQuery(s *stream, q Query) error {
	s.armDeadline(c.opts.IOTimeout)
	buf := resp.AppendQuery(nil, q)
	if _, err := s.w.Write(buf); err != nil {
		return err
	}
	return s.w.Flush()
}
