package redisconn

import "github.com/icinga/icingadb-redis/resp"

// writeItem is the closed sum of the four WriteQueueItem shapes of spec §3,
// replacing the C++ source's four-optional-pointers record per the design
// note in spec §4.9 ("this also removes the runtime check of which pointer
// is set").
type writeItem interface {
	// queries returns every Query this item carries, in wire order, so the
	// Writer can iterate uniformly regardless of shape.
	queries() []Query
}

type fireOneItem struct {
	query Query
}

func (i fireOneItem) queries() []Query { return []Query{i.query} }

type fireManyItem struct {
	batch Queries
}

func (i fireManyItem) queries() []Query { return i.batch }

type awaitOneItem struct {
	query      Query
	completion Completion[resp.Reply]
}

func (i awaitOneItem) queries() []Query { return []Query{i.query} }

type awaitManyItem struct {
	batch      Queries
	completion Completion[resp.Replies]
}

func (i awaitManyItem) queries() []Query { return i.batch }
