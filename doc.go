/*
Package icingadbredis is an implicitly-pipelined, priority-aware Redis
connector built for a monitoring pipeline that streams state changes to
Redis continuously and under highly variable load.

https://redis.io/topics/pipelining

A single persistent connection is shared by every caller: one goroutine
(the Writer) drains a set of priority queues onto the wire, another (the
Reader) decodes replies back off it in the same order, and a third (the
Connector) keeps the pair alive across transient network failures. Callers
never manage the socket themselves and never block each other — they
either fire a query without waiting for its reply, or submit it and block
only their own goroutine until that reply (or a failure) arrives.

Unlike a connection-pool client, this one is unconditionally implicit: as
concurrent callers submit work, their queries interleave on the wire
automatically, without explicit batching.

Priority

Five fixed priority classes are scanned in order on every write — Heartbeat,
Config, State, History, CheckResult — so that bulk, latency-insensitive
traffic (history inserts, for example) never delays a heartbeat or a
config update queued behind it. A priority can be suppressed and later
un-suppressed; queries submitted while suppressed still queue, they are
just skipped by the scan until re-enabled.

Structure

  - root package: doc only
  - resp: the wire codec (request encoding, reply decoding)
  - redisconn: the connection actor — priority queues, the Writer/Reader
    pair, the reconnect state machine, and the four submission entry
    points (FireOne, FireMany, AwaitOne, AwaitMany)
  - internal/fakeredis: a hermetic in-process RESP server used by
    redisconn's own tests

Errors

Submission failures are always returned as a single *errorx.Error
hierarchy (package redisconn): Transport for socket failures, Protocol
(a Transport subtype) for undecodable replies, and Shutdown for
submissions made after the connection was closed. A RESP error reply from
Redis itself is not one of these — it is delivered as an ordinary
resp.Reply with Reply.IsError() true, exactly like any other reply.
*/
package icingadbredis
