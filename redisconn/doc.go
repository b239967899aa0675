/*
Package redisconn implements a single, priority-aware, pipelined connection
to a Redis server.

A Connection multiplexes an arbitrary number of callers onto one TCP or
unix-socket connection. Callers submit queries through one of four entry
points (FireOne, FireMany, AwaitOne, AwaitMany), tagged with a Priority; a
Writer goroutine drains the highest-priority non-empty queue one item at a
time, and a Reader goroutine matches pipelined replies back to their
waiters in submission order. Connection is thread-safe: none of its
methods require external synchronization, and AwaitOne/AwaitMany may be
called concurrently from any number of goroutines.

On a transport or protocol failure, the connection reconnects on its own; it
never gives up. Pending AwaitOne/AwaitMany calls are failed with a
Transport error when this happens, but items still waiting to be written
are retried once the new connection is up, and the connection itself
remains usable for new submissions.
*/
package redisconn
