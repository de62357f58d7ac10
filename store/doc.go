/*
Package store defines the boundary between the datatype facades and the
remote key-value store.

The Conn interface enumerates the primitive commands the facades are built
from: keyspace management, scalar strings, sets, sorted sets, hashes and
lists, plus the blocking list pops. The Pipe interface batches a sequence of
commands into one round trip; batched commands execute in submission order
and their results come back in that same order, but the batch carries no
cross-command atomicity guarantee.

Two implementations ship with the library:

  - store/redisconn adapts a Redis server through go-redis
  - store/memory is a self-contained in-process store used by the unit tests

A Conn is shared read/write by every facade and factory referencing it and
must itself be safe for concurrent use.
*/
package store
