/*
Package memory provides a self-contained in-process implementation of the
store.Conn interface for testing.

The store keeps several logical databases so Move can be exercised, enforces
per-key datatype kinds the way the remote store does (operations against a
key of the wrong kind fail with a type mismatch), expires keys lazily on
access, and supports the blocking list pops with real blocking semantics.

It is intended for unit tests and examples; it makes no attempt at
persistence or eviction.
*/
package memory
