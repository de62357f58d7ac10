/*
Package datatypes exposes remote Redis collections through facades that
behave like native in-process types: Primitive (scalar), Set, OrderedSet,
Hash, List and Sequence.

Every facade is a thin handle around one remote key and a shared store
connection. No remote state is ever cached locally: each read issues a fresh
round trip, so two consecutive calls can observe different states when other
clients mutate the key in between. Operations that issue several commands do
so as one pipelined batch, which fixes their ordering but does not make them
atomic; the affected operations call this out in their documentation.

Facades are usually minted through the factory in the root package, which
layers creation hooks (namespacing, expiry, indexing, counting) on top of
the plain constructors found here.
*/
package datatypes
