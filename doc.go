/*
Package redisnatives exposes Redis collections as native Go datatypes.

Each facade in the datatypes subpackage (Primitive, Set, OrderedSet, Hash,
List, Sequence) is a thin local handle over one remote key: nothing is
cached client-side, every operation is one or a few round trips, and the
remote value is always the source of truth.

This root package adds the creation layer on top of the facades:

  - Factory mints facades through a fixed hook pipeline. Before-create
    hooks rewrite the proposed key (namespacing, suffixing); after-create
    hooks act on the freshly created entity (expiry, membership indexing,
    creation counting).
  - Registry holds named Factory configurations so one process can keep
    several creation policies side by side.

Basic Usage:

	conn, _ := redisconn.FromEnv()

	factory, _ := redisnatives.New(conn, redisnatives.Config{
		Before: []redisnatives.BeforeCreate{
			redisnatives.Namespaced("sessions", ":"),
		},
		After: []redisnatives.AfterCreate{
			redisnatives.Temporary(30 * time.Minute),
		},
	})

	// Creates key "sessions:abc" and schedules its expiry.
	session, _ := factory.Hash(ctx, "abc", nil)

The store subpackage defines the command boundary; store/redisconn backs
it with a real Redis server and store/memory backs it in-process for
tests.

For more information, see the documentation at https://github.com/suparena/redisnatives
*/
package redisnatives
