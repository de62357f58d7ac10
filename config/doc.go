/*
Package config loads declarative factory policies from YAML.

A policy file names one creation policy per factory: key namespacing,
expiry (relative or absolute), an index set and a creation counter.

	factories:
	  sessions:
	    namespace: app:sessions
	    expire_after: 30m
	    index_key: app:sessions:all
	  jobs:
	    namespace: app:jobs
	    counter_key: app:jobs:created
	    expire_at: 2026-12-31T23:59:59Z

Policy.Factory builds one configured Factory; File.Registry builds the
whole named-factory registry in one call.
*/
package config
