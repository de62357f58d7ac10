/*
Package redisconn implements the store.Conn boundary against a Redis server
using the go-redis client.

Protocol-level failures are translated into the library's typed errors:
WRONGTYPE replies become type mismatch errors, and the client's nil reply
becomes an absence boolean rather than an error. Connection pooling, retries
and transport concerns are left entirely to go-redis.

The connection can be configured explicitly or from the environment
(REDIS_ADDR, REDIS_PASSWORD, REDIS_DB), with a .env file honored when
present.
*/
package redisconn
