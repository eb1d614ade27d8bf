// Package inmemory provides the process-local [memory.Store] implementation
// used by the relay. Histories live for the lifetime of the process: there is
// no TTL and no eviction, so long-running deployments grow without bound.
// Swap in a database-backed Store when durability or bounded memory matters.
package inmemory
