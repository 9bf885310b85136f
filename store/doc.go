// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the authority over the decision collection.

Store exposes create, get, list, and apply plus one named method per
mutation (CastVote, AddReaction, AddOptionComment, AddDiscussionMessage,
Finalize). Every write is a read-modify-write through Apply:

 1. take the per-decision lock
 2. load the current snapshot from the Repository
 3. run a pure decision.Mutation against it
 4. bump Version and save with compare-and-set on the old version

A rejected mutation persists nothing. Writers in one process never conflict
because of the lock; writers in separate processes sharing a database can
lose the compare-and-set, which surfaces as ErrConflict. The store does not
retry on its own; IsRetryable tells callers which errors are worth retrying.

# Repositories

  - MemoryRepository: in-process map, used by tests and the "memory" backend
  - db.SQLRepository: sqlite or Postgres
  - redisstore.Repository: Redis with WATCH/MULTI
*/
package store
