// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

/*
Package wal is the write-behind layer between sessions and storage.

Every durable mutation (favorite saved or removed, credit balance changed)
goes through a Writer. The Writer tries the store immediately. When the store
reports storage.ErrStorageUnavailable, the mutation is appended to a Queue and
the caller receives an error wrapping both ErrQueued and the storage error; the
in-memory state the caller already changed stays valid.

# Ordering

Entries are replayed in FIFO order per user. While a user has pending entries,
new writes for that user are queued behind them instead of being applied
directly, so a replay can never overwrite a newer value with an older one.

# Retry

RetryLoop replays the queue every RetryInterval with exponential backoff per
entry (InitialBackoff * 2^attempts, capped at MaxBackoff). Entries are never
dropped: past MaxRetries they keep retrying at MaxBackoff and every failure is
logged at error level.

# Queues

  - MemoryQueue: lost on restart; used with the memory storage backend
  - BadgerQueue: stored under the "wal:" prefix of the storage BadgerDB and
    replayed after a restart

Compactor periodically runs BadgerDB value log GC on the shared database.
*/
package wal
