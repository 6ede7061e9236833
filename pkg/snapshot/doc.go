/*
Package snapshot merges partial step updates into persisted snapshots.

The Manager keeps the last-known snapshot per step key in memory, shallow
merges every partial update over it and writes the result back through a
ports.SnapshotStore. Storage failures never surface to the user: reads fall
back to an empty snapshot and failed writes are logged, not retried.
*/
package snapshot
