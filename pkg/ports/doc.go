/*
Package ports defines the driven ports (interfaces) for the enform engine.

These interfaces decouple the engine from external implementations, letting
the snapshot layer work with in-memory, filesystem or Redis backends.

# Key Interfaces

  - SnapshotStore: persists step-scoped JSON snapshots.
  - Scheduler: defers work to the next available tick (selection mirroring).
*/
package ports
