/*
Package ports defines the driven ports (interfaces) for the cadence engines.

These interfaces decouple the wizard and aggregation cores from external
implementations, allowing the hosts to work with in-memory fixtures, files,
Redis or a remote backend without changes.

# Key Interfaces

  - MetadataSource: Delivers object metadata descriptors.
  - RecordSource: Delivers date-grouped session records.
  - ModelSource / SchedulePersister: Load and save the schedule wizard model.
  - CursorStore: Persists wizard session cursors.
  - StepLoader: Loads step definitions from a catalog.
  - DistributedLocker: Coordinates concurrent access to wizard sessions.
*/
package ports
