/*
Package domain contains the core value types shared by the cadence engines.

It defines the wizard vocabulary (Steps and their Navigation affordances), the
record vocabulary used by the aggregation pipeline (Records, Snapshots,
Buckets) and the object metadata descriptors that tell the aggregator which
relationship keys to follow. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - Step: One position in a wizard, with its label and Navigation.
  - Navigation: Which controls (Next/Back/Finish) a step exposes.
  - Record: A flat key/value record as delivered by the record source.
  - Snapshot: Records grouped by date key, in delivery order.
  - Bucket: A render-ready group of EnrichedRecords.
  - ObjectInfo: Metadata describing an object and its relationship fields.
*/
package domain
