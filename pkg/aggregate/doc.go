/*
Package aggregate turns raw, date-grouped records into render-ready buckets.

The Aggregator is configured once with the relationship names resolved from
object metadata (see Gate) and then processes snapshots. Every call to Process
returns a brand new slice; nothing is retained between calls, so a host can
swap its displayed buckets wholesale on each delivery.

Per record the aggregator:

  - deep-copies the record, leaving the caller's data untouched;
  - flags it Complete when the status field is exactly "Complete";
  - flags HasPrimaryProvider when the primary provider key is present;
  - follows two relationship hops (session -> schedule -> service) to read the
    service Name.

Per bucket it computes the summary label ("1 Session" / "3 Sessions") and
whether the bucket starts open, which is decided by comparing the bucket's
day-of-month with today's day-of-month only.
*/
package aggregate
