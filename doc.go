/*
Package cadence is the presentation-layer core of a program-management
application: a finite step-sequence wizard engine and a record aggregator that
groups session records into calendar buckets.

# Concept

Two independent pieces do the real work:

  - pkg/wizard: an ordered, non-empty list of steps with a clamped cursor.
    Each step carries the controls (Next, Back, Finish) its host should show.
  - pkg/aggregate: turns a date-keyed snapshot of raw records into enriched,
    render-ready buckets. The two relationship hops it follows are only known
    at runtime, from object metadata.

Hosts (pkg/schedule, pkg/sessions) wire them to data sources through the
interfaces in pkg/ports. Adapters for memory, files, Loam, Redis, HTTP and MCP
live under pkg/adapters.

# Usage

	catalog, err := cadence.NewCatalog("./steps")
	if err != nil {
		log.Fatal(err)
	}

	seq, err := cadence.NewSequence(ctx, catalog, domain.LifecycleHooks{})
	if err != nil {
		log.Fatal(err)
	}

	seq.Next()
	fmt.Println(seq.Current().Label)
*/
package cadence
