/*
Package sessions hosts the recent-sessions view. It collects the two
metadata descriptors and the raw session records, in whatever order they
arrive, and keeps the latest bucket list for display.

	view := sessions.NewView(sessions.WithSources(backend, backend))
	if err := view.Refresh(ctx); err != nil {
		return err
	}
	for _, b := range view.Buckets() {
		fmt.Println(b.Key, b.TotalLabel)
	}
*/
package sessions
