/*
Package observability turns wizard and aggregation lifecycle events into
structured logs and Prometheus metrics.

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := observability.Hooks(metrics, logger)

	seq, _ := wizard.New().AddStep("One", nav).Hooks(hooks).Build()
	agg := aggregate.New(aggregate.WithHooks(hooks))
*/
package observability
