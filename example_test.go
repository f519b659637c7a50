package cadence_test

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/cadence/pkg/aggregate"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/wizard"
)

func Example_wizard() {
	seq, err := wizard.New().
		AddStep("Details", wizard.Nav().Next().Build()).
		AddStep("Confirm", wizard.Nav().Back().Finish("Save").Build()).
		Build()
	if err != nil {
		panic(err)
	}

	seq.Back() // no-op on the first step
	fmt.Println(seq.Current().Label)
	seq.Next()
	fmt.Println(seq.Current().Label, seq.Current().Nav.FinishLabel)
	seq.Next() // no-op on the last step
	fmt.Println(seq.Index())

	// Output:
	// Details
	// Confirm Save
	// 1
}

func Example_aggregate() {
	agg := aggregate.New(
		aggregate.WithLocation(time.UTC),
		aggregate.WithClock(func() time.Time { return time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC) }),
	)
	if err := agg.Configure(domain.AggregatorConfig{
		ScheduleRelationship: "ServiceSchedule__r",
		ServiceRelationship:  "Service__r",
		Label:                "Session",
		LabelPlural:          "Sessions",
	}); err != nil {
		panic(err)
	}

	session := func(status string) domain.Record {
		return domain.Record{
			"Status__c":          status,
			"ServiceSchedule__r": domain.Record{"Service__r": domain.Record{"Name": "Tutoring"}},
		}
	}

	buckets, err := agg.Process(context.Background(), domain.Snapshot{
		{Key: "2026-10-13", Records: []domain.Record{session("Complete")}},
		{Key: "2026-10-14", Records: []domain.Record{session("Pending"), session("Complete")}},
	})
	if err != nil {
		panic(err)
	}

	for _, b := range buckets {
		fmt.Println(b.Key, b.TotalLabel, b.Open, b.Records[0].ServiceName, b.Records[0].Complete)
	}

	// Output:
	// 2026-10-13 1 Session false Tutoring true
	// 2026-10-14 2 Sessions true Tutoring false
}
