/*
Package wizard provides the step-sequence engine behind multi-step data-entry wizards.

A wizard is declared once with the fluent Builder and finalized into a Sequence.
After Build the shape of the sequence is fixed: callers can only move the cursor
with Next, Back and Restart, and read the Current step to decide which controls
to show. Moving past either end is a silent no-op, never an error. Whether a
move is allowed (for example, blocking Next until a form validates) is the
host's decision, expressed by simply not calling Next.

Example usage:

	seq, err := wizard.New().
		AddStep("New Schedule", wizard.Nav().Next().Build()).
		AddStep("Review Sessions", wizard.Nav().Next().Back().Build()).
		AddStep("Review Schedule", wizard.Nav().
			Next("Save & New", domain.VariantNeutral).
			Back().
			Finish("Save").
			Build()).
		Build()
	if err != nil {
		log.Fatal(err)
	}

	seq.Next()
	fmt.Println(seq.Current().Label) // Review Sessions
*/
package wizard
