package enform_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/enform"
	"github.com/aretw0/enform/pkg/ports"
	"github.com/aretw0/enform/pkg/schema"
	"github.com/aretw0/enform/pkg/wizard"
)

// Example demonstrates a minimal two-step flow: one validated screen and a
// terminal confirmation.
func Example() {
	eng, err := enform.New(enform.WithSteps([]wizard.Step{
		{
			ID:          "identity",
			Addr:        "/identity",
			SnapshotKey: wizard.KeyIdentity,
			Schemas:     []*schema.Schema{schema.IdentityDocument()},
		},
		{ID: "confirm", Addr: "/confirm", Terminal: true},
	}))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	eng.Start(ctx)
	fmt.Println("phase:", eng.Phase())

	// A blocked forward reveals every outstanding error.
	if _, err := eng.Forward(ctx); err != nil {
		fmt.Println("blocked with", len(eng.VisibleErrors()), "errors")
	}

	eng.SetField(ctx, "documentType", "passport")
	eng.SetField(ctx, "documentNumber", "12345678")
	fmt.Println("phase:", eng.Phase())

	addr, _ := eng.Forward(ctx)
	fmt.Println("next:", addr)

	// Output:
	// phase: gated
	// blocked with 2 errors
	// phase: ready
	// next: /confirm
}

// ExampleEngine_Toggle demonstrates the plan-selection board. A synchronous
// scheduler makes the render mirror converge immediately.
func ExampleEngine_Toggle() {
	eng, err := enform.New(
		enform.WithScheduler(ports.SchedulerFunc(func(fn func()) { fn() })),
	)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	eng.Start(ctx)

	eng.Toggle(ctx, "plan", "economy", false)
	eng.Toggle(ctx, "plan", "premium", false) // single-choice: replaces
	eng.Toggle(ctx, "riders", "cancer", true)
	eng.Toggle(ctx, "riders", "hospital", true)
	eng.Toggle(ctx, "riders", "cancer", true) // multi-choice: flips off

	fmt.Println("plan:", eng.Selected("plan"))
	fmt.Println("riders:", eng.Selected("riders"))

	// Output:
	// plan: [premium]
	// riders: [hospital]
}
