/*
Package enform is a sequential data-collection wizard engine for insurance
enrollment flows.

It combines a per-field validation engine (pkg/schema + pkg/validate), a
persisted snapshot store keyed per step (pkg/snapshot over pkg/ports
backends), a touched/visibility tracker, a navigation gate (pkg/wizard) and
a dual-store selection synchronizer for the plan screen (pkg/selection).

# Concept

Each step of the flow owns a flat string record validated against one or
more schemas. Validation errors are recomputed wholesale on every mutation;
which of them the host should display is a separate concern tracked per
field, with a sticky reveal-all once a forward attempt is rejected. Records
persist as partial updates merged over the step's last-known snapshot, so a
step never clobbers keys written by another screen sharing its blob.

# Usage

Initialize the Engine and drive it from any host (CLI, HTTP):

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/enform"
	)

	func main() {
		eng, err := enform.New()
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		eng.Start(ctx)

		if err := eng.SetField(ctx, "surname", "山田"); err != nil {
			log.Fatal(err)
		}
		if addr, err := eng.Forward(ctx); err == nil {
			log.Printf("next: %s", addr)
		}
	}

The Engine in this package wires the sub-packages together behind a small
API; they remain usable on their own.
*/
package enform
