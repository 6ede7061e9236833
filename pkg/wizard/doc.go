/*
Package wizard drives the fixed-order enrollment flow.

A Flow owns the per-step runtime: the record being edited, its error map,
the touched tracker and the gate phase. The gate is recomputed from a full
validation pass on every mutation and always reflects true validity;
whether an individual error is shown is a separate concern owned by the
tracker. Forward navigation revalidates, reveals every error on failure,
and persists a submission marker on success. Backward navigation is
unconditional.
*/
package wizard
