/*
Package domain defines the core value types shared by the enform engine.

These types carry no behavior beyond construction and copying: a Record is
the flat string map a step edits, an ErrorMap is the result of validating a
Record, and a Snapshot is the JSON-serializable blob persisted per step.
Higher layers (validate, wizard, snapshot) operate on these values and own
all state transitions.
*/
package domain
