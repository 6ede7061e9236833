/*
Package selection implements the dual-store selection synchronizer for the
plan-selection screen.

The Board keeps two copies of every question's chosen option set: a shadow
copy mutated synchronously on user action, and a render copy refreshed one
scheduler tick later for display. Reads that must be correct (IsSelected,
Eligible) always hit the shadow; the render copy exists only so display
code has a stable view, and converges to the shadow whenever the board is
idle.
*/
package selection
