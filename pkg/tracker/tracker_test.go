package tracker_test

import (
	"testing"

	"github.com/aretw0/enform/pkg/tracker"
	"github.com/stretchr/testify/assert"
)

func TestShouldShowRequiresTouch(t *testing.T) {
	tr := tracker.New()

	assert.False(t, tr.ShouldShow("surname"))

	tr.MarkTouched("surname")
	assert.True(t, tr.ShouldShow("surname"))
	assert.False(t, tr.ShouldShow("givenName"))
}

func TestRevealAllIsSticky(t *testing.T) {
	tr := tracker.New()

	tr.RevealAll()
	assert.True(t, tr.Revealed())
	assert.True(t, tr.ShouldShow("surname"), "reveal-all shows untouched fields")

	// No per-field reset exists; clearing a prefix leaves reveal-all alone.
	tr.ClearPrefix("agent.")
	assert.True(t, tr.Revealed())
}

func TestClearPrefix(t *testing.T) {
	tr := tracker.New()

	tr.MarkTouched("agent.surname")
	tr.MarkTouched("agent.givenName")
	tr.MarkTouched("beneficiary.surname")

	tr.ClearPrefix("agent.")

	assert.False(t, tr.Touched("agent.surname"))
	assert.False(t, tr.Touched("agent.givenName"))
	assert.True(t, tr.Touched("beneficiary.surname"))
}
