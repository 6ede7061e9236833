package ports

// Scheduler defers a unit of work to the next available tick. The selection
// board uses it to mirror the shadow store into render state off the
// interaction path.
type Scheduler interface {
	Schedule(fn func())
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(fn func())

// Schedule calls s(fn).
func (s SchedulerFunc) Schedule(fn func()) {
	s(fn)
}
