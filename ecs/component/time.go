package component

// Time is the frame clock, kept on a single entity and advanced once per
// cycle before any stage runs.
type Time struct {
	Delta   float64
	Elapsed float64
	Frame   uint64
}

var TimeComponent = NewComponent[Time]()
