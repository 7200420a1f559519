package models

const (
	// InitialCounterValue is the value every freshly mounted view starts from.
	InitialCounterValue = 1000
	// CounterStep is how much a single increment or decrement moves the counter.
	CounterStep = 1000
)

// Counter is the single integer driving all three charts. It has no bounds, decrementing below zero is allowed and
// keeps going for as long as the user keeps clicking.
type Counter int

func NewCounter() Counter {
	return InitialCounterValue
}

func (c *Counter) Increment() {
	*c += CounterStep
}

func (c *Counter) Decrement() {
	*c -= CounterStep
}

func (c Counter) Value() int {
	return int(c)
}
