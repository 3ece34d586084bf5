package builder

import "fmt"

// ValidationError reports a missing or inconsistent argument, such as a TF
// model without INPUTS and OUTPUTS.
type ValidationError struct {
	Op     string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("redisai: %s: %s", e.Op, e.Reason)
}

// TypeError reports an argument of an unsupported type, such as an unknown
// dtype name or a tensor that is neither an array nor a value sequence.
type TypeError struct {
	Op     string
	Reason string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("redisai: %s: %s", e.Op, e.Reason)
}
