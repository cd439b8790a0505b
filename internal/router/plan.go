package router

import (
	"stairtour/internal/catalog"
)

// Plan is a routed tour: which steps to pass to the controller and why.
type Plan struct {
	// Mode is [ModeFull] or [ModeDelta]; never [ModeAuto].
	Mode Mode

	// Steps is the sequence to start, in catalog order. Never empty.
	Steps []catalog.Step

	// Version is the catalog version the plan was built from.
	Version int

	// Reason is a short human-readable explanation for logs and output.
	Reason string
}

// Len returns the number of steps in the plan.
func (p Plan) Len() int {
	return len(p.Steps)
}

// IDs returns the step ids in order.
func (p Plan) IDs() []string {
	return catalog.StepIDs(p.Steps)
}
