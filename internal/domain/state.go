package domain

import "fmt"

// DriverState is the lifecycle state of a test-epoch driver.
type DriverState string

const (
	DriverUninitialized DriverState = "UNINITIALIZED"
	DriverReady         DriverState = "READY"
	DriverRunning       DriverState = "RUNNING"
	DriverDone          DriverState = "DONE"
	DriverFailed        DriverState = "FAILED"
)

func (s DriverState) IsTerminal() bool {
	return s == DriverDone || s == DriverFailed
}

// Transition validates from -> to. FAILED is reachable from every non-terminal state.
func (s DriverState) Transition(to DriverState) (DriverState, error) {
	if !isAllowedTransition(s, to) {
		return s, fmt.Errorf("disallowed driver transition: %s -> %s", s, to)
	}

	return to, nil
}

func isAllowedTransition(from, to DriverState) bool {
	if to == DriverFailed {
		return !from.IsTerminal()
	}

	switch from {
	case DriverUninitialized:
		return to == DriverReady
	case DriverReady:
		return to == DriverRunning
	case DriverRunning:
		return to == DriverDone
	default:
		return false
	}
}
