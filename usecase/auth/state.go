package auth

import "fmt"

// State is the position of a sign-in attempt.
type State int

const (
	Unauthenticated State = iota
	PendingProviderVerification
	Authenticated
	Denied
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case PendingProviderVerification:
		return "pending_provider_verification"
	case Authenticated:
		return "authenticated"
	case Denied:
		return "denied"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Event drives an Attempt between states.
type Event int

const (
	// Submit means credentials were submitted or a provider redirect was issued.
	Submit Event = iota
	Verified
	Rejected
)

func (e Event) String() string {
	switch e {
	case Submit:
		return "submit"
	case Verified:
		return "verified"
	case Rejected:
		return "rejected"
	}
	return fmt.Sprintf("event(%d)", int(e))
}

// TransitionError reports an event that is not allowed in the current state.
type TransitionError struct {
	From  State
	Event Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("auth: %s is not allowed in state %s", e.Event, e.From)
}

var transitions = map[State]map[Event]State{
	Unauthenticated: {
		Submit: PendingProviderVerification,
	},
	PendingProviderVerification: {
		Verified: Authenticated,
		Rejected: Denied,
	},
}

// Attempt tracks one sign-in through the authentication states.
// Authenticated and Denied are terminal.
type Attempt struct {
	method string
	state  State
	reason error
}

func NewAttempt(method string) *Attempt {
	return &Attempt{method: method, state: Unauthenticated}
}

func (a *Attempt) Method() string { return a.method }

func (a *Attempt) State() State { return a.state }

// Reason is the error that denied the attempt, if any.
func (a *Attempt) Reason() error { return a.reason }

func (a *Attempt) Fire(ev Event) error {
	next, ok := transitions[a.state][ev]
	if !ok {
		return &TransitionError{From: a.state, Event: ev}
	}
	a.state = next
	return nil
}

// Deny moves the attempt to Denied and returns reason for the caller to surface.
func (a *Attempt) Deny(reason error) error {
	if err := a.Fire(Rejected); err != nil {
		return err
	}
	a.reason = reason
	return reason
}
