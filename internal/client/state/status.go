// Package state holds the observable client state: the current meal list,
// the session, and the single status slot each of them reports into.
//
// Every status-changing operation takes a new generation. A completion that
// belongs to an older generation may still update the meal list (through the
// fetch ordering below) but never writes the status slot.
//
// Meal list fetches are cancel-and-replace: starting a fetch cancels the one
// in flight, and only the latest fetch may replace the list. A superseded
// fetch returns ErrSuperseded; the fetch that replaced it settles the status
// on behalf of the current generation.
package state

import (
	"errors"

	"github.com/dmitrijs2005/eatsbalance/internal/client/client"
)

var (
	ErrSuperseded = errors.New("superseded by a newer fetch")
	ErrResync     = errors.New("resync failed")
)

type Kind int

const (
	Idle Kind = iota
	Loading
	Failed
	MealAdded
	MealDeleted
	LoggedIn
	Registered
	LoggedOut
)

func (k Kind) String() string {
	switch k {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Failed:
		return "error"
	case MealAdded:
		return "meal added"
	case MealDeleted:
		return "meal deleted"
	case LoggedIn:
		return "logged in"
	case Registered:
		return "registered"
	case LoggedOut:
		return "logged out"
	default:
		return "unknown"
	}
}

// Status is the outcome of the most recently started operation. Message is
// the text shown to the user; Err keeps the cause for callers that need it.
type Status struct {
	Kind    Kind
	Message string
	Err     error
}

func (s Status) String() string {
	if s.Message == "" {
		return s.Kind.String()
	}
	return s.Kind.String() + ": " + s.Message
}

func failed(err error) Status {
	return Status{Kind: Failed, Message: Describe(err), Err: err}
}

// Describe turns an operation error into the one-line message shown to the
// user.
func Describe(err error) string {
	switch client.KindOf(err) {
	case client.KindValidationFailed:
		return err.Error()
	case client.KindNetworkUnreachable:
		return "cannot reach the server"
	case client.KindMalformedResponse:
		return "unexpected response from the server"
	case client.KindServerRejected:
		var se *client.StatusError
		if errors.As(err, &se) && se.Message != "" {
			return se.Message
		}
		return "request rejected by the server"
	}
	if errors.Is(err, ErrResync) {
		return "could not refresh meals"
	}
	return err.Error()
}

// slot is a generation-guarded status holder. Callers hold their own lock.
type slot struct {
	status Status
	gen    uint64
}

// begin starts a new generation with status st.
func (s *slot) begin(st Status) uint64 {
	s.gen++
	s.status = st
	return s.gen
}

// set writes st if gen is still current.
func (s *slot) set(gen uint64, st Status) bool {
	if gen != s.gen {
		return false
	}
	s.status = st
	return true
}
