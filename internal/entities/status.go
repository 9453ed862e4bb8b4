package entities

import "fmt"

type Status string

const (
	StatusCreated    Status = "created"
	StatusInProgress Status = "in_progress"
	StatusFulfilled  Status = "fulfilled"
	StatusCancelled  Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusCreated:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusFulfilled, StatusCancelled},
	StatusFulfilled:  {StatusCancelled},
	StatusCancelled:  {},
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether the order may move from s to target.
// Re-applying the current status is allowed as a no-op, except for
// cancelled orders which accept nothing.
func (s Status) CanTransitionTo(target Status) bool {
	if !s.Valid() || !target.Valid() || s == StatusCancelled {
		return false
	}
	if s == target {
		return true
	}
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, s)
	}
	return status, nil
}
