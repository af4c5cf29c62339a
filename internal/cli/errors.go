package cli

import "fmt"

type notLoggedInError struct{}

func (notLoggedInError) Error() string {
	return "not logged in; run `todos login <name>` first"
}

type taskRefError struct {
	ref   string
	count int
}

func (e taskRefError) Error() string {
	if e.count == 0 {
		return fmt.Sprintf("no task %s: the list is empty", e.ref)
	}
	return fmt.Sprintf("no task %s: expected a position between 1 and %d", e.ref, e.count)
}

type confirmRequiredError struct {
	what string
}

func (e confirmRequiredError) Error() string {
	return fmt.Sprintf("refusing to %s without --yes", e.what)
}
