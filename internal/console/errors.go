package console

import (
	"errors"
	"fmt"
)

// ErrAllServicesAdded is returned when the workspace already subscribes to
// every service enabled for the organization.
var ErrAllServicesAdded = errors.New("All supported Services in the Organization have already been added")

// IncompleteConfigError reports a project block missing a required field.
type IncompleteConfigError struct {
	Key string
}

func (e *IncompleteConfigError) Error() string {
	return fmt.Sprintf("Incomplete .aio configuration: missing %s, import a Developer Console configuration first", e.Key)
}
