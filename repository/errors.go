package repository

import "fmt"

// NotFoundError reports a referenced record that does not exist. It is
// kept distinct from validation failures so handlers can map it to 404.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// ConflictError reports a uniqueness violation (duplicate dealer code,
// duplicate slab label). The caller must resubmit; nothing is retried.
type ConflictError struct {
	Entity string
	Detail string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Detail)
}
