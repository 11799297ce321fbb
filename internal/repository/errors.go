// Package repository defines the MySQL data access layer.  The sentinel
// values in this file let services and handlers tell a missing record
// apart from a datastore failure.
package repository

import "errors"

// ErrBookingNotFound is returned when no booking row matches a primary id
// in the queried collection.  Handlers translate it into a 404.
var ErrBookingNotFound = errors.New("booking not found")

// ErrDisplayIDUnchanged is returned when a display id write-back affected
// no row: the booking is gone or already carries a display id.
var ErrDisplayIDUnchanged = errors.New("display id not assigned")

// ErrEmailExists is returned when a user is created with an email that is
// already registered.
var ErrEmailExists = errors.New("email already exists")
