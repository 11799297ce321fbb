package model

import "time"

// Settings is the singleton row of the settings table.  It is globally
// readable and written only by admins.
type Settings struct {
	SendConfirmationAutomatically bool      `json:"sendConfirmationAutomatically"`
	UpdatedAt                     time.Time `json:"updatedAt"`
}
