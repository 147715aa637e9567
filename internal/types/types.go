// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, storage, the client and utils can all import types without
// depending on each other.
package types

import "time"

// Student represents a persisted student record.
//
// ID and CreatedAt are assigned by the store on insertion and never change
// afterwards. CreatedAt is a pointer so that a row without a timestamp
// encodes as "createdAt": null instead of the zero time.
type Student struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	FatherName  string     `json:"fatherName"`
	MotherName  string     `json:"motherName"`
	BrotherName string     `json:"brotherName"`
	Email       string     `json:"email"`
	Grade       string     `json:"grade"`
	CreatedAt   *time.Time `json:"createdAt"`
}

// InsertStudent is the creation contract: a Student minus the fields the
// store generates (id, createdAt).
//
// validate:"..." tags are the rule table checked by Validate. The field
// order below is the order rules are evaluated in, so it decides which
// error is reported first.
type InsertStudent struct {
	Name        string `json:"name"        validate:"required"`
	FatherName  string `json:"fatherName"  validate:"required"`
	MotherName  string `json:"motherName"  validate:"required"`
	BrotherName string `json:"brotherName" validate:"required"`

	// Email shape is checked by the UI input type only; the server
	// accepts any non-empty string.
	Email string `json:"email" validate:"required"`

	// Grade is a freeform label such as "10th Grade".
	Grade string `json:"grade" validate:"required"`
}
