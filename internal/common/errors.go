// Package common holds sentinel errors shared by client layers. Match them
// with errors.Is.
package common

import "errors"

var (
	// ErrorNotFound is returned by repositories for absent rows.
	ErrorNotFound = errors.New("not found")
)
