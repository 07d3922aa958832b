package utils

import "errors"

// ErrorRecordNotFound is the read-facade sentinel: a lookup for a member that
// does not exist returns it, while "exists but has no rows" never does (those
// queries return empty slices or nil). Handlers map it to 404.
var ErrorRecordNotFound = errors.New("record not found")

// ErrorPanic aborts on error. For tools where dying is the right response
// (seeders, one-shot jobs), never for the server.
func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}
