package main

import "errors"

// Exit codes let scripts tell a rejected number apart from a broken setup.
const (
	ExitCodeSuccess = 0

	// ExitCodeInvalidNumber indicates check rejected the card number
	ExitCodeInvalidNumber = 1

	// ExitCodeGeneralError indicates a generic error
	ExitCodeGeneralError = 2

	// ExitCodeConfigError indicates the registry or MII configuration could not be loaded
	ExitCodeConfigError = 3
)

var (
	errInvalidNumber = errors.New("card number is invalid")
	errConfig        = errors.New("configuration error")
)
