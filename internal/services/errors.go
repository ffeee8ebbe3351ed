// Package services contains the application's stateful cores: the product
// store and the session store. Both own their in-memory state exclusively and
// persist it through the key-value store; consumers only ever see copies.
package services

import "errors"

// Sentinel errors reported to callers. Match with errors.Is. Messages are
// shown to the user as-is, so they stay human-readable and, for credential
// failures, deliberately vague.
var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrEmailTaken         = errors.New("this email is already in use")
	ErrProductNotFound    = errors.New("product not found")
	ErrNoActiveSession    = errors.New("no active session")
)
