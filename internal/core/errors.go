// Package core defines sentinel errors.
package core

import "errors"

var (
	// Slot table errors
	ErrDuplicateSlot = errors.New("strix: protocol slot already present")
	ErrPacketSealed  = errors.New("strix: packet already sealed")

	// Address resolution errors
	ErrMissingIPLayer        = errors.New("strix: packet has no ip layer")
	ErrMissingTransportLayer = errors.New("strix: packet has no transport layer")

	// Frame store errors
	ErrNoFrames = errors.New("strix: packet has no frames")

	// Dissection errors
	ErrPacketTooShort     = errors.New("strix: packet too short")
	ErrDuplicateDissector = errors.New("strix: dissector already registered")

	// Configuration errors
	ErrConfigInvalid = errors.New("strix: invalid configuration")
)
