package engine

import "errors"

// Engine outcome taxonomy. Every Handle call returns a usable Reply even
// when one of these is set; the error classifies the outcome for the
// caller and for logging.
var (
	// ErrInvalidInput: the event did not match the expected input shape;
	// the state did not advance and the Reply re-prompts.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientBalance: the sell amount exceeds the wallet balance;
	// the flow is over and no record was written.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrExternalCall: a ramp API call failed at a point that fails the
	// flow (final settlement submission). The session stays in Failed
	// awaiting a retry decision.
	ErrExternalCall = errors.New("external call failed")

	// ErrPersistence: the transaction could not be recorded; terminal,
	// nothing was appended.
	ErrPersistence = errors.New("persistence failure")

	// ErrCancelled: the user cancelled the flow.
	ErrCancelled = errors.New("cancelled by user")

	// ErrUnverified: bank verification failed; non-terminal, the user
	// chooses between re-entering details and continuing unverified.
	ErrUnverified = errors.New("bank account unverified")
)
