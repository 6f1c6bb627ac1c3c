package domain

import "errors"

var (
	// ErrPromptAlreadyExists is thrown when registering a prompt whose
	// (network, address, payment id) triple is already outstanding
	ErrPromptAlreadyExists = errors.New("payment prompt already exists for address and payment id")
	// ErrPromptNotFound ...
	ErrPromptNotFound = errors.New("payment prompt not found")
	// ErrInvalidPrompt is thrown when creating a prompt with missing fields
	ErrInvalidPrompt = errors.New("prompt must have network, address, payment id and a positive amount")
)
