// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package signature

import (
	"errors"
	"fmt"
)

// Synthesis errors.
var (
	ErrUnsupportedPlaceholderType = errors.New("unsupported placeholder type")
	ErrReservedPlaceholderName    = errors.New("reserved placeholder name")
	ErrInvalidPlaceholderName     = errors.New("invalid placeholder name")
	ErrMissingDateFormat          = errors.New("missing date format")
	ErrInvalidDateFormat          = errors.New("invalid date format")
	ErrInvalidKey                 = errors.New("invalid translation key")
)

// Execution errors.
var (
	ErrMissingArgument = errors.New("missing argument")
	ErrTypeMismatch    = errors.New("argument type mismatch")
)

// KeyError reports a problem with one translation key.
type KeyError struct {
	Key         string
	Placeholder string // empty when the key itself is at fault
	Value       string // offending value, if any
	Err         error
}

func (e *KeyError) Error() string {
	msg := fmt.Sprintf("key %q", e.Key)

	if e.Placeholder != "" {
		msg += fmt.Sprintf(": placeholder %q", e.Placeholder)
	}

	msg += ": " + e.Err.Error()

	if e.Value != "" {
		msg += fmt.Sprintf(": %q", e.Value)
	}

	return msg
}

func (e *KeyError) Unwrap() error {
	return e.Err
}
