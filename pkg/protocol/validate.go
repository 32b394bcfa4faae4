// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The Swarmlight Authors

package protocol

import "fmt"

// CheckValue validates one numeric parameter for the named action and returns
// it unchanged on success.
//
// A nil value fails with MissingValue and a non-integer value with
// TypeMismatch. When bracket is non-nil it must hold exactly two values
// forming an inclusive [min, max] range; anything else fails with
// InvalidRange, and a value strictly outside the range fails with OutOfRange.
// Values at either bound pass.
func CheckValue(value any, action string, bracket []int) (int, error) {
	if value == nil {
		return 0, NewMissingValueError(fmt.Sprintf("action %q is missing a required value", action))
	}
	n, ok := value.(int)
	if !ok {
		return 0, NewTypeMismatchError(fmt.Sprintf("value for %q must be an integer, got %T", action, value))
	}
	if bracket != nil {
		if len(bracket) != 2 {
			return 0, NewInvalidRangeError(fmt.Sprintf("value bracket needs exactly 2 values, got %d", len(bracket)))
		}
		if n < bracket[0] || n > bracket[1] {
			return 0, NewOutOfRangeError(fmt.Sprintf(
				"value for %q must be between %d-%d, got %d", action, bracket[0], bracket[1], n))
		}
	}
	return n, nil
}
