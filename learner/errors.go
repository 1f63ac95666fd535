// SPDX-License-Identifier: MIT

package learner

import "errors"

var (
	// ErrLabelsMismatch indicates a label slice whose length differs from the example count.
	ErrLabelsMismatch = errors.New("learner: labels do not match examples")

	// ErrInvalidConfig indicates a configuration that fails decoding or validation.
	ErrInvalidConfig = errors.New("learner: invalid configuration")
)
