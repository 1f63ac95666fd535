// SPDX-License-Identifier: MIT

package clause

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Learning defaults (single source of truth for DefaultParams).
const (
	// DefaultS is the specificity: true literals are rewarded with (s-1)/s.
	DefaultS = 3.9

	// DefaultT is the vote margin used to derive update probabilities.
	DefaultT = 15

	// DefaultD is the Type III co-occurrence threshold.
	DefaultD = 200.0
)

// Params are the per-pass learning parameters.
// MaxIncludedLiterals == 0 leaves clause size unbounded. D is bounded by the
// range of the uint32 co-occurrence counters.
type Params struct {
	S                         float64 `yaml:"s" validate:"gte=1"`
	T                         int     `yaml:"t" validate:"gte=1"`
	BoostTruePositiveFeedback bool    `yaml:"boost_true_positive_feedback"`
	MaxIncludedLiterals       int     `yaml:"max_included_literals" validate:"gte=0"`
	ClauseDropProbability     float64 `yaml:"clause_drop_p" validate:"gte=0,lt=1"`
	LiteralDropProbability    float64 `yaml:"literal_drop_p" validate:"gte=0,lt=1"`
	D                         float64 `yaml:"d" validate:"gte=0,lt=4294967295"`
}

// DefaultParams returns the documented defaults.
func DefaultParams() Params {
	return Params{S: DefaultS, T: DefaultT, D: DefaultD}
}

var paramsValidate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports ErrInvalidParams when a field is outside its domain.
// NaN fails every bound and is rejected as well.
func (p Params) Validate() error {
	if err := paramsValidate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

// maxIncluded resolves the clause size cap against the literal count.
func (p Params) maxIncluded(literals int) int {
	if p.MaxIncludedLiterals <= 0 || p.MaxIncludedLiterals > literals {
		return literals
	}
	return p.MaxIncludedLiterals
}
