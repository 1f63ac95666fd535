// SPDX-License-Identifier: MIT

package learner

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/katalvlaran/tsetlin/clause"
	"gopkg.in/yaml.v3"
)

// DefaultClauses is the clause count of DefaultConfig.
const DefaultClauses = 20

// Config is the full hyper-parameter set of a Machine, loadable from YAML:
//
//	clauses: 40
//	state_bits_ta: 8
//	patch: [3, 3]
//	type_iii: true
//	seed: 7
//	params:
//	  s: 3.9
//	  t: 15
//	  max_included_literals: 16
type Config struct {
	Clauses      int           `yaml:"clauses" validate:"gt=0"`
	StateBitsTA  int           `yaml:"state_bits_ta" validate:"gte=1,lte=32"`
	StateBitsInd int           `yaml:"state_bits_ind" validate:"gte=1,lte=32"`
	Patch        []int         `yaml:"patch,omitempty" validate:"omitempty,len=2,dive,gt=0"`
	TypeIII      bool          `yaml:"type_iii"`
	Seed         uint64        `yaml:"seed"`
	Params       clause.Params `yaml:"params"`
}

// DefaultConfig returns the documented defaults; Seed 0 selects the RNG default.
func DefaultConfig() Config {
	return Config{
		Clauses:      DefaultClauses,
		StateBitsTA:  clause.DefaultStateBitsTA,
		StateBitsInd: clause.DefaultStateBitsInd,
		Params:       clause.DefaultParams(),
	}
}

var configValidate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports ErrInvalidConfig when any field, nested Params included,
// is outside its domain.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// LoadConfig decodes YAML from r over DefaultConfig and validates the result.
// Unknown keys are rejected. An empty document yields the defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: decode: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
