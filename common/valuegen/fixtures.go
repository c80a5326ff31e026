// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// The N42 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The N42 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the N42 library. If not, see <http://www.gnu.org/licenses/>.

package valuegen

import (
	"gopkg.in/yaml.v3"

	n42errors "github.com/n42blockchain/abicore/pkg/errors"
)

// Fixture names one named, reproducible generation scenario: a seed plus
// a human-readable note on what it is meant to exercise (a known
// edge case, a regression reproduction, a specific shape of calldata).
type Fixture struct {
	Seed        int64  `yaml:"seed"`
	Description string `yaml:"description,omitempty"`
}

// Corpus is a named collection of fixtures, the unit loaded from one
// YAML file.
type Corpus struct {
	Fixtures map[string]Fixture `yaml:"fixtures"`
}

// LoadCorpus parses a YAML document of the form:
//
//	fixtures:
//	  empty_call:
//	    seed: 1
//	    description: zero-argument function call
//	  max_blob_count:
//	    seed: 4844
func LoadCorpus(data []byte) (*Corpus, error) {
	var c Corpus
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, n42errors.Wrap(err, "valuegen: parsing fixture corpus")
	}
	return &c, nil
}

// Generator returns a Generator seeded from the named fixture.
func (c *Corpus) Generator(name string) (*Generator, error) {
	f, ok := c.Fixtures[name]
	if !ok {
		return nil, n42errors.Errorf("valuegen: unknown fixture %q", name)
	}
	return New(f.Seed), nil
}
