// Package catalogue loads the expected-results test catalogue consumed by
// the harness: hint test cases and example test cases, in declaration order.
package catalogue

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
)

// idRe matches database identifiers such as "Q42".
var idRe = regexp.MustCompile(`^[A-Z]\d+$`)

// ExpectedHint is the acceptable outcome for one hint position: the match
// succeeds when the actual database identifier is a member of IDs. The
// display fields are used only in failure messages.
type ExpectedHint struct {
	IDs         []string
	DisplayID   string
	DisplayName string
}

// Matches reports whether id is acceptable for this position.
func (e ExpectedHint) Matches(id string) bool {
	for _, want := range e.IDs {
		if id == want {
			return true
		}
	}
	return false
}

// HintCase verifies the autocompletion popup after typing Input.
type HintCase struct {
	Name     string
	Input    string
	Expected []ExpectedHint
}

// ExampleCase verifies the rendered query after clicking the example
// labelled Input in the examples menu.
type ExampleCase struct {
	Name  string
	Input string
	Lines []string
}

// Catalogue is the full set of declared test cases. Read-only after load;
// execution order is declaration order.
type Catalogue struct {
	Hints    []HintCase
	Examples []ExampleCase
}

type rawFile struct {
	Hints    []rawHintCase    `json:"Testcases_Hints"`
	Examples []rawExampleCase `json:"Testcases_Examples"`
}

type rawHintCase struct {
	Name   string `json:"name"`
	Input  string `json:"input"`
	Output struct {
		Hints [][]string `json:"hints"`
	} `json:"output"`
}

type rawExampleCase struct {
	Name   string `json:"name"`
	Input  string `json:"input"`
	Output struct {
		Lines []string `json:"lines"`
	} `json:"output"`
}

// Load reads a catalogue file. On any failure it returns an empty,
// non-nil catalogue alongside the error so the caller can log and still
// complete a run with zero test cases.
func Load(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Catalogue{}, fmt.Errorf("catalogue: read %s: %w", path, err)
	}
	cat, err := Decode(data)
	if err != nil {
		return cat, fmt.Errorf("catalogue: %s: %w", path, err)
	}
	return cat, nil
}

// Decode parses catalogue JSON. Each expected-hint entry is an array whose
// identifier-shaped members form the acceptable set; the first member is
// the display identifier and the last the display name.
func Decode(data []byte) (*Catalogue, error) {
	var raw rawFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return &Catalogue{}, fmt.Errorf("decode: %w", err)
	}

	cat := &Catalogue{}
	for _, rc := range raw.Hints {
		hc := HintCase{Name: rc.Name, Input: rc.Input}
		for _, entry := range rc.Output.Hints {
			hc.Expected = append(hc.Expected, decodeExpected(entry))
		}
		cat.Hints = append(cat.Hints, hc)
	}
	for _, rc := range raw.Examples {
		cat.Examples = append(cat.Examples, ExampleCase{
			Name:  rc.Name,
			Input: rc.Input,
			Lines: rc.Output.Lines,
		})
	}
	return cat, nil
}

func decodeExpected(entry []string) ExpectedHint {
	var e ExpectedHint
	for _, s := range entry {
		if idRe.MatchString(s) {
			e.IDs = append(e.IDs, s)
		}
	}
	if len(entry) > 0 {
		e.DisplayID = entry[0]
		e.DisplayName = entry[len(entry)-1]
	}
	return e
}
