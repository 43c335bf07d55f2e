// Package lexicon provides the embedded Strong's Greek dictionary used for
// word-study appendices.
package lexicon

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed strongs_greek.json
var dictionaryJSON []byte

//go:embed strongs_schema.json
var schemaJSON []byte

// Entry is one dictionary entry, keyed by Strong's number without the G
// prefix.
type Entry struct {
	Greek    string `json:"greek"`
	Translit string `json:"translit"`
	Def      string `json:"def"`
}

// Dictionary maps Strong's numbers to entries.
type Dictionary map[string]Entry

var (
	loadOnce sync.Once
	dict     Dictionary
	loadErr  error
)

// Load parses and validates the embedded dictionary. The result is cached
// for the process lifetime.
func Load() (Dictionary, error) {
	loadOnce.Do(func() {
		dict, loadErr = parse(dictionaryJSON)
	})
	return dict, loadErr
}

func parse(data []byte) (Dictionary, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("strongs_schema.json", bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to load lexicon schema: %w", err)
	}
	schema, err := compiler.Compile("strongs_schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile lexicon schema: %w", err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("lexicon failed schema validation: %w", err)
	}

	var d Dictionary
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to decode lexicon: %w", err)
	}
	return d, nil
}

// Lookup returns the entry for a Strong's number and whether it exists.
func (d Dictionary) Lookup(num string) (Entry, bool) {
	e, ok := d[num]
	return e, ok
}
