// SPDX-License-Identifier: MPL-2.0

package command

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// errEmptyText is wrapped in a DecodeError when Import receives blank text.
var errEmptyText = errors.New("empty input")

// Decoder decodes text into out, which is always a non-nil pointer to the
// descriptor's value type.
type Decoder func(text string, out any) error

// DecodeYAML is the default Decoder. YAML is a superset of JSON, so JSON
// encoded values ("8080", "\"host\"", "[1, 2]") decode as well.
func DecodeYAML(text string, out any) error {
	if err := yaml.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	return nil
}

// decodeInto runs dec on text and returns the decoded value or a *DecodeError.
func decodeInto[T any](key Key, dec Decoder, text string) (T, error) {
	var v T
	if dec == nil {
		dec = DecodeYAML
	}
	if strings.TrimSpace(text) == "" {
		return v, &DecodeError{Key: key, Text: text, Type: typeName[T](), Err: errEmptyText}
	}
	if err := dec(text, &v); err != nil {
		return v, &DecodeError{Key: key, Text: text, Type: typeName[T](), Err: err}
	}
	return v, nil
}

func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", &zero)[1:]
}
