// Package schemas validates YAML documents against JSON schemas. Documents are
// decoded generically with yaml.v3 and the resulting maps and slices are handed to
// the validator unchanged.
package schemas

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// MustCompile compiles an embedded schema. It panics on malformed schemas, which
// are programming errors.
func MustCompile(name, src string) *jsonschema.Schema {
	return jsonschema.MustCompileString(name, src)
}

// Validate decodes data as YAML and checks it against schema.
func Validate(schema *jsonschema.Schema, data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, "decode")
	}
	if doc == nil {
		return errors.New("empty document")
	}
	if err := schema.Validate(normalize(doc)); err != nil {
		return errors.Wrap(err, "schema")
	}
	return nil
}

// normalize rewrites maps with non-string keys, which YAML allows but JSON does not.
func normalize(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, item := range v {
			v[k] = normalize(item)
		}
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[keyString(k)] = normalize(item)
		}
		return out
	case []any:
		for i, item := range v {
			v[i] = normalize(item)
		}
		return v
	default:
		return v
	}
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	var sb strings.Builder
	_ = yaml.NewEncoder(&sb).Encode(k)
	return strings.TrimSpace(sb.String())
}
