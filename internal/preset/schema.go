package preset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed preset.schema.json
var schemaBytes []byte

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal preset schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("preset.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("add preset schema: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("preset.schema.json")
	})
	return compiledSchema, compileErr
}

// decodeJSON validates a JSON document against the preset schema and
// decodes it. source names the payload in errors.
func decodeJSON(source string, data []byte) (Preset, error) {
	sch, err := schema()
	if err != nil {
		return Preset{}, err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return Preset{}, &ValidationError{Source: source, Err: err}
	}
	if err := sch.Validate(inst); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return Preset{}, &ValidationError{Source: source, Issues: issues(ve)}
		}
		return Preset{}, &ValidationError{Source: source, Err: err}
	}

	var p Preset
	if err := json.Unmarshal(data, &p); err != nil {
		return Preset{}, &ValidationError{Source: source, Err: err}
	}
	if p.Plugins == nil {
		p.Plugins = map[string]PluginOptions{}
	}
	return p, p.Validate()
}

// issues flattens the leaf causes of a schema violation.
func issues(ve *jsonschema.ValidationError) []string {
	var out []string
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) > 0 {
			for _, c := range e.Causes {
				walk(c)
			}
			return
		}
		if e.ErrorKind == nil {
			return
		}
		loc := "/" + strings.Join(e.InstanceLocation, "/")
		out = append(out, loc+": "+e.ErrorKind.LocalizedString(printer))
	}
	walk(ve)
	if len(out) == 0 {
		out = []string{ve.Error()}
	}
	return out
}
