package todo

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/pocketdo/internal/utils"
)

// listSchemaURL names the embedded schema resource; it is never fetched.
const listSchemaURL = "https://pocketdo.local/tasks.schema.json"

// ListSchema is the JSON Schema every stored value must satisfy.
// Unknown task fields are tolerated so older builds can read newer data.
const ListSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "pocketdo task list",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "text", "completed"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "text": {"type": "string", "minLength": 1},
      "completed": {"type": "boolean"}
    }
  }
}`

var listSchema = compileListSchema()

func compileListSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(listSchemaURL, strings.NewReader(ListSchema)); err != nil {
		panic(fmt.Sprintf("add task list schema: %v", err))
	}
	schema, err := compiler.Compile(listSchemaURL)
	if err != nil {
		panic(fmt.Sprintf("compile task list schema: %v", err))
	}
	return schema
}

// Encode serializes l as a JSON array. A nil list encodes as [].
func Encode(l List) ([]byte, error) {
	if l == nil {
		l = List{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal task list: %w", err)
	}
	return data, nil
}

// Decode parses and validates a stored value.
// Every failure is reported as a *CorruptDataError.
func Decode(data []byte) (List, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &CorruptDataError{Errors: []error{&FieldError{Err: fmt.Errorf("parse json: %w", err)}}}
	}

	if err := listSchema.Validate(doc); err != nil {
		return nil, &CorruptDataError{Errors: schemaErrors(err)}
	}

	var l List
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, &CorruptDataError{Errors: []error{&FieldError{Err: fmt.Errorf("decode task list: %w", err)}}}
	}

	if problems := checkList(l); len(problems) > 0 {
		return nil, &CorruptDataError{Errors: problems}
	}
	if l == nil {
		l = List{}
	}
	return l, nil
}

// checkList enforces what the schema cannot: unique ids and non-blank text.
func checkList(l List) []error {
	var problems []error
	seen := make(map[string]int, len(l))
	for i, t := range l {
		if first, dup := seen[t.ID]; dup {
			problems = append(problems, &FieldError{
				Path: fmt.Sprintf("[%d].id", i),
				Err:  fmt.Errorf("duplicate id %q (first at [%d])", t.ID, first),
			})
		} else {
			seen[t.ID] = i
		}
		if strings.TrimSpace(t.Text) == "" {
			problems = append(problems, &FieldError{
				Path: fmt.Sprintf("[%d].text", i),
				Err:  errors.New("blank text"),
			})
		}
	}
	return problems
}

func schemaErrors(err error) []error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []error{err}
	}
	var out []error
	collectSchemaErrors(&out, ve)
	return out
}

func collectSchemaErrors(out *[]error, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		*out = append(*out, &FieldError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(out, cause)
	}
}
