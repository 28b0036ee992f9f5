package validation

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// maxViolations bounds how many violations one Error reports
const maxViolations = 10

var ErrUnknownSchema = errors.New("schema not registered")

// SchemaValidator checks JSON documents against schemas registered by name
type SchemaValidator interface {
	RegisterSchema(name string, schema []byte) error
	ValidateBytes(data []byte, schemaName string) error
}

// Violation is a single failed keyword at a JSON pointer
type Violation struct {
	Path    string
	Keyword string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Keyword)
}

// Error lists the leaf violations of a document, ordered by path
type Error struct {
	Schema     string
	Violations []Violation
	Truncated  int
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	msg := fmt.Sprintf("%s: %s", e.Schema, strings.Join(parts, "; "))
	if e.Truncated > 0 {
		msg += fmt.Sprintf(" (and %d more)", e.Truncated)
	}
	return msg
}

type registry struct {
	mu       sync.RWMutex
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
}

// NewSchemaValidator creates an empty schema registry
func NewSchemaValidator() SchemaValidator {
	return &registry{
		compiler: jsonschema.NewCompiler(),
		schemas:  make(map[string]*jsonschema.Schema),
	}
}

// RegisterSchema compiles schema under name. Registering a name twice keeps
// the first schema.
func (r *registry) RegisterSchema(name string, schema []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.schemas[name]; ok {
		return nil
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schema))
	if err != nil {
		return fmt.Errorf("parse schema %s: %w", name, err)
	}
	if err := r.compiler.AddResource(name, doc); err != nil {
		return fmt.Errorf("add schema %s: %w", name, err)
	}
	compiled, err := r.compiler.Compile(name)
	if err != nil {
		return fmt.Errorf("compile schema %s: %w", name, err)
	}

	r.schemas[name] = compiled
	return nil
}

// ValidateBytes checks data against a registered schema. Schema failures are
// returned as *Error.
func (r *registry) ValidateBytes(data []byte, schemaName string) error {
	r.mu.RLock()
	schema, ok := r.schemas[schemaName]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSchema, schemaName)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	return newError(schemaName, verr)
}

func newError(schemaName string, root *jsonschema.ValidationError) *Error {
	var all []Violation
	leaves(root, &all)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Path < all[j].Path })

	e := &Error{Schema: schemaName, Violations: all}
	if len(all) > maxViolations {
		e.Violations = all[:maxViolations]
		e.Truncated = len(all) - maxViolations
	}
	return e
}

// leaves collects errors without causes; the intermediate nodes only repeat
// "doesn't validate" for their children.
func leaves(err *jsonschema.ValidationError, out *[]Violation) {
	if len(err.Causes) > 0 {
		for _, c := range err.Causes {
			leaves(c, out)
		}
		return
	}

	path := "/" + strings.Join(err.InstanceLocation, "/")
	keyword := "schema"
	if err.ErrorKind != nil {
		if kp := err.ErrorKind.KeywordPath(); len(kp) > 0 {
			keyword = strings.Join(kp, ".")
		}
	}
	*out = append(*out, Violation{Path: path, Keyword: keyword})
}
