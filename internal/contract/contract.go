// Package contract validates request bodies against JSON Schemas embedded in the binary.
package contract

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemasFS embed.FS

const baseURL = "https://realty.local/schemas/"

// Schema names.
const (
	BlogCreate    = "blog.create"
	BlogUpdate    = "blog.update"
	ProductCreate = "product.create"
	ProductUpdate = "product.update"
	ContactCreate = "contact.create"
	ProjectCreate = "project.create"
	Login         = "auth.login"
	CheckPhone    = "auth.check_phone"
	ResetPassword = "auth.reset_password"
)

var ErrInvalid = errors.New("invalid request body")

// ValidationError carries a client-safe description of the first violation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

type Validator struct {
	schemas map[string]*jsonschema.Schema
}

// New compiles every embedded schema. All files are registered first so
// $ref between them resolves without network access.
func New() (*Validator, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	c.AssertFormat = true

	var names []string
	err := fs.WalkDir(schemasFS, "schemas", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".json") {
			return err
		}
		raw, err := schemasFS.ReadFile(path)
		if err != nil {
			return err
		}
		file := strings.TrimPrefix(path, "schemas/")
		if err := c.AddResource(baseURL+file, bytes.NewReader(raw)); err != nil {
			return fmt.Errorf("add schema %s: %w", file, err)
		}
		names = append(names, strings.TrimSuffix(file, ".json"))
		return nil
	})
	if err != nil {
		return nil, err
	}

	v := &Validator{schemas: make(map[string]*jsonschema.Schema, len(names))}
	for _, n := range names {
		s, err := c.Compile(baseURL + n + ".json")
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", n, err)
		}
		v.schemas[n] = s
	}
	return v, nil
}

// MustNew panics on a broken embedded schema; used where a bad build should not start.
func MustNew() *Validator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks a decoded document (map[string]any, []any, string, float64,
// json.Number, bool). Struct values must go through ValidateJSON.
func (v *Validator) Validate(name string, doc any) error {
	s, ok := v.schemas[name]
	if !ok {
		return fmt.Errorf("contract: unknown schema %q", name)
	}
	if err := s.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return describe(ve)
		}
		return &ValidationError{Message: err.Error()}
	}
	return nil
}

// ValidateJSON validates raw and returns the decoded generic document.
func (v *Validator) ValidateJSON(name string, raw []byte) (map[string]any, error) {
	doc, err := ParseJSON(raw)
	if err != nil {
		return nil, &ValidationError{Message: "body is not valid JSON"}
	}
	if err := v.Validate(name, doc); err != nil {
		return nil, err
	}
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, &ValidationError{Message: "body must be a JSON object"}
	}
	return m, nil
}

// ParseJSON decodes raw into the generic form the validator expects: numbers
// stay json.Number and trailing data after the top-level value is rejected.
func ParseJSON(raw []byte) (any, error) {
	d := json.NewDecoder(bytes.NewReader(raw))
	d.UseNumber()
	var doc any
	if err := d.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := d.Token(); err != io.EOF {
		return nil, errors.New("invalid character after top-level value")
	}
	return doc, nil
}

// Decode converts a validated document into a typed request struct.
func Decode(doc map[string]any, out any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// describe reports the most specific cause, which names the offending field.
func describe(ve *jsonschema.ValidationError) *ValidationError {
	leaf := ve
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	field := strings.TrimPrefix(leaf.InstanceLocation, "/")
	return &ValidationError{Field: strings.ReplaceAll(field, "/", "."), Message: leaf.Message}
}
