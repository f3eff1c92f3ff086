// Package schemafile loads schema documents from YAML or JSON files and
// builds validated schemas from them.
//
// A document holds a single schema keyed by its name:
//
//	Users:
//	  title: User accounts
//	  actions: i,c,r,u,d
//	  attributes:
//	    - name: id
//	      dataType: integer
//	      constraints: pk|ai|required
//	    - name: email
//	      dataType: string
//	      type: email
//	      constraints: {required: true, maxlength: 255}
//
// Declaration order of attributes and constraints is preserved.
package schemafile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/flexphp/flex-schema/pkg/schema"
)

// ErrInvalidFileSource is returned when a source cannot be read or decoded.
var ErrInvalidFileSource = schema.ErrInvalidFileSource

// Load reads the schema document at path and builds the schema.
func Load(path string) (*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrInvalidFileSource, path, err)
	}
	s, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode reads one schema document from r and builds the schema. An empty
// document fails with schema.ErrInvalidSchema.
func Decode(r io.Reader) (*schema.Schema, error) {
	doc, err := ReadDocument(r)
	if err != nil {
		return nil, err
	}
	return schema.FromCollection(doc)
}

// ReadDocument decodes the first document in r into an ordered collection
// without validating it. An empty stream yields an empty collection.
func ReadDocument(r io.Reader) (schema.Collection, error) {
	var doc schema.Collection
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: decoding document: %w", ErrInvalidFileSource, err)
	}
	return doc, nil
}
