// Package setfile loads question-set documents from YAML or JSON files.
//
// A document is validated against an embedded JSON Schema, then decoded
// strictly (unknown fields and multiple documents are rejected) and converted
// to a questionset.Record. Semantic checks such as "the MCQ answer is one of
// its options" are left to questionset.New.
package setfile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/studykit/studykit/internal/questionset"
)

// ErrInvalidDocument is returned when a file cannot be parsed or does not
// match the document schema.
var ErrInvalidDocument = errors.New("invalid question set document")

// Format is the encoding of a document.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// FormatFor picks the format from a file extension. Anything that is not
// .json is read as YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://studykit/questionset.json"

var (
	schemaOnce     sync.Once
	schemaCompiled *jsonschema.Schema
	schemaErr      error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		schemaCompiled, schemaErr = c.Compile(schemaURL)
	})
	return schemaCompiled, schemaErr
}

type document struct {
	ID        string        `json:"id" yaml:"id"`
	Title     string        `json:"title" yaml:"title"`
	CreatedAt string        `json:"created_at" yaml:"created_at"`
	Mode      string        `json:"mode" yaml:"mode"`
	TimeLimit *int          `json:"time_limit" yaml:"time_limit"`
	Questions []questionDoc `json:"questions" yaml:"questions"`
}

type questionDoc struct {
	ID         string `json:"id" yaml:"id"`
	Text       string `json:"question_text" yaml:"question_text"`
	Kind       string `json:"question_type" yaml:"question_type"`
	Options    any    `json:"options" yaml:"options"`
	Answer     string `json:"correct_answer" yaml:"correct_answer"`
	Difficulty string `json:"difficulty" yaml:"difficulty"`
}

// Loader converts documents to records. The zero value is ready to use.
type Loader struct {
	// Now stamps documents without created_at. Defaults to time.Now.
	Now func() time.Time
	// NewID fills missing set and question ids. Defaults to uuid.NewString.
	NewID func() string
}

// Load reads the file at path with a zero Loader.
func Load(path string) (questionset.Record, error) {
	return Loader{}.Load(path)
}

// Load reads and converts the file at path.
func (l Loader) Load(path string) (questionset.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return questionset.Record{}, fmt.Errorf("read question set: %w", err)
	}
	rec, err := l.Parse(data, FormatFor(path))
	if err != nil {
		return questionset.Record{}, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// Parse converts an in-memory document.
func (l Loader) Parse(data []byte, format Format) (questionset.Record, error) {
	generic, err := toGeneric(data, format)
	if err != nil {
		return questionset.Record{}, err
	}

	schema, err := compiledSchema()
	if err != nil {
		return questionset.Record{}, err
	}
	if err := schema.Validate(generic); err != nil {
		return questionset.Record{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	var doc document
	switch format {
	case FormatJSON:
		err = decodeJSON(data, &doc)
	default:
		err = decodeYAML(data, &doc)
	}
	if err != nil {
		return questionset.Record{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return l.convert(doc)
}

// toGeneric produces the JSON data model the schema validator expects.
// YAML is round-tripped through JSON so numbers and timestamps take their
// JSON forms.
func toGeneric(data []byte, format Format) (any, error) {
	if format == FormatYAML {
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("%w: parse yaml: %v", ErrInvalidDocument, err)
		}
		js, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: yaml is not representable as json: %v", ErrInvalidDocument, err)
		}
		data = js
	}
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: parse json: %v", ErrInvalidDocument, err)
	}
	return v, nil
}

func decodeJSON(data []byte, doc *document) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(doc); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return errors.New("parse json: multiple documents are not supported")
		}
		return fmt.Errorf("parse json: %w", err)
	}
	return nil
}

func decodeYAML(data []byte, doc *document) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return errors.New("parse yaml: multiple documents are not supported")
		}
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

func (l Loader) convert(doc document) (questionset.Record, error) {
	now, newID := l.Now, l.NewID
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = uuid.NewString
	}

	rec := questionset.Record{
		ID:        strings.TrimSpace(doc.ID),
		Title:     strings.TrimSpace(doc.Title),
		Mode:      questionset.Mode(doc.Mode),
		TimeLimit: doc.TimeLimit,
		Questions: make([]questionset.QuestionRecord, 0, len(doc.Questions)),
	}
	if rec.ID == "" {
		rec.ID = newID()
	}
	if doc.CreatedAt == "" {
		rec.CreatedAt = now().UTC()
	} else {
		t, err := time.Parse(time.RFC3339, doc.CreatedAt)
		if err != nil {
			return questionset.Record{}, fmt.Errorf("%w: created_at: %v", ErrInvalidDocument, err)
		}
		rec.CreatedAt = t
	}

	for _, q := range doc.Questions {
		id := strings.TrimSpace(q.ID)
		if id == "" {
			id = newID()
		}
		rec.Questions = append(rec.Questions, questionset.QuestionRecord{
			ID:         id,
			Text:       q.Text,
			Kind:       questionset.Kind(q.Kind),
			Options:    q.Options,
			Answer:     q.Answer,
			Difficulty: q.Difficulty,
		})
	}
	return rec, nil
}
