package schema

import (
	"fmt"
	"strings"
)

// RuleKind selects the format rule applied to a field after the required check.
type RuleKind string

const (
	// RuleNone applies no format rule.
	RuleNone RuleKind = ""
	// RuleCJKName accepts CJK ideographs only (surname, given name).
	RuleCJKName RuleKind = "cjk_name"
	// RuleKatakana accepts katakana only (kana surname, kana given name).
	RuleKatakana RuleKind = "katakana"
	// RulePostalCode accepts exactly 7 digits.
	RulePostalCode RuleKind = "postal_code"
	// RuleEmail accepts a conventional local@domain.tld shape, at most 254
	// characters, without doubled punctuation ".." or "--".
	RuleEmail RuleKind = "email"
	// RulePassword accepts 6-128 characters with at least one letter and one
	// digit and no character repeated three or more times in a row.
	RulePassword RuleKind = "password"
	// RuleBirthDate accepts an ISO date whose derived age is within [0,120]
	// (and at least Field.MinAge when set).
	RuleBirthDate RuleKind = "birth_date"
	// RuleDigits accepts digits only.
	RuleDigits RuleKind = "digits"
)

// PhoneKind selects the joined-number rule for a composite phone field.
type PhoneKind string

const (
	// PhoneNone means the field is not a phone composite.
	PhoneNone PhoneKind = ""
	// PhoneMobile requires 10-11 digits starting 0, then 7/8/9, then 0.
	PhoneMobile PhoneKind = "mobile"
	// PhoneLandline requires 10-11 digits with a leading 0.
	PhoneLandline PhoneKind = "landline"
)

// Messages holds per-field overrides for the generated error messages.
// Empty entries fall back to templates derived from the field label.
type Messages struct {
	Required string `yaml:"required,omitempty"`
	Format   string `yaml:"format,omitempty"`
	Range    string `yaml:"range,omitempty"`
	Mismatch string `yaml:"mismatch,omitempty"`
}

// Field describes one logical field of a record.
type Field struct {
	// Path is the record key. Unique within a schema.
	Path string `yaml:"path"`

	// Label is the human-readable name used in generated messages.
	// Defaults to Path.
	Label string `yaml:"label,omitempty"`

	// Required marks the empty string as an error.
	Required bool `yaml:"required,omitempty"`

	// Rule is the format rule applied to non-empty values.
	Rule RuleKind `yaml:"rule,omitempty"`

	// ConfirmOf names the path this field must equal. The mismatch error
	// attaches to this field, never to the paired one, and only fires while
	// the paired field is non-empty.
	ConfirmOf string `yaml:"confirm_of,omitempty"`

	// Segments lists the ordered sub-input paths of a composite field.
	// The joined value is validated only once every segment is populated,
	// and the error attaches to this field's Path.
	Segments []string `yaml:"segments,omitempty"`

	// Phone selects the joined-number rule for a composite phone field.
	Phone PhoneKind `yaml:"phone,omitempty"`

	// MinAge adds a lower age bound on top of [0,120] for birth-date fields.
	MinAge int `yaml:"min_age,omitempty"`

	// Messages overrides the generated error messages.
	Messages Messages `yaml:"messages,omitempty"`
}

// DisplayName returns the label, falling back to the path.
func (f Field) DisplayName() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Path
}

// Composite reports whether the field is assembled from segment sub-inputs.
func (f Field) Composite() bool {
	return len(f.Segments) > 0
}

// Schema is an ordered set of field descriptors for one record.
type Schema struct {
	name   string
	fields []Field
	byPath map[string]int
}

// New builds a schema, rejecting duplicate field paths.
func New(name string, fields ...Field) (*Schema, error) {
	s := &Schema{
		name:   name,
		fields: fields,
		byPath: make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if f.Path == "" {
			return nil, fmt.Errorf("schema %q: field %d has empty path", name, i)
		}
		if _, dup := s.byPath[f.Path]; dup {
			return nil, fmt.Errorf("schema %q: duplicate field path %q", name, f.Path)
		}
		s.byPath[f.Path] = i
	}
	return s, nil
}

// MustNew is New for statically known schemas; it panics on error.
func MustNew(name string, fields ...Field) *Schema {
	s, err := New(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the schema name.
func (s *Schema) Name() string {
	return s.name
}

// Fields returns the descriptors in declaration order.
func (s *Schema) Fields() []Field {
	return s.fields
}

// Field looks up a descriptor by path.
func (s *Schema) Field(path string) (Field, bool) {
	i, ok := s.byPath[path]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Has reports whether the path is declared, either as a descriptor or as a
// segment of a composite field.
func (s *Schema) Has(path string) bool {
	if _, ok := s.byPath[path]; ok {
		return true
	}
	for _, f := range s.fields {
		for _, seg := range f.Segments {
			if seg == path {
				return true
			}
		}
	}
	return false
}

// Dependents returns every descriptor whose validity depends on the given
// path beyond the path's own descriptor: confirmation pairs and composite
// fields that include it as a segment. Callers re-trigger validation for
// these whenever the path changes.
func (s *Schema) Dependents(path string) []Field {
	var out []Field
	for _, f := range s.fields {
		if f.ConfirmOf == path {
			out = append(out, f)
			continue
		}
		for _, seg := range f.Segments {
			if seg == path {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// WithPrefix derives a schema whose every path (including confirmation
// targets and segments) is namespaced under prefix. Used for repeated
// sub-records like "beneficiary." and "agent." person blocks.
func (s *Schema) WithPrefix(prefix string) *Schema {
	fields := make([]Field, len(s.fields))
	for i, f := range s.fields {
		nf := f
		nf.Path = prefix + f.Path
		if f.ConfirmOf != "" {
			nf.ConfirmOf = prefix + f.ConfirmOf
		}
		if len(f.Segments) > 0 {
			nf.Segments = make([]string, len(f.Segments))
			for j, seg := range f.Segments {
				nf.Segments[j] = prefix + seg
			}
		}
		fields[i] = nf
	}
	name := strings.TrimSuffix(prefix, ".")
	if name == "" {
		name = s.name
	}
	return MustNew(name, fields...)
}
