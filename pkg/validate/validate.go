package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/enform/pkg/domain"
	"github.com/aretw0/enform/pkg/schema"
)

// Validator evaluates records against schemas. It is stateless apart from
// the injected clock used for age computation.
type Validator struct {
	now func() time.Time
}

// Option configures the Validator.
type Option func(*Validator)

// WithNow injects the clock used for age computation. Defaults to time.Now.
func WithNow(now func() time.Time) Option {
	return func(v *Validator) {
		v.now = now
	}
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Record validates every field of the record and returns a fresh error map.
// The map is rebuilt wholesale; no result from a previous run survives.
func (v *Validator) Record(s *schema.Schema, rec domain.Record) domain.ErrorMap {
	errs := make(domain.ErrorMap)
	for _, f := range s.Fields() {
		errs.Set(f.Path, v.check(f, rec))
	}
	return errs
}

// Field validates the single descriptor at path against the record and
// returns its message, or "" when the field is valid. Cross-field and
// composite rules read their dependency paths from the record.
func (v *Validator) Field(s *schema.Schema, rec domain.Record, path string) string {
	f, ok := s.Field(path)
	if !ok {
		return ""
	}
	return v.check(f, rec)
}

// Affected returns the paths whose validity can change when path changes:
// the path itself plus every confirmation pair and composite field that
// depends on it. Callers revalidate all of them on a single mutation.
func Affected(s *schema.Schema, path string) []string {
	paths := []string{path}
	for _, f := range s.Dependents(path) {
		paths = append(paths, f.Path)
	}
	return paths
}

// check applies the rule priority for one descriptor:
// required, format, computed range, cross-field equality.
func (v *Validator) check(f schema.Field, rec domain.Record) string {
	if f.Composite() {
		return v.checkComposite(f, rec)
	}

	value := rec[f.Path]

	if value == "" {
		if f.Required {
			return message(f.Messages.Required, "%s is required", f)
		}
		return ""
	}

	if msg := v.checkFormat(f, value); msg != "" {
		return msg
	}

	if f.ConfirmOf != "" {
		paired := rec[f.ConfirmOf]
		if paired != "" && value != paired {
			return message(f.Messages.Mismatch, "%s does not match", f)
		}
	}

	return ""
}

// checkComposite joins the segments and validates the result. The joined
// value is tested only once every segment is populated; until then the
// composite is silent (segments carry their own required rules).
func (v *Validator) checkComposite(f schema.Field, rec domain.Record) string {
	var joined strings.Builder
	for _, seg := range f.Segments {
		part := rec[seg]
		if part == "" {
			return ""
		}
		joined.WriteString(part)
	}

	value := joined.String()
	switch f.Phone {
	case schema.PhoneMobile:
		if !mobilePhonePattern.MatchString(value) {
			return message(f.Messages.Format, "%s is not a valid mobile number", f)
		}
	case schema.PhoneLandline:
		if !landlinePhonePattern.MatchString(value) {
			return message(f.Messages.Format, "%s is not a valid phone number", f)
		}
	}
	return ""
}

func (v *Validator) checkFormat(f schema.Field, value string) string {
	switch f.Rule {
	case schema.RuleCJKName:
		if !cjkNamePattern.MatchString(value) {
			return message(f.Messages.Format, "%s must use kanji characters", f)
		}
	case schema.RuleKatakana:
		if !katakanaPattern.MatchString(value) {
			return message(f.Messages.Format, "%s must use katakana characters", f)
		}
	case schema.RulePostalCode:
		if !postalCodePattern.MatchString(value) {
			return message(f.Messages.Format, "%s must be 7 digits", f)
		}
	case schema.RuleEmail:
		if !checkEmail(value) {
			return message(f.Messages.Format, "%s is not a valid email address", f)
		}
	case schema.RulePassword:
		if !checkPassword(value) {
			return message(f.Messages.Format, "%s must be 6-128 characters with letters and digits, without repeated runs", f)
		}
	case schema.RuleDigits:
		if !digitsPattern.MatchString(value) {
			return message(f.Messages.Format, "%s must contain digits only", f)
		}
	case schema.RuleBirthDate:
		return v.checkBirthDate(f, value)
	}
	return ""
}

func (v *Validator) checkBirthDate(f schema.Field, value string) string {
	birth, ok := parseBirthDate(value)
	if !ok {
		return message(f.Messages.Format, "%s is not a valid date", f)
	}

	age := ageAt(birth, v.now())
	if age < minAgeYears || age > maxAgeYears {
		return message(f.Messages.Range, "%s is out of range", f)
	}
	if f.MinAge > 0 && age < f.MinAge {
		if f.Messages.Range != "" {
			return f.Messages.Range
		}
		return fmt.Sprintf("%s does not meet the minimum age of %d", f.DisplayName(), f.MinAge)
	}
	return ""
}

// message resolves an override or formats the default template with the
// field's display name. Message output is deterministic per field.
func message(override, template string, f schema.Field) string {
	if override != "" {
		return override
	}
	return fmt.Sprintf(template, f.DisplayName())
}
