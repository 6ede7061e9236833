package validate_test

import (
	"testing"
	"time"

	"github.com/aretw0/enform/pkg/domain"
	"github.com/aretw0/enform/pkg/schema"
	"github.com/aretw0/enform/pkg/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow(t *testing.T, value string) func() time.Time {
	t.Helper()
	now, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return func() time.Time { return now }
}

func TestRequiredFields(t *testing.T) {
	v := validate.New()
	s := schema.Person()

	rec := domain.NewRecord()
	errs := v.Record(s, rec)

	for _, f := range s.Fields() {
		if !f.Required {
			continue
		}
		msg, ok := errs[f.Path]
		require.True(t, ok, "required field %s should have an error", f.Path)
		assert.Equal(t, f.DisplayName()+" is required", msg, "required message should be stable")
	}
}

func TestCJKNameRule(t *testing.T) {
	v := validate.New()
	s := schema.Person()

	valid := []string{"山田", "佐藤", "渡辺"}
	for _, name := range valid {
		rec := domain.Record{"surname": name}
		assert.Empty(t, v.Field(s, rec, "surname"), "valid CJK name %q", name)
	}

	invalid := []string{"ヤマダ", "yamada", "山田a", "山 田"}
	for _, name := range invalid {
		rec := domain.Record{"surname": name}
		msg := v.Field(s, rec, "surname")
		require.NotEmpty(t, msg, "non-CJK name %q", name)
		assert.Contains(t, msg, "kanji", "format error, not the required error")
	}
}

func TestKatakanaRule(t *testing.T) {
	v := validate.New()
	s := schema.Person()

	assert.Empty(t, v.Field(s, domain.Record{"kanaSurname": "ヤマダ"}, "kanaSurname"))
	assert.Empty(t, v.Field(s, domain.Record{"kanaSurname": "スズキー"}, "kanaSurname"))
	assert.NotEmpty(t, v.Field(s, domain.Record{"kanaSurname": "やまだ"}, "kanaSurname"))
	assert.NotEmpty(t, v.Field(s, domain.Record{"kanaSurname": "山田"}, "kanaSurname"))
}

func TestPostalCodeRule(t *testing.T) {
	v := validate.New()
	s := schema.CustomerInfo()

	assert.Empty(t, v.Field(s, domain.Record{"postalCode": "1500001"}, "postalCode"))
	assert.NotEmpty(t, v.Field(s, domain.Record{"postalCode": "150-0001"}, "postalCode"))
	assert.NotEmpty(t, v.Field(s, domain.Record{"postalCode": "150000"}, "postalCode"))
	assert.NotEmpty(t, v.Field(s, domain.Record{"postalCode": "15000011"}, "postalCode"))
}

func TestAgeRollback(t *testing.T) {
	s := schema.Person()

	// The day before the birthday: the rollback keeps the age at 33.
	v := validate.New(validate.WithNow(fixedNow(t, "2024-05-11")))
	assert.Empty(t, v.Field(s, domain.Record{"birthDate": "1990-05-12"}, "birthDate"))

	// Age 33 is fine for a person record; the enrollment schema adds the
	// 18-year floor.
	enroll := schema.CustomerInfo()
	assert.Empty(t, v.Field(enroll, domain.Record{"birthDate": "1990-05-12"}, "birthDate"))
	assert.NotEmpty(t, v.Field(enroll, domain.Record{"birthDate": "2010-01-01"}, "birthDate"),
		"under 18 must be rejected by the enrollment schema")
	assert.Empty(t, v.Field(s, domain.Record{"birthDate": "2010-01-01"}, "birthDate"),
		"under 18 is fine for a plain person record")
}

func TestAgeBounds(t *testing.T) {
	v := validate.New(validate.WithNow(fixedNow(t, "2024-05-11")))
	s := schema.Person()

	assert.NotEmpty(t, v.Field(s, domain.Record{"birthDate": "2025-01-01"}, "birthDate"),
		"future birth dates yield a negative age")
	assert.NotEmpty(t, v.Field(s, domain.Record{"birthDate": "1900-01-01"}, "birthDate"),
		"age over 120 is out of range")
	assert.NotEmpty(t, v.Field(s, domain.Record{"birthDate": "12 May 1990"}, "birthDate"),
		"unparseable dates are format errors")
}

func TestPasswordRule(t *testing.T) {
	v := validate.New()
	s := schema.CustomerInfo()

	cases := []struct {
		password string
		valid    bool
	}{
		{"abc123", true},
		{"aaa111", false}, // 3+ run of 'a'
		{"abcdef", false}, // no digit
		{"123456", false}, // no letter
		{"ab12", false},   // too short
		{"a1b2c3d4", true},
		{"あa1ん", false},      // 4 characters even though 8 bytes
		{"あいうa1えおか", true}, // multibyte characters count once each
	}
	for _, tc := range cases {
		msg := v.Field(s, domain.Record{"password": tc.password}, "password")
		if tc.valid {
			assert.Empty(t, msg, "password %q should be valid", tc.password)
		} else {
			assert.NotEmpty(t, msg, "password %q should be invalid", tc.password)
		}
	}
}

func TestEmailRule(t *testing.T) {
	v := validate.New()
	s := schema.CustomerInfo()

	assert.Empty(t, v.Field(s, domain.Record{"email": "a@b.com"}, "email"))
	assert.NotEmpty(t, v.Field(s, domain.Record{"email": "a..b@c.com"}, "email"), "doubled dots")
	assert.NotEmpty(t, v.Field(s, domain.Record{"email": "a@b--c.com"}, "email"), "doubled dashes")
	assert.NotEmpty(t, v.Field(s, domain.Record{"email": "not-an-email"}, "email"))

	long := ""
	for len(long) < 250 {
		long += "a"
	}
	assert.NotEmpty(t, v.Field(s, domain.Record{"email": long + "@b.com"}, "email"), "over 254 chars")
}

func TestEmailConfirmation(t *testing.T) {
	v := validate.New()
	s := schema.CustomerInfo()

	rec := domain.Record{"email": "a@b.com", "emailConfirm": "a@b.com"}
	assert.Empty(t, v.Field(s, rec, "emailConfirm"))
	assert.Empty(t, v.Field(s, rec, "email"))

	rec = domain.Record{"email": "a@b.com", "emailConfirm": "a@b.co"}
	assert.NotEmpty(t, v.Field(s, rec, "emailConfirm"), "mismatch attaches to the confirmation field")
	assert.Empty(t, v.Field(s, rec, "email"), "the paired field stays clean")

	// The mismatch only fires while the paired field is non-empty.
	rec = domain.Record{"email": "", "emailConfirm": "a@b.com"}
	assert.Empty(t, v.Field(s, rec, "emailConfirm"))
}

func TestPhoneComposite(t *testing.T) {
	v := validate.New()
	s := schema.CustomerInfo()

	// Silent until every segment is populated.
	rec := domain.Record{"mobilePhone1": "090", "mobilePhone2": "1234"}
	assert.Empty(t, v.Field(s, rec, "mobilePhone"))

	rec = domain.Record{"mobilePhone1": "090", "mobilePhone2": "1234", "mobilePhone3": "5678"}
	assert.Empty(t, v.Field(s, rec, "mobilePhone"))

	rec = domain.Record{"mobilePhone1": "060", "mobilePhone2": "1234", "mobilePhone3": "5678"}
	assert.NotEmpty(t, v.Field(s, rec, "mobilePhone"), "mobile numbers start 070/080/090")

	rec = domain.Record{"mobilePhone1": "090", "mobilePhone2": "12", "mobilePhone3": "34"}
	assert.NotEmpty(t, v.Field(s, rec, "mobilePhone"), "joined number must be 10-11 digits")

	rec = domain.Record{"homePhone1": "03", "homePhone2": "1234", "homePhone3": "5678"}
	assert.Empty(t, v.Field(s, rec, "homePhone"))

	rec = domain.Record{"homePhone1": "3", "homePhone2": "1234", "homePhone3": "5678"}
	assert.NotEmpty(t, v.Field(s, rec, "homePhone"), "landline needs a leading 0")
}

func TestAffected(t *testing.T) {
	s := schema.CustomerInfo()

	paths := validate.Affected(s, "email")
	assert.Contains(t, paths, "email")
	assert.Contains(t, paths, "emailConfirm")

	paths = validate.Affected(s, "mobilePhone2")
	assert.Contains(t, paths, "mobilePhone2")
	assert.Contains(t, paths, "mobilePhone")
}

func TestRecordRebuildsWholesale(t *testing.T) {
	v := validate.New()
	s := schema.CustomerInfo()

	rec := domain.Record{"postalCode": "abc"}
	errs := v.Record(s, rec)
	assert.NotEmpty(t, errs["postalCode"])

	rec["postalCode"] = "1500001"
	errs = v.Record(s, rec)
	assert.Empty(t, errs["postalCode"], "no stale error survives revalidation of the same path")
}
