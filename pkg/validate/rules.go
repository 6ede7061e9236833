package validate

import (
	"regexp"
	"time"
	"unicode/utf8"
)

// Rule literals. These are contractual: downstream steps and their stored
// records depend on exactly these shapes.
var (
	// cjkNamePattern accepts CJK ideographs only.
	cjkNamePattern = regexp.MustCompile(`^\p{Han}+$`)

	// katakanaPattern accepts full-width katakana and the prolonged sound mark.
	katakanaPattern = regexp.MustCompile(`^[ァ-ヶー]+$`)

	// postalCodePattern accepts exactly 7 digits, no separator.
	postalCodePattern = regexp.MustCompile(`^[0-9]{7}$`)

	// emailPattern accepts a conventional local@domain.tld shape. Length and
	// doubled-punctuation limits are enforced separately in checkEmail.
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

	// digitsPattern accepts digits only.
	digitsPattern = regexp.MustCompile(`^[0-9]+$`)

	// mobilePhonePattern accepts a joined 10-11 digit number starting
	// 0, then 7/8/9, then 0.
	mobilePhonePattern = regexp.MustCompile(`^0[789]0[0-9]{7,8}$`)

	// landlinePhonePattern accepts a joined 10-11 digit number with a leading 0.
	landlinePhonePattern = regexp.MustCompile(`^0[0-9]{9,10}$`)

	letterPattern = regexp.MustCompile(`[A-Za-z]`)
	digitPattern  = regexp.MustCompile(`[0-9]`)
)

const (
	maxEmailLength    = 254
	minPasswordLength = 6
	maxPasswordLength = 128
	minAgeYears       = 0
	maxAgeYears       = 120
	birthDateLayout   = "2006-01-02"
)

// checkEmail reports whether value is an acceptable email address.
func checkEmail(value string) bool {
	if len(value) > maxEmailLength {
		return false
	}
	if containsDoubledPunctuation(value) {
		return false
	}
	return emailPattern.MatchString(value)
}

func containsDoubledPunctuation(value string) bool {
	for i := 0; i+1 < len(value); i++ {
		if (value[i] == '.' && value[i+1] == '.') || (value[i] == '-' && value[i+1] == '-') {
			return true
		}
	}
	return false
}

// checkPassword reports whether value is an acceptable password: 6-128
// characters, at least one letter and one digit, and no character repeated
// three or more times consecutively. Length and runs both count runes.
func checkPassword(value string) bool {
	length := utf8.RuneCountInString(value)
	if length < minPasswordLength || length > maxPasswordLength {
		return false
	}
	if !letterPattern.MatchString(value) || !digitPattern.MatchString(value) {
		return false
	}
	return !hasTripleRun(value)
}

func hasTripleRun(value string) bool {
	run := 1
	runes := []rune(value)
	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1] {
			run++
			if run >= 3 {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}

// parseBirthDate parses an ISO date string.
func parseBirthDate(value string) (time.Time, bool) {
	t, err := time.Parse(birthDateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ageAt computes age in whole years via calendar subtraction with the
// month/day rollback: if now's month/day precedes the birth month/day, one
// more year is subtracted.
func ageAt(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}
