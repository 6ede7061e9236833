package schema

// Built-in schemas for the enrollment flow. Each function returns a fresh
// value so callers can derive prefixed copies without aliasing.

// Person describes an insured person or beneficiary: name pair, kana pair,
// birth date, gender and relation to the contractor.
func Person() *Schema {
	return MustNew("person",
		Field{Path: "surname", Label: "Surname", Required: true, Rule: RuleCJKName},
		Field{Path: "givenName", Label: "Given name", Required: true, Rule: RuleCJKName},
		Field{Path: "kanaSurname", Label: "Surname (kana)", Required: true, Rule: RuleKatakana},
		Field{Path: "kanaGivenName", Label: "Given name (kana)", Required: true, Rule: RuleKatakana},
		Field{Path: "birthDate", Label: "Date of birth", Required: true, Rule: RuleBirthDate},
		Field{Path: "gender", Label: "Gender", Required: true},
		Field{Path: "relation", Label: "Relation", Required: true},
	)
}

// CustomerInfo describes the contractor: name, address, contact details and
// account credentials. The birth date carries the enrollment age floor.
func CustomerInfo() *Schema {
	return MustNew("customer",
		Field{Path: "surname", Label: "Surname", Required: true, Rule: RuleCJKName},
		Field{Path: "givenName", Label: "Given name", Required: true, Rule: RuleCJKName},
		Field{Path: "kanaSurname", Label: "Surname (kana)", Required: true, Rule: RuleKatakana},
		Field{Path: "kanaGivenName", Label: "Given name (kana)", Required: true, Rule: RuleKatakana},
		Field{Path: "birthDate", Label: "Date of birth", Required: true, Rule: RuleBirthDate, MinAge: 18},
		Field{Path: "postalCode", Label: "Postal code", Required: true, Rule: RulePostalCode},
		Field{Path: "prefecture", Label: "Prefecture", Required: true},
		Field{Path: "city", Label: "City", Required: true},
		Field{Path: "addressLine", Label: "Address", Required: true},
		Field{Path: "mobilePhone1", Label: "Mobile phone (1st block)", Required: true, Rule: RuleDigits},
		Field{Path: "mobilePhone2", Label: "Mobile phone (2nd block)", Required: true, Rule: RuleDigits},
		Field{Path: "mobilePhone3", Label: "Mobile phone (3rd block)", Required: true, Rule: RuleDigits},
		Field{Path: "mobilePhone", Label: "Mobile phone", Phone: PhoneMobile,
			Segments: []string{"mobilePhone1", "mobilePhone2", "mobilePhone3"}},
		Field{Path: "homePhone1", Label: "Home phone (1st block)", Rule: RuleDigits},
		Field{Path: "homePhone2", Label: "Home phone (2nd block)", Rule: RuleDigits},
		Field{Path: "homePhone3", Label: "Home phone (3rd block)", Rule: RuleDigits},
		Field{Path: "homePhone", Label: "Home phone", Phone: PhoneLandline,
			Segments: []string{"homePhone1", "homePhone2", "homePhone3"}},
		Field{Path: "email", Label: "Email address", Required: true, Rule: RuleEmail},
		Field{Path: "emailConfirm", Label: "Email address (confirmation)", Required: true, Rule: RuleEmail, ConfirmOf: "email"},
		Field{Path: "password", Label: "Password", Required: true, Rule: RulePassword},
		Field{Path: "passwordConfirm", Label: "Password (confirmation)", Required: true, ConfirmOf: "password"},
	)
}

// PaymentMethod describes the payment step: method choice plus the flags
// each method requires.
func PaymentMethod() *Schema {
	return MustNew("payment",
		Field{Path: "method", Label: "Payment method", Required: true},
		Field{Path: "cardHolder", Label: "Cardholder name", Rule: RuleKatakana},
		Field{Path: "accountHolder", Label: "Account holder name", Rule: RuleKatakana},
	)
}

// NoticeDeclaration describes the health-notice step: declared answers are
// free-form strings keyed per question, so only the acknowledgement field is
// declared here.
func NoticeDeclaration() *Schema {
	return MustNew("notice",
		Field{Path: "acknowledged", Label: "Notice acknowledgement", Required: true},
	)
}

// IdentityDocument describes the KYC step.
func IdentityDocument() *Schema {
	return MustNew("identity",
		Field{Path: "documentType", Label: "Document type", Required: true},
		Field{Path: "documentNumber", Label: "Document number", Required: true, Rule: RuleDigits},
	)
}
