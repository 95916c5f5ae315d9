package entity

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the canonical profile. Profile fields live in a flat key-value
// map so new fields need no schema or engine change.
type Customer struct {
	Id             uuid.UUID
	Fields         map[string]interface{}
	AdditionalData map[string]interface{}
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (c *Customer) StringField(key string) string {
	if c == nil || c.Fields == nil {
		return ""
	}
	if v, ok := c.Fields[key].(string); ok {
		return v
	}
	return ""
}

func (c *Customer) FullName() string      { return c.StringField(FieldFullName) }
func (c *Customer) PrimaryMobile() string { return c.StringField(FieldPrimaryMobile) }

// Profile field keys.
const (
	FieldFullName        = "fullName"
	FieldPreferredName   = "preferredName"
	FieldDateOfBirth     = "dateOfBirth"
	FieldGender          = "gender"
	FieldPrimaryMobile   = "primaryMobile"
	FieldSecondaryMobile = "secondaryMobile"
	FieldWhatsappNumber  = "whatsappNumber"
	FieldEmailPrimary    = "emailPrimary"
	FieldEmailSecondary  = "emailSecondary"
	FieldCityOfResidence = "cityOfResidence"
	FieldOccupation      = "occupation"
	FieldEmployer        = "employer"
	FieldAnnualIncome    = "annualIncome"
	FieldNetWorth        = "netWorth"
	FieldRiskAppetite    = "riskAppetite"
	FieldInvestmentGoal  = "investmentHorizon"
	FieldPreferredLang   = "preferredLanguage"
	FieldPreferredTime   = "preferredContactTime"
)

var (
	PhoneFieldKeys = []string{FieldPrimaryMobile, FieldSecondaryMobile, FieldWhatsappNumber}
	EmailFieldKeys = []string{FieldEmailPrimary, FieldEmailSecondary}
)

// ReservedFieldKeys are managed by the store and never written by callers.
var ReservedFieldKeys = map[string]bool{
	"id":        true,
	"createdAt": true,
	"updatedAt": true,
}

func IsReservedField(key string) bool {
	return ReservedFieldKeys[key]
}

type FieldKind string

const (
	FieldKindText   FieldKind = "text"
	FieldKindPhone  FieldKind = "phone"
	FieldKindEmail  FieldKind = "email"
	FieldKindNumber FieldKind = "number"
	FieldKindDate   FieldKind = "date"
)

type FieldGroup string

const (
	FieldGroupIdentity   FieldGroup = "identity"
	FieldGroupContact    FieldGroup = "contact"
	FieldGroupFinancial  FieldGroup = "financial"
	FieldGroupPreference FieldGroup = "preference"
)

type FieldDefinition struct {
	Key   string
	Label string
	Kind  FieldKind
	Group FieldGroup
}

// FieldCatalog describes the known profile fields. Keys outside the catalog are
// still stored; the catalog only drives labels and input hints.
var FieldCatalog = map[string]FieldDefinition{
	FieldFullName:        {FieldFullName, "full name", FieldKindText, FieldGroupIdentity},
	FieldPreferredName:   {FieldPreferredName, "preferred name", FieldKindText, FieldGroupIdentity},
	FieldDateOfBirth:     {FieldDateOfBirth, "date of birth", FieldKindDate, FieldGroupIdentity},
	FieldGender:          {FieldGender, "gender", FieldKindText, FieldGroupIdentity},
	FieldPrimaryMobile:   {FieldPrimaryMobile, "primary mobile number", FieldKindPhone, FieldGroupContact},
	FieldSecondaryMobile: {FieldSecondaryMobile, "secondary mobile number", FieldKindPhone, FieldGroupContact},
	FieldWhatsappNumber:  {FieldWhatsappNumber, "WhatsApp number", FieldKindPhone, FieldGroupContact},
	FieldEmailPrimary:    {FieldEmailPrimary, "primary email", FieldKindEmail, FieldGroupContact},
	FieldEmailSecondary:  {FieldEmailSecondary, "secondary email", FieldKindEmail, FieldGroupContact},
	FieldCityOfResidence: {FieldCityOfResidence, "city of residence", FieldKindText, FieldGroupContact},
	FieldOccupation:      {FieldOccupation, "occupation", FieldKindText, FieldGroupFinancial},
	FieldEmployer:        {FieldEmployer, "employer", FieldKindText, FieldGroupFinancial},
	FieldAnnualIncome:    {FieldAnnualIncome, "annual income", FieldKindNumber, FieldGroupFinancial},
	FieldNetWorth:        {FieldNetWorth, "net worth", FieldKindNumber, FieldGroupFinancial},
	FieldRiskAppetite:    {FieldRiskAppetite, "risk appetite", FieldKindText, FieldGroupFinancial},
	FieldInvestmentGoal:  {FieldInvestmentGoal, "investment horizon", FieldKindText, FieldGroupFinancial},
	FieldPreferredLang:   {FieldPreferredLang, "preferred language", FieldKindText, FieldGroupPreference},
	FieldPreferredTime:   {FieldPreferredTime, "preferred contact time", FieldKindText, FieldGroupPreference},
}

// LookupField returns the catalog entry for key, falling back to a plain text field.
func LookupField(key string) FieldDefinition {
	if def, ok := FieldCatalog[key]; ok {
		return def
	}
	return FieldDefinition{Key: key, Label: key, Kind: FieldKindText}
}
