package models

// Step is a wizard position, 1 through 10.
type Step int

const (
	StepAccountCreation Step = iota + 1
	StepPersonalInfo
	StepKYCIdentity
	StepEmploymentFinancial
	StepIRAType
	StepBeneficiaries
	StepFundingMethod
	StepInvestmentPreferences
	StepAgreements
	StepSecuritySetup
)

const (
	FirstStep = StepAccountCreation
	LastStep  = StepSecuritySetup
)

var stepTitles = map[Step]string{
	StepAccountCreation:       "Welcome & Account Creation",
	StepPersonalInfo:          "Personal & Identity Information",
	StepKYCIdentity:           "Identity Verification (KYC/AML)",
	StepEmploymentFinancial:   "Employment & Financial Profile",
	StepIRAType:               "IRA Type & Purpose",
	StepBeneficiaries:         "Beneficiaries",
	StepFundingMethod:         "Funding Method",
	StepInvestmentPreferences: "Investment Preferences & Risk",
	StepAgreements:            "Agreements & Signature",
	StepSecuritySetup:         "Security Setup & Confirmation",
}

func (s Step) IsValid() bool {
	return s >= FirstStep && s <= LastStep
}

func (s Step) Title() string {
	return stepTitles[s]
}

// Clamp forces s into the 1..10 range.
func (s Step) Clamp() Step {
	switch {
	case s < FirstStep:
		return FirstStep
	case s > LastStep:
		return LastStep
	}
	return s
}

// SectionKey names a sub-record of the registration draft. The values are
// the wire and cache keys.
type SectionKey string

const (
	SectionAccountCreation       SectionKey = "accountCreation"
	SectionPersonalInfo          SectionKey = "personalInfo"
	SectionAddress               SectionKey = "address"
	SectionKYCIdentity           SectionKey = "kycIdentity"
	SectionEmploymentFinancial   SectionKey = "employmentFinancial"
	SectionIRAType               SectionKey = "iraType"
	SectionBeneficiaries         SectionKey = "beneficiaries"
	SectionFundingMethod         SectionKey = "fundingMethod"
	SectionInvestmentPreferences SectionKey = "investmentPreferences"
	SectionAgreements            SectionKey = "agreements"
	SectionSecuritySetup         SectionKey = "securitySetup"
)

// AllSections lists every draft section in wizard order.
var AllSections = []SectionKey{
	SectionAccountCreation,
	SectionPersonalInfo,
	SectionAddress,
	SectionKYCIdentity,
	SectionEmploymentFinancial,
	SectionIRAType,
	SectionBeneficiaries,
	SectionFundingMethod,
	SectionInvestmentPreferences,
	SectionAgreements,
	SectionSecuritySetup,
}
