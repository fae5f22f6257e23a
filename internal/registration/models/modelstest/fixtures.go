// Package modelstest provides valid step payloads for tests. Every payload
// passes validation for a "today" of 2024-06-15.
package modelstest

import (
	"time"

	"github.com/shopspring/decimal"

	"signup/internal/registration/models"
)

// Today is the date the fixtures are valid on.
var Today = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

const (
	Email    = "jane@example.com"
	Password = "Secur3!pass"
)

func Account() models.AccountCreation {
	return models.AccountCreation{
		Email:           Email,
		Password:        Password,
		ConfirmPassword: Password,
		AcceptTerms:     true,
	}
}

func Personal() models.PersonalDetailsPayload {
	return models.PersonalDetailsPayload{PersonalDetails: models.PersonalDetails{
		Personal: models.PersonalInfo{
			FirstName:   "Jane",
			LastName:    "Doe",
			DateOfBirth: "1980-01-02",
			SSN:         "123-45-6789",
			Phone:       "555-123-4567",
		},
		Address: models.Address{Street: "1 Main St", City: "Austin", State: "TX", ZIP: "78701"},
	}}
}

func KYC() models.KYCIdentityPayload {
	return models.KYCIdentityPayload{KYCIdentity: models.KYCIdentity{
		GovernmentIDType:  models.GovernmentIDDriverLicense,
		IDNumber:          "D1234567",
		IssuingState:      "TX",
		ExpirationDate:    "2030-01-01",
		IDFrontImageURL:   "uploads/front.png",
		IDBackImageURL:    "uploads/back.png",
		ProofOfAddressURL: "uploads/utility.pdf",
	}}
}

func Employment() models.EmploymentFinancialPayload {
	return models.EmploymentFinancialPayload{EmploymentFinancial: models.EmploymentFinancial{
		EmploymentStatus:  models.EmploymentRetired,
		AnnualIncomeRange: "50k-100k",
		NetWorthRange:     "250k-500k",
		SourceOfFunds:     []string{"retirement-plan"},
	}}
}

func IRAType() models.IRATypePayload {
	return models.IRATypePayload{IRAType: models.IRAType{IRAType: models.IRARoth, Purpose: "retirement"}}
}

func Beneficiaries() models.BeneficiariesPayload {
	return models.BeneficiariesPayload{Beneficiaries: models.Beneficiaries{
		PrimaryBeneficiaries: []models.Beneficiary{{
			ID:                   "b1",
			FullName:             "Sam Doe",
			Relationship:         "child",
			DateOfBirth:          "2005-04-01",
			SSN:                  "987-65-4321",
			Type:                 models.BeneficiaryPrimary,
			AllocationPercentage: 100,
		}},
	}}
}

func Funding() models.FundingMethodPayload {
	return models.FundingMethodPayload{FundingMethodData: models.FundingMethodData{
		Methods: []models.FundingMethod{models.TransferFunding{
			CurrentCustodian: "Old Custodian",
			AccountType:      "traditional",
			AccountNumber:    "12345678",
			EstimatedAmount:  models.NewAmount(decimal.NewFromInt(25000)),
		}},
	}}
}

func Investments() models.InvestmentPreferencesPayload {
	return models.InvestmentPreferencesPayload{InvestmentPreferences: models.InvestmentPreferences{
		AssetTypes: []string{models.AssetRealEstate},
		RiskAcknowledgments: models.RiskAcknowledgments{
			UnderstandsNonTraditionalRisks:    true,
			AcceptsResponsibilityForDecisions: true,
		},
	}}
}

func Agreements() models.AgreementsPayload {
	return models.AgreementsPayload{Agreements: models.Agreements{
		Agreements: []models.AgreementRecord{
			{DocumentName: "IRA Adoption Agreement", DocumentURL: "/docs/adoption.pdf", Accepted: true},
		},
		ESignatureType: models.SignatureTyped,
		SignatureName:  "Jane Doe",
		SignatureDate:  "2024-06-15",
	}}
}

func EmailSecurity() models.SecuritySetupPayload {
	return models.SecuritySetupPayload{SecuritySetup: models.SecuritySetup{TwoFAMethod: models.TwoFAEmail}}
}

// Payloads returns one valid payload per step, 2 through 10.
func Payloads() []models.StepPayload {
	return []models.StepPayload{
		Personal(),
		KYC(),
		Employment(),
		IRAType(),
		Beneficiaries(),
		Funding(),
		Investments(),
		Agreements(),
		EmailSecurity(),
	}
}
