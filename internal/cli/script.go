package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"signup/internal/registration/models"
)

// Script holds the answers the CLI feeds to the wizard. Steps are keyed by
// the names in stepKeys; step 2 uses the flattened personal info shape.
type Script struct {
	Account          *models.AccountCreation    `json:"account,omitempty"`
	Login            *models.Credentials        `json:"login,omitempty"`
	Steps            map[string]json.RawMessage `json:"steps"`
	VerificationCode string                     `json:"verificationCode,omitempty"`
}

var stepKeys = map[models.Step]string{
	models.StepPersonalInfo:          "personal-info",
	models.StepKYCIdentity:           "kyc-identity",
	models.StepEmploymentFinancial:   "employment",
	models.StepIRAType:               "ira-type",
	models.StepBeneficiaries:         "beneficiaries",
	models.StepFundingMethod:         "funding",
	models.StepInvestmentPreferences: "investments",
	models.StepAgreements:            "agreements",
	models.StepSecuritySetup:         "security",
}

func LoadScript(path string) (*Script, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	var s Script
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse script %s: %w", path, err)
	}
	return &s, nil
}

// Payload decodes the answers for step. It returns nil when the script has
// none.
func (s *Script) Payload(step models.Step) (models.StepPayload, error) {
	key, ok := stepKeys[step]
	if !ok {
		return nil, fmt.Errorf("step %d has no script entry", step)
	}
	raw, ok := s.Steps[key]
	if !ok {
		return nil, nil
	}

	var (
		payload models.StepPayload
		err     error
	)
	switch step {
	case models.StepPersonalInfo:
		payload, err = decode(raw, func(v models.PersonalInfoRequest) models.StepPayload {
			return models.PersonalDetailsPayload{PersonalDetails: v.Split()}
		})
	case models.StepKYCIdentity:
		payload, err = decode(raw, func(v models.KYCIdentity) models.StepPayload {
			return models.KYCIdentityPayload{KYCIdentity: v}
		})
	case models.StepEmploymentFinancial:
		payload, err = decode(raw, func(v models.EmploymentFinancial) models.StepPayload {
			return models.EmploymentFinancialPayload{EmploymentFinancial: v}
		})
	case models.StepIRAType:
		payload, err = decode(raw, func(v models.IRAType) models.StepPayload {
			return models.IRATypePayload{IRAType: v}
		})
	case models.StepBeneficiaries:
		payload, err = decode(raw, func(v models.Beneficiaries) models.StepPayload {
			return models.BeneficiariesPayload{Beneficiaries: v}
		})
	case models.StepFundingMethod:
		payload, err = decode(raw, func(v models.FundingMethodData) models.StepPayload {
			return models.FundingMethodPayload{FundingMethodData: v}
		})
	case models.StepInvestmentPreferences:
		payload, err = decode(raw, func(v models.InvestmentPreferences) models.StepPayload {
			return models.InvestmentPreferencesPayload{InvestmentPreferences: v}
		})
	case models.StepAgreements:
		payload, err = decode(raw, func(v models.Agreements) models.StepPayload {
			return models.AgreementsPayload{Agreements: v}
		})
	case models.StepSecuritySetup:
		payload, err = decode(raw, func(v models.SecuritySetup) models.StepPayload {
			return models.SecuritySetupPayload{SecuritySetup: v}
		})
	}
	if err != nil {
		return nil, fmt.Errorf("script entry %q: %w", key, err)
	}
	return payload, nil
}

func decode[T any](raw json.RawMessage, wrap func(T) models.StepPayload) (models.StepPayload, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return wrap(v), nil
}
