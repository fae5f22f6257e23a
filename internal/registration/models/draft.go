package models

import (
	"encoding/json"
	"fmt"
)

// RegistrationDraft is the union of every step's data collected so far. A nil
// section has not been started. Passwords are never kept; see Sanitized.
type RegistrationDraft struct {
	AccountCreation       *AccountCreation       `json:"accountCreation,omitempty"`
	PersonalInfo          *PersonalInfo          `json:"personalInfo,omitempty"`
	Address               *Address               `json:"address,omitempty"`
	KYCIdentity           *KYCIdentity           `json:"kycIdentity,omitempty"`
	EmploymentFinancial   *EmploymentFinancial   `json:"employmentFinancial,omitempty"`
	IRAType               *IRAType               `json:"iraType,omitempty"`
	Beneficiaries         *Beneficiaries         `json:"beneficiaries,omitempty"`
	FundingMethod         *FundingMethodData     `json:"fundingMethod,omitempty"`
	InvestmentPreferences *InvestmentPreferences `json:"investmentPreferences,omitempty"`
	Agreements            *Agreements            `json:"agreements,omitempty"`
	SecuritySetup         *SecuritySetup         `json:"securitySetup,omitempty"`
}

// Section is a typed draft sub-record that knows its key.
type Section interface {
	SectionKey() SectionKey
}

func (AccountCreation) SectionKey() SectionKey       { return SectionAccountCreation }
func (PersonalInfo) SectionKey() SectionKey          { return SectionPersonalInfo }
func (Address) SectionKey() SectionKey               { return SectionAddress }
func (KYCIdentity) SectionKey() SectionKey           { return SectionKYCIdentity }
func (EmploymentFinancial) SectionKey() SectionKey   { return SectionEmploymentFinancial }
func (IRAType) SectionKey() SectionKey               { return SectionIRAType }
func (Beneficiaries) SectionKey() SectionKey         { return SectionBeneficiaries }
func (FundingMethodData) SectionKey() SectionKey     { return SectionFundingMethod }
func (InvestmentPreferences) SectionKey() SectionKey { return SectionInvestmentPreferences }
func (Agreements) SectionKey() SectionKey            { return SectionAgreements }
func (SecuritySetup) SectionKey() SectionKey         { return SectionSecuritySetup }

// Set replaces the section wholesale. Fields are never merged.
func (d *RegistrationDraft) Set(s Section) {
	switch v := s.(type) {
	case AccountCreation:
		d.AccountCreation = &v
	case PersonalInfo:
		d.PersonalInfo = &v
	case Address:
		d.Address = &v
	case KYCIdentity:
		d.KYCIdentity = &v
	case EmploymentFinancial:
		d.EmploymentFinancial = &v
	case IRAType:
		d.IRAType = &v
	case Beneficiaries:
		d.Beneficiaries = &v
	case FundingMethodData:
		d.FundingMethod = &v
	case InvestmentPreferences:
		d.InvestmentPreferences = &v
	case Agreements:
		d.Agreements = &v
	case SecuritySetup:
		d.SecuritySetup = &v
	}
}

// Has reports whether the section has been started.
func (d RegistrationDraft) Has(key SectionKey) bool {
	switch key {
	case SectionAccountCreation:
		return d.AccountCreation != nil
	case SectionPersonalInfo:
		return d.PersonalInfo != nil
	case SectionAddress:
		return d.Address != nil
	case SectionKYCIdentity:
		return d.KYCIdentity != nil
	case SectionEmploymentFinancial:
		return d.EmploymentFinancial != nil
	case SectionIRAType:
		return d.IRAType != nil
	case SectionBeneficiaries:
		return d.Beneficiaries != nil
	case SectionFundingMethod:
		return d.FundingMethod != nil
	case SectionInvestmentPreferences:
		return d.InvestmentPreferences != nil
	case SectionAgreements:
		return d.Agreements != nil
	case SectionSecuritySetup:
		return d.SecuritySetup != nil
	}
	return false
}

// Sanitized returns a copy with account passwords removed.
func (d RegistrationDraft) Sanitized() RegistrationDraft {
	if d.AccountCreation != nil {
		clean := d.AccountCreation.Sanitized()
		d.AccountCreation = &clean
	}
	return d
}

// Clone returns a deep copy by round-tripping through JSON.
func (d RegistrationDraft) Clone() RegistrationDraft {
	b, err := json.Marshal(d)
	if err != nil {
		return d
	}
	var out RegistrationDraft
	if err := json.Unmarshal(b, &out); err != nil {
		return d
	}
	return out
}

// DecodeSection parses raw JSON for the given key into its typed section.
func DecodeSection(key SectionKey, raw json.RawMessage) (Section, error) {
	var (
		section Section
		err     error
	)
	switch key {
	case SectionAccountCreation:
		section, err = decodeAs[AccountCreation](raw)
	case SectionPersonalInfo:
		section, err = decodeAs[PersonalInfo](raw)
	case SectionAddress:
		section, err = decodeAs[Address](raw)
	case SectionKYCIdentity:
		section, err = decodeAs[KYCIdentity](raw)
	case SectionEmploymentFinancial:
		section, err = decodeAs[EmploymentFinancial](raw)
	case SectionIRAType:
		section, err = decodeAs[IRAType](raw)
	case SectionBeneficiaries:
		section, err = decodeAs[Beneficiaries](raw)
	case SectionFundingMethod:
		section, err = decodeAs[FundingMethodData](raw)
	case SectionInvestmentPreferences:
		section, err = decodeAs[InvestmentPreferences](raw)
	case SectionAgreements:
		section, err = decodeAs[Agreements](raw)
	case SectionSecuritySetup:
		section, err = decodeAs[SecuritySetup](raw)
	default:
		return nil, fmt.Errorf("unknown section %q", key)
	}
	if err != nil {
		return nil, fmt.Errorf("decode section %s: %w", key, err)
	}
	return section, nil
}

func decodeAs[T Section](raw json.RawMessage) (Section, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}
