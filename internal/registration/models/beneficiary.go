package models

import (
	"fmt"

	"github.com/google/uuid"

	"signup/pkg/validation"
)

type BeneficiaryType string

const (
	BeneficiaryPrimary    BeneficiaryType = "primary"
	BeneficiaryContingent BeneficiaryType = "contingent"
)

// Beneficiary is one designated recipient. AllocationPercentage is a whole
// percentage; each non-empty bucket must total exactly 100.
type Beneficiary struct {
	ID                   string          `json:"id,omitempty"`
	FullName             string          `json:"fullName"`
	Relationship         string          `json:"relationship"`
	DateOfBirth          string          `json:"dateOfBirth"`
	SSN                  string          `json:"ssn"`
	Type                 BeneficiaryType `json:"type"`
	AllocationPercentage int             `json:"allocationPercentage"`
}

// NewBeneficiary returns an empty beneficiary with a fresh client-side id.
func NewBeneficiary(kind BeneficiaryType) Beneficiary {
	return Beneficiary{ID: uuid.NewString(), Type: kind}
}

func allocationOf(b Beneficiary) int { return b.AllocationPercentage }

// Beneficiaries is the step 6 payload.
type Beneficiaries struct {
	PrimaryBeneficiaries    []Beneficiary `json:"primaryBeneficiaries"`
	ContingentBeneficiaries []Beneficiary `json:"contingentBeneficiaries"`
}

// Validate reports per-beneficiary errors under name-<id>, rel-<id>, dob-<id>
// and ssn-<id>, plus bucket-level allocation errors.
func (b Beneficiaries) Validate() FieldErrors {
	errs := FieldErrors{}

	if len(b.PrimaryBeneficiaries) == 0 {
		errs.Set("primaryBeneficiaries", "At least one primary beneficiary is required")
	} else {
		if res := validation.BeneficiaryPercentages(b.PrimaryBeneficiaries, allocationOf); !res.Valid {
			errs.Set("primaryPercentage", "Primary beneficiary "+lowerFirst(res.Message))
		}
		validateBeneficiaryFields(b.PrimaryBeneficiaries, errs)
	}

	if len(b.ContingentBeneficiaries) > 0 {
		if res := validation.BeneficiaryPercentages(b.ContingentBeneficiaries, allocationOf); !res.Valid {
			errs.Set("contingentPercentage", "Contingent beneficiary "+lowerFirst(res.Message))
		}
		validateBeneficiaryFields(b.ContingentBeneficiaries, errs)
	}
	return errs
}

func validateBeneficiaryFields(list []Beneficiary, errs FieldErrors) {
	for i, b := range list {
		key := b.ID
		if key == "" {
			key = fmt.Sprintf("%s%d", b.Type, i)
		}
		if b.FullName == "" {
			errs.Set("name-"+key, "Name required")
		}
		if b.Relationship == "" {
			errs.Set("rel-"+key, "Relationship required")
		}
		if b.DateOfBirth == "" {
			errs.Set("dob-"+key, "DOB required")
		}
		if b.SSN == "" {
			errs.Set("ssn-"+key, "SSN required")
		}
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
