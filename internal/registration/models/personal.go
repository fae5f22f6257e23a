package models

import (
	"time"

	"signup/pkg/validation"
)

type Citizenship string

const (
	CitizenshipUSCitizen   Citizenship = "us-citizen"
	CitizenshipResident    Citizenship = "resident-alien"
	CitizenshipNonResident Citizenship = "non-resident"
)

const (
	DefaultCountry     = "US"
	defaultCitizenship = CitizenshipUSCitizen
)

// PersonalInfo is the identity half of step 2.
type PersonalInfo struct {
	FirstName   string      `json:"firstName"`
	MiddleName  string      `json:"middleName,omitempty"`
	LastName    string      `json:"lastName"`
	DateOfBirth string      `json:"dateOfBirth"`
	Citizenship Citizenship `json:"citizenship"`
	SSN         string      `json:"ssn"`
	Phone       string      `json:"phone"`
}

// Address is the residential half of step 2.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZIP     string `json:"zip"`
	Country string `json:"country"`
}

// PersonalDetails is the full step 2 payload.
type PersonalDetails struct {
	Personal PersonalInfo
	Address  Address
}

// WithDefaults fills citizenship and country when the form left them blank.
func (p PersonalDetails) WithDefaults() PersonalDetails {
	if p.Personal.Citizenship == "" {
		p.Personal.Citizenship = defaultCitizenship
	}
	if p.Address.Country == "" {
		p.Address.Country = DefaultCountry
	}
	return p
}

// Validate checks required fields and formats. today anchors the age check.
func (p PersonalDetails) Validate(today time.Time) FieldErrors {
	errs := FieldErrors{}
	pi, addr := p.Personal, p.Address

	if pi.FirstName == "" {
		errs.Set("firstName", "First name is required")
	}
	if pi.LastName == "" {
		errs.Set("lastName", "Last name is required")
	}
	if pi.DateOfBirth == "" {
		errs.Set("dateOfBirth", "Date of birth is required")
	} else if res := validation.DateOfBirth(pi.DateOfBirth, today); !res.Valid {
		errs.Set("dateOfBirth", res.Message)
	}

	switch {
	case pi.SSN == "":
		errs.Set("ssn", "SSN is required")
	case !validation.SSN(pi.SSN):
		errs.Set("ssn", "Invalid SSN format (###-##-####)")
	}
	switch {
	case pi.Phone == "":
		errs.Set("phone", "Phone is required")
	case !validation.Phone(pi.Phone):
		errs.Set("phone", "Invalid phone format (###-###-####)")
	}

	if addr.Street == "" {
		errs.Set("street", "Address is required")
	} else if res := validation.Address(addr.Street); !res.Valid {
		errs.Set("street", res.Message)
	}
	if addr.City == "" {
		errs.Set("city", "City is required")
	}
	if addr.State == "" {
		errs.Set("state", "State is required")
	}
	switch {
	case addr.ZIP == "":
		errs.Set("zip", "ZIP code is required")
	case !validation.ZIP(addr.ZIP):
		errs.Set("zip", "Invalid ZIP format")
	}
	return errs
}

// PersonalInfoRequest is the flattened wire shape the personal-info endpoint
// expects: identity and address fields side by side.
type PersonalInfoRequest struct {
	FirstName   string      `json:"firstName"`
	MiddleName  string      `json:"middleName,omitempty"`
	LastName    string      `json:"lastName"`
	DateOfBirth string      `json:"dateOfBirth"`
	Citizenship Citizenship `json:"citizenship"`
	SSN         string      `json:"ssn"`
	Phone       string      `json:"phone"`
	Street      string      `json:"street"`
	City        string      `json:"city"`
	State       string      `json:"state"`
	ZIP         string      `json:"zip"`
	Country     string      `json:"country"`
}

// Flatten merges identity and address into one request body.
func (p PersonalDetails) Flatten() PersonalInfoRequest {
	return PersonalInfoRequest{
		FirstName:   p.Personal.FirstName,
		MiddleName:  p.Personal.MiddleName,
		LastName:    p.Personal.LastName,
		DateOfBirth: p.Personal.DateOfBirth,
		Citizenship: p.Personal.Citizenship,
		SSN:         p.Personal.SSN,
		Phone:       p.Personal.Phone,
		Street:      p.Address.Street,
		City:        p.Address.City,
		State:       p.Address.State,
		ZIP:         p.Address.ZIP,
		Country:     p.Address.Country,
	}
}

// Split is the inverse of Flatten.
func (r PersonalInfoRequest) Split() PersonalDetails {
	return PersonalDetails{
		Personal: PersonalInfo{
			FirstName:   r.FirstName,
			MiddleName:  r.MiddleName,
			LastName:    r.LastName,
			DateOfBirth: r.DateOfBirth,
			Citizenship: r.Citizenship,
			SSN:         r.SSN,
			Phone:       r.Phone,
		},
		Address: Address{
			Street:  r.Street,
			City:    r.City,
			State:   r.State,
			ZIP:     r.ZIP,
			Country: r.Country,
		},
	}
}
