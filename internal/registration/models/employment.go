package models

type EmploymentStatus string

const (
	EmploymentEmployed     EmploymentStatus = "employed"
	EmploymentSelfEmployed EmploymentStatus = "self-employed"
	EmploymentUnemployed   EmploymentStatus = "unemployed"
	EmploymentRetired      EmploymentStatus = "retired"
	EmploymentStudent      EmploymentStatus = "student"
	EmploymentHomemaker    EmploymentStatus = "homemaker"
)

// RequiresEmployer reports whether employer name and occupation are mandatory.
func (s EmploymentStatus) RequiresEmployer() bool {
	return s == EmploymentEmployed || s == EmploymentSelfEmployed
}

// EmploymentFinancial is the step 4 payload.
type EmploymentFinancial struct {
	EmploymentStatus     EmploymentStatus `json:"employmentStatus"`
	EmployerName         string           `json:"employerName,omitempty"`
	EmployerAddress      string           `json:"employerAddress,omitempty"`
	Occupation           string           `json:"occupation,omitempty"`
	AnnualIncomeRange    string           `json:"annualIncomeRange"`
	NetWorthRange        string           `json:"netWorthRange"`
	SourceOfFunds        []string         `json:"sourceOfFunds"`
	InvestmentExperience string           `json:"investmentExperience,omitempty"`
}

func (e EmploymentFinancial) Validate() FieldErrors {
	errs := FieldErrors{}
	if e.EmploymentStatus.RequiresEmployer() {
		if e.EmployerName == "" {
			errs.Set("employerName", "Employer name is required")
		}
		if e.Occupation == "" {
			errs.Set("occupation", "Occupation is required")
		}
	}
	if len(e.SourceOfFunds) == 0 {
		errs.Set("sourceOfFunds", "Select at least one source of funds")
	}
	return errs
}
