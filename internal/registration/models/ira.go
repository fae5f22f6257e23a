package models

type IRAKind string

const (
	IRATraditional IRAKind = "traditional"
	IRARoth        IRAKind = "roth"
	IRASEP         IRAKind = "sep"
	IRASimple      IRAKind = "simple"
	IRAInherited   IRAKind = "inherited"
)

// ConditionalQuestions holds answers that only apply to some IRA kinds.
type ConditionalQuestions struct {
	IsEmployer      bool   `json:"isEmployer,omitempty"`
	BusinessDetails string `json:"businessDetails,omitempty"`
	DecedentName    string `json:"decedentName,omitempty"`
	Relationship    string `json:"relationship,omitempty"`
	DateOfDeath     string `json:"dateOfDeath,omitempty"`
}

// IRAType is the step 5 payload.
type IRAType struct {
	IRAType              IRAKind               `json:"iraType"`
	Purpose              string                `json:"purpose"`
	ConditionalQuestions *ConditionalQuestions `json:"conditionalQuestions,omitempty"`
}

func (t IRAType) Validate() FieldErrors {
	errs := FieldErrors{}
	if t.Purpose == "" {
		errs.Set("purpose", "Please select a purpose")
	}

	var q ConditionalQuestions
	if t.ConditionalQuestions != nil {
		q = *t.ConditionalQuestions
	}
	switch t.IRAType {
	case IRASEP, IRASimple:
		if q.BusinessDetails == "" {
			errs.Set("businessDetails", "Business details are required")
		}
	case IRAInherited:
		if q.DecedentName == "" {
			errs.Set("decedentName", "Decedent name is required")
		}
		if q.Relationship == "" {
			errs.Set("relationship", "Relationship is required")
		}
		if q.DateOfDeath == "" {
			errs.Set("dateOfDeath", "Date of death is required")
		}
	}
	return errs
}
