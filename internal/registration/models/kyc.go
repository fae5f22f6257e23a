package models

type GovernmentIDType string

const (
	GovernmentIDDriverLicense GovernmentIDType = "driver-license"
	GovernmentIDPassport      GovernmentIDType = "passport"
	GovernmentIDStateID       GovernmentIDType = "state-id"
)

// KYCIdentity is the step 3 payload. Image and proof fields are references to
// files held by the document store, never file contents.
type KYCIdentity struct {
	GovernmentIDType    GovernmentIDType  `json:"governmentIdType"`
	IDNumber            string            `json:"idNumber"`
	IssuingState        string            `json:"issuingState"`
	ExpirationDate      string            `json:"expirationDate"`
	IDFrontImageURL     string            `json:"idFrontImageUrl,omitempty"`
	IDBackImageURL      string            `json:"idBackImageUrl,omitempty"`
	ProofOfAddressURL   string            `json:"proofOfAddressUrl,omitempty"`
	IdentityQuizAnswers map[string]string `json:"identityQuizAnswers,omitempty"`
}

func (k KYCIdentity) Validate() FieldErrors {
	errs := FieldErrors{}
	if k.IDNumber == "" {
		errs.Set("idNumber", "ID number is required")
	}
	if k.IssuingState == "" {
		errs.Set("issuingState", "Issuing state/country is required")
	}
	if k.ExpirationDate == "" {
		errs.Set("expirationDate", "Expiration date is required")
	}
	if k.IDFrontImageURL == "" {
		errs.Set("idFront", "Front ID image required")
	}
	if k.IDBackImageURL == "" {
		errs.Set("idBack", "Back ID image required")
	}
	if k.ProofOfAddressURL == "" {
		errs.Set("proofOfAddress", "Proof of address required")
	}
	return errs
}
