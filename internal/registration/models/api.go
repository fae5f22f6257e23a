package models

import "encoding/json"

// Credentials is the body of register and login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResult struct {
	SessionID string `json:"sessionId"`
}

type LoginResult struct {
	SessionID              string `json:"sessionId"`
	Token                  string `json:"token,omitempty"`
	IsRegistrationComplete bool   `json:"isRegistrationComplete"`
}

// Progress is the server's authoritative view of a draft. Older servers send
// SavedData; newer ones send RegistrationData.
type Progress struct {
	CurrentStep      Step                       `json:"currentStep"`
	RegistrationData map[string]json.RawMessage `json:"registrationData,omitempty"`
	SavedData        map[string]json.RawMessage `json:"savedData,omitempty"`
	IsComplete       bool                       `json:"isComplete"`
}

// Data returns whichever of RegistrationData or SavedData is populated.
func (p Progress) Data() map[string]json.RawMessage {
	if len(p.RegistrationData) > 0 {
		return p.RegistrationData
	}
	return p.SavedData
}

type ContactInfo struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// RegistrationResponse is returned by the final submission.
type RegistrationResponse struct {
	Success         bool         `json:"success"`
	Message         string       `json:"message"`
	ApplicationID   string       `json:"applicationId,omitempty"`
	NextSteps       string       `json:"nextSteps,omitempty"`
	ReviewTimeline  string       `json:"reviewTimeline,omitempty"`
	FundingTimeline string       `json:"fundingTimeline,omitempty"`
	ContactInfo     *ContactInfo `json:"contactInfo,omitempty"`
}
