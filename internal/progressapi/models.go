package progressapi

import (
	"encoding/json"
	"maps"
	"strings"
	"time"

	"signup/internal/registration/models"
)

// Account is a registered user and the registration they are filling in.
type Account struct {
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
	Registration Registration
}

// Registration is the server-held progress of one account. Data is keyed by
// draft section name and holds the section JSON as last saved.
type Registration struct {
	CurrentStep   models.Step
	Data          map[string]json.RawMessage
	Complete      bool
	ApplicationID string
	SubmittedAt   *time.Time
}

func (r Registration) clone() Registration {
	r.Data = maps.Clone(r.Data)
	return r
}

// Progress renders the registration in the wire shape of the progress
// endpoint.
func (r Registration) Progress() *models.Progress {
	return &models.Progress{
		CurrentStep:      r.CurrentStep,
		RegistrationData: maps.Clone(r.Data),
		IsComplete:       r.Complete,
	}
}

// Session binds a session id to an account until ExpiresAt.
type Session struct {
	ID        string
	Email     string
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Disclosures every applicant must accept.
var defaultDocumentNames = []string{
	"IRA Adoption Agreement",
	"Custodial Account Agreement",
	"Fee Schedule",
	"Privacy Policy",
	"Self-Directed IRA Disclosure",
}

// DefaultDocuments lists the standard disclosures under baseURL.
func DefaultDocuments(baseURL string) []models.Document {
	base := strings.TrimRight(baseURL, "/")
	docs := make([]models.Document, 0, len(defaultDocumentNames))
	for _, name := range defaultDocumentNames {
		slug := strings.ReplaceAll(strings.ToLower(name), " ", "-")
		docs = append(docs, models.Document{Name: name, URL: base + "/" + slug + ".pdf"})
	}
	return docs
}
