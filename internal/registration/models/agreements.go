package models

import (
	"time"

	"github.com/samber/lo"
)

type SignatureType string

const (
	SignatureTyped SignatureType = "typed"
	SignatureDrawn SignatureType = "drawn"
)

// Document is a disclosure served by the progress API.
type Document struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// AgreementRecord tracks acceptance of one document, keyed by DocumentName.
type AgreementRecord struct {
	DocumentName string     `json:"documentName"`
	DocumentURL  string     `json:"documentUrl"`
	Accepted     bool       `json:"accepted"`
	AcceptedAt   *time.Time `json:"acceptedAt,omitempty"`
}

// Accept marks the record accepted at now. Withdrawing clears the timestamp.
func (a *AgreementRecord) Accept(accepted bool, now time.Time) {
	a.Accepted = accepted
	if accepted {
		a.AcceptedAt = &now
	} else {
		a.AcceptedAt = nil
	}
}

// Agreements is the step 9 payload.
type Agreements struct {
	Agreements     []AgreementRecord `json:"agreements"`
	ESignatureType SignatureType     `json:"eSignatureType"`
	SignatureName  string            `json:"signatureName"`
	SignatureDate  string            `json:"signatureDate"`
	SignatureImage string            `json:"signatureImage,omitempty"`
}

func (a Agreements) Validate() FieldErrors {
	errs := FieldErrors{}
	allAccepted := lo.EveryBy(a.Agreements, func(r AgreementRecord) bool { return r.Accepted })
	if !allAccepted {
		errs.Set("agreements", "You must accept all documents to proceed")
	}
	if a.SignatureName == "" {
		errs.Set("signatureName", "Signature name is required")
	}
	return errs
}

// BuildAgreements lists one record per document, carrying accepted state over
// from existing records with the same document name. With no documents the
// existing records are returned unchanged.
func BuildAgreements(docs []Document, existing []AgreementRecord) []AgreementRecord {
	if len(docs) == 0 {
		return existing
	}
	byName := lo.KeyBy(existing, func(r AgreementRecord) string { return r.DocumentName })
	return lo.Map(docs, func(d Document, _ int) AgreementRecord {
		rec := AgreementRecord{DocumentName: d.Name, DocumentURL: d.URL}
		if prev, ok := byName[d.Name]; ok {
			rec.Accepted = prev.Accepted
			rec.AcceptedAt = prev.AcceptedAt
		}
		return rec
	})
}
