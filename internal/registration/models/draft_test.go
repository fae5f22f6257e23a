package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationDraftSet(t *testing.T) {
	var d RegistrationDraft
	d.Set(IRAType{IRAType: IRARoth, Purpose: "retirement"})
	d.Set(IRAType{IRAType: IRATraditional})

	require.True(t, d.Has(SectionIRAType))
	assert.Equal(t, IRATraditional, d.IRAType.IRAType)
	assert.Empty(t, d.IRAType.Purpose, "sections are replaced, not merged")
	assert.False(t, d.Has(SectionAddress))
}

func TestRegistrationDraftSanitized(t *testing.T) {
	d := RegistrationDraft{AccountCreation: &AccountCreation{
		Email: "jane@example.com", Password: "Secur3!pass", ConfirmPassword: "Secur3!pass", AcceptTerms: true,
	}}
	clean := d.Sanitized()

	b, err := json.Marshal(clean)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "password")
	assert.NotContains(t, string(b), "confirmPassword")
	assert.Equal(t, "Secur3!pass", d.AccountCreation.Password, "original is untouched")
}

func TestDecodeSection(t *testing.T) {
	s, err := DecodeSection(SectionAddress, json.RawMessage(`{"street":"1 Main St","city":"Austin","state":"TX","zip":"78701","country":"US"}`))
	require.NoError(t, err)
	assert.Equal(t, Address{Street: "1 Main St", City: "Austin", State: "TX", ZIP: "78701", Country: "US"}, s)

	_, err = DecodeSection("favoriteColor", json.RawMessage(`{}`))
	assert.Error(t, err)

	_, err = DecodeSection(SectionBeneficiaries, json.RawMessage(`"oops"`))
	assert.Error(t, err)
}

func TestBuildAgreements(t *testing.T) {
	accepted := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	existing := []AgreementRecord{
		{DocumentName: "Fee Schedule", DocumentURL: "/old/fees.pdf", Accepted: true, AcceptedAt: &accepted},
		{DocumentName: "Retired Doc", Accepted: true},
	}
	docs := []Document{
		{Name: "IRA Agreement", URL: "/docs/ira.pdf"},
		{Name: "Fee Schedule", URL: "/docs/fees.pdf"},
	}

	got := BuildAgreements(docs, existing)
	require.Len(t, got, 2)
	assert.Equal(t, AgreementRecord{DocumentName: "IRA Agreement", DocumentURL: "/docs/ira.pdf"}, got[0])
	assert.Equal(t, "/docs/fees.pdf", got[1].DocumentURL)
	assert.True(t, got[1].Accepted, "acceptance carries over by name regardless of position")
	assert.Equal(t, &accepted, got[1].AcceptedAt)

	assert.Equal(t, existing, BuildAgreements(nil, existing))
}

func TestProgressData(t *testing.T) {
	p := Progress{SavedData: map[string]json.RawMessage{"iraType": json.RawMessage(`{}`)}}
	assert.Contains(t, p.Data(), "iraType")

	p.RegistrationData = map[string]json.RawMessage{"address": json.RawMessage(`{}`)}
	assert.Contains(t, p.Data(), "address")
	assert.NotContains(t, p.Data(), "iraType")
}
