package wizard

import "signup/internal/registration/models/modelstest"

var (
	validAccount       = modelstest.Account
	validPersonal      = modelstest.Personal
	validKYC           = modelstest.KYC
	validEmployment    = modelstest.Employment
	validIRAType       = modelstest.IRAType
	validBeneficiaries = modelstest.Beneficiaries
	validFunding       = modelstest.Funding
	validInvestments   = modelstest.Investments
	validAgreements    = modelstest.Agreements
	emailSecurity      = modelstest.EmailSecurity
	validPayloads      = modelstest.Payloads
)
