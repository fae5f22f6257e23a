package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"signup/pkg/validation"
)

// Amount is a currency amount that travels as a bare JSON number.
type Amount struct {
	decimal.Decimal
}

func NewAmount(d decimal.Decimal) Amount { return Amount{Decimal: d} }

// AmountFromString parses a decimal string such as "6500.00".
func AmountFromString(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{Decimal: d}, nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

type FundingType string

const (
	FundingTransfer        FundingType = "transfer"
	FundingRollover        FundingType = "rollover"
	FundingNewContribution FundingType = "new-contribution"
)

// FundingMethod is one of TransferFunding, RolloverFunding or
// ContributionFunding. The set is closed.
type FundingMethod interface {
	FundingType() FundingType
	validate(index int, errs FieldErrors)
}

// TransferFunding moves an existing IRA from another custodian.
type TransferFunding struct {
	CurrentCustodian string `json:"currentCustodian"`
	AccountType      string `json:"accountType"`
	AccountNumber    string `json:"accountNumber"`
	EstimatedAmount  Amount `json:"estimatedAmount"`
	StatementFileURL string `json:"statementFileUrl,omitempty"`
}

func (TransferFunding) FundingType() FundingType { return FundingTransfer }

func (t TransferFunding) validate(i int, errs FieldErrors) {
	if t.CurrentCustodian == "" {
		errs.Set(fmt.Sprintf("transfer-custodian-%d", i), "Custodian name required")
	}
	if t.AccountNumber == "" {
		errs.Set(fmt.Sprintf("transfer-account-%d", i), "Account number required")
	}
}

// RolloverFunding moves money out of an employer plan.
type RolloverFunding struct {
	PlanType         string `json:"planType"`
	EmployerName     string `json:"employerName"`
	PlanAdminContact string `json:"planAdminContact"`
	EstimatedAmount  Amount `json:"estimatedAmount"`
}

func (RolloverFunding) FundingType() FundingType { return FundingRollover }

func (r RolloverFunding) validate(i int, errs FieldErrors) {
	if r.EmployerName == "" {
		errs.Set(fmt.Sprintf("rollover-employer-%d", i), "Employer name required")
	}
	if r.PlanAdminContact == "" {
		errs.Set(fmt.Sprintf("rollover-contact-%d", i), "Plan admin contact required")
	}
}

type FundingSource string

const (
	FundingSourceBankTransfer FundingSource = "bank-transfer"
	FundingSourceCheck        FundingSource = "check"
	FundingSourceWire         FundingSource = "wire"
)

type BankAccount struct {
	AccountHolderName string `json:"accountHolderName"`
	RoutingNumber     string `json:"routingNumber"`
	AccountNumber     string `json:"accountNumber"`
	AccountType       string `json:"accountType"`
}

// ContributionFunding is a new contribution for a tax year.
type ContributionFunding struct {
	Amount        Amount        `json:"amount"`
	TaxYear       int           `json:"taxYear"`
	FundingSource FundingSource `json:"fundingSource"`
	BankAccount   *BankAccount  `json:"bankAccount,omitempty"`
}

func (ContributionFunding) FundingType() FundingType { return FundingNewContribution }

func (c ContributionFunding) validate(i int, errs FieldErrors) {
	if !c.Amount.IsPositive() {
		errs.Set(fmt.Sprintf("contribution-amount-%d", i), "Amount required")
	}
	if c.FundingSource != FundingSourceBankTransfer {
		return
	}
	var bank BankAccount
	if c.BankAccount != nil {
		bank = *c.BankAccount
	}
	routingKey := fmt.Sprintf("bank-routing-%d", i)
	switch {
	case bank.RoutingNumber == "":
		errs.Set(routingKey, "Routing number required")
	case !validation.RoutingNumber(bank.RoutingNumber):
		errs.Set(routingKey, "Invalid routing number")
	}
	if bank.AccountNumber == "" {
		errs.Set(fmt.Sprintf("bank-account-%d", i), "Account number required")
	}
}

// FundingMethodData is the step 7 payload.
type FundingMethodData struct {
	Methods []FundingMethod
}

func (f FundingMethodData) Validate() FieldErrors {
	errs := FieldErrors{}
	if len(f.Methods) == 0 {
		errs.Set("methods", "Please select at least one funding method")
	}
	for i, m := range f.Methods {
		if m == nil {
			errs.Set(fmt.Sprintf("method-%d", i), "Funding type required")
			continue
		}
		m.validate(i, errs)
	}
	return errs
}

type fundingEnvelope struct {
	Type                FundingType          `json:"type"`
	TransferDetails     *TransferFunding     `json:"transferDetails,omitempty"`
	RolloverDetails     *RolloverFunding     `json:"rolloverDetails,omitempty"`
	ContributionDetails *ContributionFunding `json:"contributionDetails,omitempty"`
}

type fundingWire struct {
	Methods []fundingEnvelope `json:"methods"`
}

func (f FundingMethodData) MarshalJSON() ([]byte, error) {
	wire := fundingWire{Methods: make([]fundingEnvelope, 0, len(f.Methods))}
	for _, m := range f.Methods {
		if m == nil {
			continue
		}
		env := fundingEnvelope{Type: m.FundingType()}
		switch v := m.(type) {
		case TransferFunding:
			env.TransferDetails = &v
		case RolloverFunding:
			env.RolloverDetails = &v
		case ContributionFunding:
			env.ContributionDetails = &v
		}
		wire.Methods = append(wire.Methods, env)
	}
	return json.Marshal(wire)
}

func (f *FundingMethodData) UnmarshalJSON(data []byte) error {
	var wire fundingWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	methods := make([]FundingMethod, 0, len(wire.Methods))
	for i, env := range wire.Methods {
		switch env.Type {
		case FundingTransfer:
			methods = append(methods, derefOrZero(env.TransferDetails))
		case FundingRollover:
			methods = append(methods, derefOrZero(env.RolloverDetails))
		case FundingNewContribution:
			methods = append(methods, derefOrZero(env.ContributionDetails))
		default:
			return fmt.Errorf("funding method %d: unknown type %q", i, env.Type)
		}
	}
	f.Methods = methods
	return nil
}

func derefOrZero[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
