package models

// Alternative asset classes a self-directed IRA may hold.
const (
	AssetRealEstate     = "real-estate"
	AssetPrivateEquity  = "private-equity"
	AssetCrypto         = "crypto"
	AssetPreciousMetals = "precious-metals"
	AssetNotesLending   = "notes-lending"
	AssetOther          = "other"
)

type AssetDetail struct {
	ExperienceLevel   string `json:"experienceLevel,omitempty"`
	PlannedAllocation *int   `json:"plannedAllocation,omitempty"`
}

type RiskAcknowledgments struct {
	UnderstandsNonTraditionalRisks    bool `json:"understandsNonTraditionalRisks"`
	AcceptsResponsibilityForDecisions bool `json:"acceptsResponsibilityForDecisions"`
}

// InvestmentPreferences is the step 8 payload. Asset types are optional; both
// risk acknowledgments are mandatory.
type InvestmentPreferences struct {
	AssetTypes          []string               `json:"assetTypes"`
	AssetDetails        map[string]AssetDetail `json:"assetDetails,omitempty"`
	RiskAcknowledgments RiskAcknowledgments    `json:"riskAcknowledgments"`
}

func (p InvestmentPreferences) Validate() FieldErrors {
	errs := FieldErrors{}
	if !p.RiskAcknowledgments.UnderstandsNonTraditionalRisks {
		errs.Set("understandsRisks", "You must acknowledge the risks")
	}
	if !p.RiskAcknowledgments.AcceptsResponsibilityForDecisions {
		errs.Set("acceptsResponsibility", "You must accept responsibility for investment decisions")
	}
	return errs
}
