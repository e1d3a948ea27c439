package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// BusinessProfile is the sparse document accumulated across the five
// onboarding form sections. All fields are pointers so that a partial
// payload can distinguish "not provided" from "cleared to empty".
// Stored as a JSONB column on users.
type BusinessProfile struct {
	Identity   *BusinessIdentity  `json:"identity,omitempty"`
	TaxLegal   *TaxLegalDetails   `json:"tax_legal,omitempty"`
	Owner      *OwnerIdentity     `json:"owner,omitempty"`
	Banking    *BankingDetails    `json:"banking,omitempty"`
	Operations *OperationsDetails `json:"operations,omitempty"`
}

// BusinessIdentity is section 1: who the business is.
type BusinessIdentity struct {
	BusinessName *string `json:"business_name,omitempty"`
	BusinessType *string `json:"business_type,omitempty"` // individual, partnership, pvt_ltd ...
	Description  *string `json:"description,omitempty"`
	Website      *string `json:"website,omitempty"`
}

// TaxLegalDetails is section 2: tax and legal identifiers.
type TaxLegalDetails struct {
	PANNumber          *string `json:"pan_number,omitempty"`
	GSTIN              *string `json:"gstin,omitempty"`
	RegistrationNumber *string `json:"registration_number,omitempty"`
}

// OwnerIdentity is section 3: the owner's identity.
type OwnerIdentity struct {
	OwnerName     *string `json:"owner_name,omitempty"`
	AadhaarNumber *string `json:"aadhaar_number,omitempty"`
	DateOfBirth   *string `json:"date_of_birth,omitempty"`
	OwnerAddress  *string `json:"owner_address,omitempty"`
}

// BankingDetails is section 4: settlement account.
type BankingDetails struct {
	AccountHolderName *string `json:"account_holder_name,omitempty"`
	AccountNumber     *string `json:"account_number,omitempty"`
	IFSCCode          *string `json:"ifsc_code,omitempty"`
	BankName          *string `json:"bank_name,omitempty"`
	UPIID             *string `json:"upi_id,omitempty"`
}

// OperationsDetails is section 5: logistics and support.
type OperationsDetails struct {
	PickupAddress *string `json:"pickup_address,omitempty"`
	Pincode       *string `json:"pincode,omitempty"`
	SupportEmail  *string `json:"support_email,omitempty"`
	SupportPhone  *string `json:"support_phone,omitempty"`
	ReturnPolicy  *string `json:"return_policy,omitempty"`
}

// Merge folds patch into p section by section. Within a provided section,
// provided fields overwrite and absent fields survive, so earlier-entered
// data outlives later partial saves. The receiver is mutated.
func (p *BusinessProfile) Merge(patch *BusinessProfile) {
	if patch == nil {
		return
	}

	if patch.Identity != nil {
		if p.Identity == nil {
			p.Identity = &BusinessIdentity{}
		}
		mergeString(&p.Identity.BusinessName, patch.Identity.BusinessName)
		mergeString(&p.Identity.BusinessType, patch.Identity.BusinessType)
		mergeString(&p.Identity.Description, patch.Identity.Description)
		mergeString(&p.Identity.Website, patch.Identity.Website)
	}

	if patch.TaxLegal != nil {
		if p.TaxLegal == nil {
			p.TaxLegal = &TaxLegalDetails{}
		}
		mergeString(&p.TaxLegal.PANNumber, patch.TaxLegal.PANNumber)
		mergeString(&p.TaxLegal.GSTIN, patch.TaxLegal.GSTIN)
		mergeString(&p.TaxLegal.RegistrationNumber, patch.TaxLegal.RegistrationNumber)
	}

	if patch.Owner != nil {
		if p.Owner == nil {
			p.Owner = &OwnerIdentity{}
		}
		mergeString(&p.Owner.OwnerName, patch.Owner.OwnerName)
		mergeString(&p.Owner.AadhaarNumber, patch.Owner.AadhaarNumber)
		mergeString(&p.Owner.DateOfBirth, patch.Owner.DateOfBirth)
		mergeString(&p.Owner.OwnerAddress, patch.Owner.OwnerAddress)
	}

	if patch.Banking != nil {
		if p.Banking == nil {
			p.Banking = &BankingDetails{}
		}
		mergeString(&p.Banking.AccountHolderName, patch.Banking.AccountHolderName)
		mergeString(&p.Banking.AccountNumber, patch.Banking.AccountNumber)
		mergeString(&p.Banking.IFSCCode, patch.Banking.IFSCCode)
		mergeString(&p.Banking.BankName, patch.Banking.BankName)
		mergeString(&p.Banking.UPIID, patch.Banking.UPIID)
	}

	if patch.Operations != nil {
		if p.Operations == nil {
			p.Operations = &OperationsDetails{}
		}
		mergeString(&p.Operations.PickupAddress, patch.Operations.PickupAddress)
		mergeString(&p.Operations.Pincode, patch.Operations.Pincode)
		mergeString(&p.Operations.SupportEmail, patch.Operations.SupportEmail)
		mergeString(&p.Operations.SupportPhone, patch.Operations.SupportPhone)
		mergeString(&p.Operations.ReturnPolicy, patch.Operations.ReturnPolicy)
	}
}

// IsEmpty reports whether no section has been provided.
func (p *BusinessProfile) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.Identity == nil && p.TaxLegal == nil && p.Owner == nil &&
		p.Banking == nil && p.Operations == nil
}

func mergeString(dst **string, src *string) {
	if src != nil {
		*dst = src
	}
}

// Value implements driver.Valuer so GORM persists the profile as JSON
func (p *BusinessProfile) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner
func (p *BusinessProfile) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for business profile: %T", value)
	}

	return json.Unmarshal(data, p)
}
