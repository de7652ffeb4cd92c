package validation

import (
	"strings"

	"github.com/ekaraca/bist-portfolio-backend/internal/api/request"
)

// ValidateCreateFund validates a fund creation request.
func ValidateCreateFund(req request.CreateFundRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}
	if req.ManagementFee < 0.0 {
		errors["managementFee"] = "managementFee must not be negative"
	}
	if req.InitialValue < 0.0 {
		errors["initialValue"] = "initialValue must not be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateFund validates a fund metadata update request.
func ValidateUpdateFund(req request.UpdateFundRequest) error {
	errors := make(map[string]string)

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name must not be empty"
	}
	if req.ManagementFee != nil && *req.ManagementFee < 0.0 {
		errors["managementFee"] = "managementFee must not be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateCreateFundShare validates a share issuance request.
func ValidateCreateFundShare(req request.CreateFundShareRequest) error {
	if err := ValidateUUID(req.FundID); err != nil {
		return err
	}
	if err := ValidateUUID(req.InvestorID); err != nil {
		return err
	}

	errors := make(map[string]string)

	if req.InitialInvestment <= 0.0 {
		errors["initialInvestment"] = "initialInvestment must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateFundShare validates a share adjustment request.
func ValidateUpdateFundShare(req request.UpdateFundShareRequest) error {
	errors := make(map[string]string)

	if req.InitialInvestment != nil && *req.InitialInvestment <= 0.0 {
		errors["initialInvestment"] = "initialInvestment must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
