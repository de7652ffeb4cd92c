package validation

import (
	"strings"

	"github.com/ekaraca/bist-portfolio-backend/internal/api/request"
)

// ValidateCreatePortfolio validates a portfolio creation request.
func ValidateCreatePortfolio(req request.CreatePortfolioRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if req.InvestorID != nil && *req.InvestorID != "" {
		if err := ValidateUUID(*req.InvestorID); err != nil {
			return err
		}
	}
	if req.FundID != nil && *req.FundID != "" {
		if err := ValidateUUID(*req.FundID); err != nil {
			return err
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdatePortfolio validates a portfolio update request.
// Link fields accept an empty string to clear the link.
func ValidateUpdatePortfolio(req request.UpdatePortfolioRequest) error {
	errors := make(map[string]string)

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name must not be empty"
	}

	if req.InvestorID != nil && *req.InvestorID != "" {
		if err := ValidateUUID(*req.InvestorID); err != nil {
			return err
		}
	}
	if req.FundID != nil && *req.FundID != "" {
		if err := ValidateUUID(*req.FundID); err != nil {
			return err
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
