package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/ekaraca/bist-portfolio-backend/internal/api/request"
)

// ValidInvestedSource contains the allowed invested_source values.
var ValidInvestedSource = map[string]bool{
	"transactions": true, "investments": true,
}

// ValidInvestmentType contains the allowed investment type values.
var ValidInvestmentType = map[string]bool{
	"initial": true, "additional": true, "monthly": true, "dividend": true, "bonus": true,
}

// ValidateCreateInvestor validates an investor creation request.
func ValidateCreateInvestor(req request.CreateInvestorRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}
	if req.InvestedSource != "" && !ValidInvestedSource[req.InvestedSource] {
		errors["investedSource"] = fmt.Sprintf("invalid investedSource: %s", req.InvestedSource)
	}
	if req.MonthlyContribution < 0.0 {
		errors["monthlyContribution"] = "monthlyContribution must not be negative"
	}
	if req.StartDate != "" {
		if _, err := time.Parse("2006-01-02", req.StartDate); err != nil {
			errors["startDate"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateInvestor validates an investor update request.
func ValidateUpdateInvestor(req request.UpdateInvestorRequest) error {
	errors := make(map[string]string)

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name must not be empty"
	}
	if req.InvestedSource != nil && !ValidInvestedSource[*req.InvestedSource] {
		errors["investedSource"] = fmt.Sprintf("invalid investedSource: %s", *req.InvestedSource)
	}
	if req.MonthlyContribution != nil && *req.MonthlyContribution < 0.0 {
		errors["monthlyContribution"] = "monthlyContribution must not be negative"
	}
	if req.StartDate != nil && *req.StartDate != "" {
		if _, err := time.Parse("2006-01-02", *req.StartDate); err != nil {
			errors["startDate"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateCreateInvestment validates an investment creation request.
func ValidateCreateInvestment(req request.CreateInvestmentRequest) error {
	if err := ValidateUUID(req.InvestorID); err != nil {
		return err
	}

	errors := make(map[string]string)

	if req.Amount <= 0.0 {
		errors["amount"] = "amount must be positive"
	}
	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}
	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !ValidInvestmentType[req.Type] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateInvestment validates an investment update request.
func ValidateUpdateInvestment(req request.UpdateInvestmentRequest) error {
	errors := make(map[string]string)

	if req.Amount != nil && *req.Amount <= 0.0 {
		errors["amount"] = "amount must be positive"
	}
	if req.Date != nil {
		if strings.TrimSpace(*req.Date) == "" {
			errors["date"] = "date is required"
		} else if _, err := time.Parse("2006-01-02", *req.Date); err != nil {
			errors["date"] = err.Error()
		}
	}
	if req.Type != nil && !ValidInvestmentType[*req.Type] {
		errors["type"] = fmt.Sprintf("invalid type: %s", *req.Type)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
