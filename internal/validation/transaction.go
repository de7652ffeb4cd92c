package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/ekaraca/bist-portfolio-backend/internal/api/request"
)

// ValidTransactionType contains the allowed transaction type values.
var ValidTransactionType = map[string]bool{
	"buy": true, "sell": true, "dividend": true, "split": true, "merger": true, "rights": true,
}

// ValidateCreateTransaction validates a transaction creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - portfolioId: Must be a valid UUID
//   - instrumentCode: Must not be empty
//   - date: Must be in YYYY-MM-DD format
//   - type: Must be one of: buy, sell, dividend, split, merger, rights
//   - price: Must be positive (for splits and mergers this is the ratio)
//   - quantity: Must be positive for buy and sell
//
// Commission and tax default to zero and must not be negative.
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.PortfolioID); err != nil {
		return err
	}
	if req.InvestorID != nil {
		if err := ValidateUUID(*req.InvestorID); err != nil {
			return err
		}
	}

	if strings.TrimSpace(req.InstrumentCode) == "" {
		errors["instrumentCode"] = "instrumentCode is required"
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !ValidTransactionType[req.Type] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if req.Price <= 0.0 {
		errors["price"] = "price must be positive"
	}

	if (req.Type == "buy" || req.Type == "sell") && req.Quantity <= 0.0 {
		errors["quantity"] = "quantity must be positive"
	}

	if req.Commission < 0.0 {
		errors["commission"] = "commission must not be negative"
	}
	if req.Tax < 0.0 {
		errors["tax"] = "tax must not be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateTransaction validates a transaction update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.Date != nil {
		if strings.TrimSpace(*req.Date) == "" {
			errors["date"] = "date is required"
		} else if _, err := time.Parse("2006-01-02", *req.Date); err != nil {
			errors["date"] = err.Error()
		}
	}
	if req.Type != nil {
		if strings.TrimSpace(*req.Type) == "" {
			errors["type"] = "type is required"
		} else if !ValidTransactionType[*req.Type] {
			errors["type"] = fmt.Sprintf("invalid type: %s", *req.Type)
		}
	}
	if req.Price != nil && *req.Price <= 0.0 {
		errors["price"] = "price must be positive"
	}
	if req.Quantity != nil && *req.Quantity <= 0.0 {
		errors["quantity"] = "quantity must be positive"
	}
	if req.Commission != nil && *req.Commission < 0.0 {
		errors["commission"] = "commission must not be negative"
	}
	if req.Tax != nil && *req.Tax < 0.0 {
		errors["tax"] = "tax must not be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
