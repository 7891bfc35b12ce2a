// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"nidhi/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("asset_category", validateAssetCategory)
		_ = v.RegisterValidation("holding_currency", validateHoldingCurrency)
		_ = v.RegisterValidation("display_currency", validateDisplayCurrency)
		_ = v.RegisterValidation("asset_transaction_type", validateAssetTransactionType)
	}
}

func validateAssetCategory(fl validator.FieldLevel) bool {
	c := models.AssetCategory(fl.Field().String())
	for _, known := range models.AssetCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Holdings are recorded in AED or INR only.
func validateHoldingCurrency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "AED", "INR":
		return true
	}
	return false
}

// The dashboard can render in AED, INR, or USD; AED is the base.
func validateDisplayCurrency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "AED", "INR", "USD":
		return true
	}
	return false
}

func validateAssetTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "buy", "sell", "installment", "dividend":
		return true
	}
	return false
}
