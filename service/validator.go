package service

import (
	"fmt"
	"strings"

	"github.com/AbuAli85/Contract-Management-System-sub011/model"
)

// Validate checks contract data against the configuration of its type.
// Every rule runs; violations accumulate in Errors.
func Validate(cfg model.ContractTypeConfig, data map[string]any) model.ValidationResult {
	result := model.ValidationResult{Errors: []string{}, Warnings: []string{}}

	for _, field := range cfg.RequiredTriggerFields {
		if isEmpty(data[field]) {
			result.Errors = append(result.Errors, fmt.Sprintf("Required field '%s' is missing", field))
		}
	}

	currency := strings.ToUpper(lookupString(data, "currency"))
	boundsCurrency := currency
	if boundsCurrency == "" && len(cfg.AllowedCurrencies) > 0 {
		boundsCurrency = cfg.AllowedCurrencies[0]
	}

	if raw, ok := contractValue(cfg, data); ok {
		value, err := toFloat(raw)
		if err != nil {
			result.Errors = append(result.Errors, "Contract value must be a number")
		} else {
			if lo := cfg.ValueBounds.Min; lo != nil && value < *lo {
				result.Errors = append(result.Errors,
					fmt.Sprintf("Contract value must be at least %s %s", formatAmount(*lo), boundsCurrency))
			}
			if hi := cfg.ValueBounds.Max; hi != nil && value > *hi {
				result.Errors = append(result.Errors,
					fmt.Sprintf("Contract value cannot exceed %s %s", formatAmount(*hi), boundsCurrency))
			}
		}
	}

	if currency != "" && !containsFold(cfg.AllowedCurrencies, currency) {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Currency '%s' is not allowed. Allowed currencies: %s", currency, strings.Join(cfg.AllowedCurrencies, ", ")))
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

// RejectUnknownType is the validation outcome for a contract type missing
// from the registry.
func RejectUnknownType(contractType string) model.ValidationResult {
	return model.ValidationResult{
		IsValid:  false,
		Errors:   []string{fmt.Sprintf("Template configuration not found for contract type '%s'", contractType)},
		Warnings: []string{},
	}
}

// contractValue returns the raw value under the type's value field,
// falling back to the generic "value" key.
func contractValue(cfg model.ContractTypeConfig, data map[string]any) (any, bool) {
	for _, key := range []string{cfg.ValueKey(), "value"} {
		if v, ok := data[key]; ok && !isEmpty(v) {
			return v, true
		}
	}
	return nil, false
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
