// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"

	"github.com/go-json-experiment/json"
)

// ValidationIssue is one problem found while validating an agent card.
type ValidationIssue struct {
	// Field is a dotted path to the offending field, for example
	// "skills[0].id".
	Field string `json:"field"`

	// Message says what is wrong or what could be better.
	Message string `json:"message"`
}

func (i ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// ValidationResult is the outcome of validating an agent card. Errors
// make the card invalid; warnings flag fields worth filling in but do
// not.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationIssue `json:"errors,omitzero"`
	Warnings []ValidationIssue `json:"warnings,omitzero"`
}

func (r *ValidationResult) addError(field, message string) {
	r.Errors = append(r.Errors, ValidationIssue{Field: field, Message: message})
	r.Valid = false
}

func (r *ValidationResult) addWarning(field, message string) {
	r.Warnings = append(r.Warnings, ValidationIssue{Field: field, Message: message})
}

// ValidateCard checks an agent card for required fields and flags
// recommended ones that are missing.
func ValidateCard(card *AgentCard) *ValidationResult {
	result := &ValidationResult{Valid: true}
	if card == nil {
		result.addError("card", "card is nil")
		return result
	}

	if card.Name == "" {
		result.addError("name", "required field is missing")
	}
	if card.URL == "" {
		result.addError("url", "required field is missing")
	}
	if card.Version == "" {
		result.addError("version", "required field is missing")
	}
	if card.Description == "" {
		result.addError("description", "required field is missing")
	}
	if len(card.DefaultInputModes) == 0 {
		result.addError("defaultInputModes", "at least one input mode is required")
	}
	if len(card.DefaultOutputModes) == 0 {
		result.addError("defaultOutputModes", "at least one output mode is required")
	}

	if len(card.Skills) == 0 {
		result.addError("skills", "at least one skill is required")
	}
	for i, skill := range card.Skills {
		if skill.ID == "" {
			result.addError(fmt.Sprintf("skills[%d].id", i), "required field is missing")
		}
		if skill.Name == "" {
			result.addError(fmt.Sprintf("skills[%d].name", i), "required field is missing")
		}
		if skill.Description == "" {
			result.addWarning(fmt.Sprintf("skills[%d].description", i), "skill has no description")
		}
		if len(skill.Examples) == 0 {
			result.addWarning(fmt.Sprintf("skills[%d].examples", i), "skill has no examples")
		}
	}

	if card.Provider == nil {
		result.addWarning("provider", "no provider information")
	}
	if card.DocumentationURL == "" {
		result.addWarning("documentationUrl", "no documentation URL")
	}
	if card.IconURL == "" {
		result.addWarning("iconUrl", "no icon URL")
	}
	if card.PreferredTransport != "" && card.PreferredTransport != TransportJSONRPC &&
		len(card.AdditionalInterfaces) == 0 {
		result.addWarning("additionalInterfaces",
			"non-default preferred transport without alternative interfaces")
	}

	return result
}

// ValidateCardJSON parses raw JSON as an agent card and validates it.
// Malformed JSON is reported as a validation error rather than a
// decode failure.
func ValidateCardJSON(raw []byte) *ValidationResult {
	var card AgentCard
	if err := json.Unmarshal(raw, &card); err != nil {
		result := &ValidationResult{Valid: true}
		result.addError("card", fmt.Sprintf("invalid JSON: %v", err))
		return result
	}

	return ValidateCard(&card)
}
