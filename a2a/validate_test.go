// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"strings"
	"testing"
)

func validCard() *AgentCard {
	return &AgentCard{
		Name:               "test agent",
		Description:        "does test things",
		URL:                "https://agent.example.com",
		Version:            "1.0.0",
		DefaultInputModes:  []string{"text/plain"},
		DefaultOutputModes: []string{"text/plain"},
		Skills: []AgentSkill{
			{ID: "echo", Name: "Echo", Description: "repeats input", Examples: []string{"say hi"}},
		},
		Provider:         &AgentProvider{Organization: "Example"},
		DocumentationURL: "https://agent.example.com/docs",
		IconURL:          "https://agent.example.com/icon.png",
	}
}

func TestValidateCardValid(t *testing.T) {
	result := ValidateCard(validCard())
	if !result.Valid {
		t.Fatalf("ValidateCard() invalid, errors: %v", result.Errors)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

func TestValidateCardRequiredFields(t *testing.T) {
	card := validCard()
	card.Name = ""
	card.URL = ""
	card.Skills = nil

	result := ValidateCard(card)
	if result.Valid {
		t.Fatal("ValidateCard() valid, want invalid")
	}

	fields := make(map[string]bool)
	for _, issue := range result.Errors {
		fields[issue.Field] = true
	}
	for _, want := range []string{"name", "url", "skills"} {
		if !fields[want] {
			t.Errorf("missing error for field %q, got %v", want, result.Errors)
		}
	}
}

func TestValidateCardWarnings(t *testing.T) {
	card := validCard()
	card.Provider = nil
	card.DocumentationURL = ""
	card.Skills[0].Examples = nil

	result := ValidateCard(card)
	if !result.Valid {
		t.Fatalf("warnings must not invalidate the card, errors: %v", result.Errors)
	}

	var fields []string
	for _, issue := range result.Warnings {
		fields = append(fields, issue.Field)
	}
	joined := strings.Join(fields, ",")
	for _, want := range []string{"provider", "documentationUrl", "skills[0].examples"} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing warning for %q, got %v", want, fields)
		}
	}
}

func TestValidateCardJSON(t *testing.T) {
	result := ValidateCardJSON([]byte(`{not json`))
	if result.Valid {
		t.Error("ValidateCardJSON() valid for malformed JSON")
	}

	result = ValidateCardJSON([]byte(`{"name":"a","description":"b","url":"u","version":"1","defaultInputModes":["text/plain"],"defaultOutputModes":["text/plain"],"skills":[{"id":"s","name":"S"}]}`))
	if !result.Valid {
		t.Errorf("ValidateCardJSON() invalid, errors: %v", result.Errors)
	}
}

func TestValidateCardNil(t *testing.T) {
	if result := ValidateCard(nil); result.Valid {
		t.Error("ValidateCard(nil) valid, want invalid")
	}
}
