package core

// error_messages.go maps internal errors to user-facing messages.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// Error codes are grouped by category:
//
// # Source Errors (SRC001-SRC099)
//
//	SRC001 - Malformed payload: The data source returned something other than a list of entries
//	         Action: Check the backend endpoint; the navigator shows no entries until it is fixed
//	         Patterns: "malformed payload"
//
//	SRC002 - Source unavailable: The data source could not be reached
//	         Action: Reload the page in a few moments
//	         Patterns: "connection refused", "no such host", "unexpected status"
//
//	SRC003 - Identity token: Could not obtain credentials for the data source
//	         Action: Verify the service account and audience configuration
//	         Patterns: "identity token"
//
// # Export Errors (EXP001-EXP099)
//
//	EXP001 - Unknown format: Export format is not supported
//	         Action: Choose CSV, JSON or XML
//	         Patterns: "unknown export format"
//
//	EXP002 - Invalid scope: Export scope is not supported
//	         Action: Export either all entries or the selected entries
//	         Patterns: "invalid export scope"
//
// # Navigation Errors (NAV001-NAV099)
//
//	NAV001 - Unknown field: The column cannot be sorted
//	         Action: Sort by one of the table columns
//	         Patterns: "unknown record field"
//
//	NAV002 - Invalid page: Page number is not valid
//	         Action: Use the page controls below the table
//	         Patterns: "invalid page"
//
//	NAV003 - Invalid entry: Entry id is not valid
//	         Action: Reload the page and try again
//	         Patterns: "invalid entry id"
//
//	NAV004 - Invalid filter: Filter values could not be read
//	         Action: Check the search and date fields
//	         Patterns: "invalid filter"
//
// # Session Errors (SES001-SES099)
//
//	SES001 - Session expired: Browsing session not found
//	         Action: Reload the page to start a new session
//	         Patterns: "session not found"
//
// # Auth and Rate Limiting (AUTH001, RATE001)
//
//	AUTH001 - Missing or invalid API key
//	RATE001 - Too many requests
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
//
// Patterns are matched case-insensitively against the error text. Entries are
// checked in order and the first match wins.

import "strings"

// UserMessage is what the UI and the JSON API show for a failed request.
type UserMessage struct {
	Message string
	Action  string
	Code    string
}

// errorRule ties one or more substrings of an error's text to a message.
type errorRule struct {
	patterns []string
	msg      UserMessage
}

var errorRules = []errorRule{
	{[]string{"malformed payload"}, UserMessage{
		"The data source returned an unexpected response",
		"Check the backend endpoint; no entries are shown until it is fixed",
		"SRC001",
	}},
	{[]string{"identity token"}, UserMessage{
		"Could not obtain credentials for the data source",
		"Verify the service account and audience configuration",
		"SRC003",
	}},
	{[]string{"connection refused", "no such host", "unexpected status"}, UserMessage{
		"The data source could not be reached",
		"Reload the page in a few moments",
		"SRC002",
	}},
	{[]string{"unknown export format"}, UserMessage{
		"Export format is not supported",
		"Choose CSV, JSON or XML",
		"EXP001",
	}},
	{[]string{"invalid export scope"}, UserMessage{
		"Export scope is not supported",
		"Export either all entries or the selected entries",
		"EXP002",
	}},
	{[]string{"unknown record field"}, UserMessage{
		"The column cannot be sorted",
		"Sort by one of the table columns",
		"NAV001",
	}},
	{[]string{"invalid page"}, UserMessage{
		"Page number is not valid",
		"Use the page controls below the table",
		"NAV002",
	}},
	{[]string{"invalid entry id"}, UserMessage{
		"Entry id is not valid",
		"Reload the page and try again",
		"NAV003",
	}},
	{[]string{"invalid filter"}, UserMessage{
		"Filter values could not be read",
		"Check the search and date fields",
		"NAV004",
	}},
	{[]string{"session not found"}, UserMessage{
		"Browsing session not found",
		"Reload the page to start a new session",
		"SES001",
	}},
	{[]string{"api key"}, UserMessage{
		"Missing or invalid API key",
		"Provide a valid X-API-Key header",
		"AUTH001",
	}},
	{[]string{"rate limit"}, UserMessage{
		"Too many requests",
		"Please wait a moment before trying again",
		"RATE001",
	}},
}

var unknownError = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError returns the message for the first rule whose pattern occurs in
// err's text, or the ERR000 message. A nil error maps to the zero value.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}
	text := strings.ToLower(err.Error())
	for _, rule := range errorRules {
		for _, p := range rule.patterns {
			if strings.Contains(text, p) {
				return rule.msg
			}
		}
	}
	return unknownError
}
