// Package core provides the results transform for competition entry exports.
//
// # Error Codes Reference
//
// Fatal errors are mapped to user-friendly messages with a code so that
// whoever runs the tool on awards night can quote it when asking for help.
//
// # Input Errors (IN001-IN099)
//
//	IN001 - Invalid score: A score cell is not a number
//	        Action: Fix the score in the export, or clear the row
//
//	IN002 - Malformed table: A table label is not "<number>: <name>"
//	        Action: Check the Table column for the reported line
//
//	IN003 - Missing column: The export is missing a required column
//	        Action: Export "All Entries" with the full column set
//
// # Configuration Errors (CFG001-CFG099)
//
//	CFG001 - No vendors: No gift card vendors are configured
//	         Action: Set GIFT_CARD_VENDORS or list vendors in the awards file
//
//	CFG002 - Unknown vendor: An override names a vendor that is not configured
//	         Action: Add the vendor to the vendor list or fix the override
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Unsupported format: Input is neither .csv nor .xlsx
//	          Action: Export the entries as CSV
//
//	FILE002 - Empty file: The export has no header row
//	          Action: Re-export the entries
//
// # Default Error (ERR000)
//
// Fallback when no sentinel matches. Check the log for the technical error.
package core

import (
	"errors"
	"fmt"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Support reference
}

type errorMapping struct {
	target error
	msg    UserMessage
}

// errorMappings is matched with errors.Is in order; first match wins.
var errorMappings = []errorMapping{
	{
		target: ErrInvalidScore,
		msg: UserMessage{
			Message: "A score in the export is not a number",
			Action:  "Fix the score in the export, or clear the row",
			Code:    "IN001",
		},
	},
	{
		target: ErrMalformedTableLabel,
		msg: UserMessage{
			Message: "A table label is not in the form \"<number>: <name>\"",
			Action:  "Check the Table column for the reported line",
			Code:    "IN002",
		},
	},
	{
		target: ErrMissingColumn,
		msg: UserMessage{
			Message: "The export is missing a required column",
			Action:  "Export all entries with the full column set",
			Code:    "IN003",
		},
	},
	{
		target: ErrMissingVendorConfiguration,
		msg: UserMessage{
			Message: "No gift card vendors are configured",
			Action:  "Set GIFT_CARD_VENDORS or list vendors in the awards file",
			Code:    "CFG001",
		},
	},
	{
		target: ErrUnknownVendor,
		msg: UserMessage{
			Message: "An override names a vendor that is not configured",
			Action:  "Add the vendor to the vendor list or fix the override",
			Code:    "CFG002",
		},
	},
	{
		target: ErrUnsupportedFormat,
		msg: UserMessage{
			Message: "The input file is neither CSV nor XLSX",
			Action:  "Export the entries as CSV",
			Code:    "FILE001",
		},
	},
	{
		target: ErrEmptyInput,
		msg: UserMessage{
			Message: "The export has no header row",
			Action:  "Re-export the entries",
			Code:    "FILE002",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Check the log output for details",
	Code:    "ERR000",
}

// MapError converts an error to a user-friendly message.
// Returns the zero UserMessage for a nil error and ERR000 when nothing matches.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.msg
		}
	}
	return defaultMessage
}

// FormatUserError formats err as "Message (Code: XXX). Action: detail".
//
// Example output: "A score in the export is not a number (Code: IN001). Fix the score in
// the export, or clear the row: line 4: Score \"abc\": invalid score"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s: %v", msg.Message, msg.Code, msg.Action, err)
}

// IsUserFacing reports whether err maps to a specific message rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
