package util

import (
	"unicode/utf8"

	"github.com/google/uuid"
)

const maxFreeTextLength = 512

func ValidateUUID(id string) bool {
	return uuid.Validate(id) == nil
}

// ValidateFreeText bounds descriptions and merchant names sent for categorization.
func ValidateFreeText(text string) bool {
	return utf8.ValidString(text) && utf8.RuneCountInString(text) <= maxFreeTextLength
}
