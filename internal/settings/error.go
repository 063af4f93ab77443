package settings

import "errors"

var (
	ErrSettingsNotFound = errors.New("settings row not found")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	ErrNegativeAmount   = errors.New("amount cannot be negative")
)
