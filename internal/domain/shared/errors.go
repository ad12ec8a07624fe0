package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Catalog errors

type CatalogError struct {
	*DomainError
	Entry string
}

func NewCatalogError(entry, message string) *CatalogError {
	return &CatalogError{
		DomainError: &DomainError{Message: fmt.Sprintf("catalog entry %s: %s", entry, message)},
		Entry:       entry,
	}
}
