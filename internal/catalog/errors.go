package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrMissingQuery    = errors.New("search query is required")
)

// InvalidFieldError reports the first supplied value that is not legal for the
// product. Label and Plural are the human names used in the message.
type InvalidFieldError struct {
	Field   string
	Label   string
	Plural  string
	Value   string
	Product string
	Allowed []string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("Invalid %s '%s' for product '%s'. Valid %s: %s",
		e.Label, e.Value, e.Product, e.Plural, strings.Join(e.Allowed, ", "))
}
