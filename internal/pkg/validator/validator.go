package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Describe flattens binding validation failures into a field -> rule map for
// error response details. Returns nil for malformed JSON and other non-field
// errors.
func Describe(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
