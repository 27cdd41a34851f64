// Package validation declares the request schemas as ordered lists of field
// rules. Evaluation order is a contract: the response message is always the
// first violation in schema-declaration order, while the errors list carries
// every violated field.
package validation

import (
	validation "github.com/go-ozzo/ozzo-validation"

	apperrors "github.com/J-CamiloG/AppKit-API/pkg/util"
)

// fieldRules binds one payload field to its rules. Rules run in order and the
// first failing rule supplies the field's message.
type fieldRules struct {
	name  string
	value interface{}
	rules []validation.Rule
}

func apply(fields []fieldRules) error {
	var violated []string
	message := ""

	for _, f := range fields {
		if err := validation.Validate(f.value, f.rules...); err != nil {
			violated = append(violated, f.name)
			if message == "" {
				message = err.Error()
			}
		}
	}

	if len(violated) > 0 {
		return apperrors.NewValidationError(message, violated)
	}
	return nil
}
