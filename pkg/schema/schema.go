package schema

// Schema is a map of field names to their expected types.
// Steps declare one Schema for their Output; the framework checks produced
// fields against it after every successful execution.
// Example: {"rows_written": Int(), "target_path": String()}
type Schema map[string]Type

// Validate checks if data conforms to the schema. Every declared field
// must be present and type-conformant; fields not named by the schema are
// ignored. Returns an error aggregating all failures found.
func Validate(schema Schema, data map[string]any) error {
	if len(schema) == 0 {
		// No schema = no validation
		return nil
	}

	var errs []error

	for fieldName, fieldType := range schema {
		value, exists := data[fieldName]
		if !exists {
			errs = append(errs, &FieldError{
				Field:  fieldName,
				Reason: "required",
			})
			continue
		}

		if err := fieldType.Validate(value); err != nil {
			errs = append(errs, &FieldError{
				Field:  fieldName,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}

	return nil
}
