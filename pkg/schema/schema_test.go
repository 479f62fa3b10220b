package schema

import (
	"strings"
	"testing"
)

func TestValidate_EmptySchema(t *testing.T) {
	if err := Validate(nil, map[string]any{"anything": 1}); err != nil {
		t.Errorf("empty schema should accept any data, got %v", err)
	}
}

func TestValidate_AllFieldsPresent(t *testing.T) {
	s := Schema{
		"target_path":  String(),
		"rows_written": Int(),
	}
	data := map[string]any{
		"target_path":  "/tmp/out.csv",
		"rows_written": 120,
		"extra":        true, // undeclared fields are allowed
	}

	if err := Validate(s, data); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidate_MissingField(t *testing.T) {
	s := Schema{"rows_written": Int()}

	err := Validate(s, map[string]any{})
	if err == nil {
		t.Fatal("Validate() should fail for missing field")
	}
	if !strings.Contains(err.Error(), "rows_written") {
		t.Errorf("error should name the missing field, got %v", err)
	}
}

func TestValidate_WrongType(t *testing.T) {
	s := Schema{"rows_written": Int()}

	err := Validate(s, map[string]any{"rows_written": "a lot"})
	if err == nil {
		t.Fatal("Validate() should fail for mistyped field")
	}
}

func TestValidate_AggregatesFailures(t *testing.T) {
	s := Schema{
		"a": Int(),
		"b": String(),
	}

	err := Validate(s, map[string]any{"a": "nope"})
	if err == nil {
		t.Fatal("Validate() should fail")
	}
	failures := FieldErrors(err)
	if len(failures) != 2 {
		t.Errorf("expected 2 field errors, got %d: %v", len(failures), err)
	}
}
