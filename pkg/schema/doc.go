// Package schema provides lightweight runtime type checks for step output
// fields and typed configuration requirements.
//
// A Schema maps field names to Type validators. Steps declare their Output
// schema once; the pipeline driver validates every produced Output against
// it, turning a missing or mistyped field into an execution failure.
package schema
