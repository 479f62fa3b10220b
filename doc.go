// Package koheesio is the top-level entry point of the pipeline framework.
// It ties the building blocks together: a default process Context fed from
// the environment, YAML pipeline definitions that build Tasks from the step
// registry, and a Run convenience that wires logging, hooks and metrics.
//
// The building blocks themselves live in the sub-packages: pkg/pipeline
// (Step, Task, Output, Run), pkg/config (the Context), pkg/schema (Output
// schemas), pkg/steps (ready-made steps and the registry) and pkg/adapters
// (Context sources).
package koheesio
