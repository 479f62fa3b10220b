// Package ports defines the driven-side interfaces of the framework.
//
// Adapters (YAML files, environment, Redis) implement these interfaces so
// the core never depends on a concrete configuration backend. The package
// also exports reusable contract test suites that adapter packages run
// against their implementations.
package ports
