// Package config implements the hierarchical configuration Context.
//
// A Context is an immutable tree of namespaces built from ordered sources
// (files, environment, Redis, literal maps). Steps declare which dotted
// paths they need and resolve them at validation time; derived Contexts
// are produced by merging, never by in-place edits.
package config
