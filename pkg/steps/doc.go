// Package steps ships ready-made Step implementations (file I/O, HTTP
// fetch, template transform, delay) and a factory registry that builds
// them from declarative pipeline definitions.
package steps
