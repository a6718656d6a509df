// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline mocks in individual test files, these
// standardized implementations are shared across test packages. Each mock
// exposes function fields to override behavior per test, with a simple
// in-memory default where that makes sense.
package mocks
