// Package types defines the catalog entity types, the input structs accepted
// by catalog operations, and the sentinel errors callers match with errors.Is.
//
// Entities returned by the catalog are copies; mutating them does not change
// catalog state.
package types
