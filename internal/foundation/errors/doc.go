// Package errors provides the classified error primitives used across apitoc.
//
// Errors carry a category (config, filesystem, parse, ...), a severity and free-form context,
// and are built with a fluent builder. The CLI adapter turns them into exit codes and
// user-facing messages.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryFileSystem, "failed to read page").
//		WithContext("page", path).
//		Build()
package errors
