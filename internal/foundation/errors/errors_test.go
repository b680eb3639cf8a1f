package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "apitoc.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}
		file, exists := err.Context().GetString("file")
		if !exists || file != "apitoc.yaml" {
			t.Errorf("expected context file=apitoc.yaml, got %v", file)
		}
		if got := err.Error(); got != "[config:fatal] invalid configuration (file=apitoc.yaml)" {
			t.Errorf("unexpected Error(): %s", got)
		}
	})

	t.Run("Error detection through wrapping", func(t *testing.T) {
		err := fmt.Errorf("loading: %w", ConfigError("test error").Build())

		if !IsClassified(err) {
			t.Error("expected error to be classified")
		}
		if !HasCategory(err, CategoryConfig) {
			t.Error("expected error to have config category")
		}
		if GetSeverity(err) != SeverityFatal {
			t.Error("expected error to have fatal severity")
		}
		if GetCategory(errors.New("plain")) != CategoryInternal {
			t.Error("expected plain errors to map to internal")
		}
	})

	t.Run("WithContext copies", func(t *testing.T) {
		base := ParseError("bad html").Build()
		withPage := base.WithContext("page", "a.html")

		if _, ok := base.Context().Get("page"); ok {
			t.Error("expected original context to be untouched")
		}
		if p, _ := withPage.Context().GetString("page"); p != "a.html" {
			t.Errorf("expected page=a.html, got %s", p)
		}
		if !errors.Is(withPage, base) {
			t.Error("expected errors with same category and message to match")
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	t.Run("Fluent API", func(t *testing.T) {
		originalErr := errors.New("original error")
		err := WrapError(originalErr, CategoryFileSystem, "write failed").
			Warning().
			WithContext("page", "index.html").
			WithContext("attempt", 2).
			Build()

		if err.Category() != CategoryFileSystem {
			t.Errorf("expected category %s, got %s", CategoryFileSystem, err.Category())
		}
		if err.Severity() != SeverityWarning {
			t.Errorf("expected severity %s, got %s", SeverityWarning, err.Severity())
		}
		if !errors.Is(err, originalErr) {
			t.Error("expected error to wrap original error")
		}
		page, _ := err.Context().GetString("page")
		if page != "index.html" {
			t.Errorf("expected page context 'index.html', got %s", page)
		}
	})

	t.Run("Convenience constructors", func(t *testing.T) {
		tests := []struct {
			name     string
			builder  *ErrorBuilder
			category ErrorCategory
			severity ErrorSeverity
		}{
			{"ConfigError", ConfigError("test"), CategoryConfig, SeverityFatal},
			{"ValidationError", ValidationError("test"), CategoryValidation, SeverityFatal},
			{"NotFoundError", NotFoundError("test"), CategoryNotFound, SeverityError},
			{"FileSystemError", FileSystemError("test"), CategoryFileSystem, SeverityError},
			{"ParseError", ParseError("test"), CategoryParse, SeverityError},
			{"RenderError", RenderError("test"), CategoryRender, SeverityError},
			{"RuntimeError", RuntimeError("test"), CategoryRuntime, SeverityFatal},
			{"InternalError", InternalError("test"), CategoryInternal, SeverityFatal},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.builder.Build()
				if err.Category() != tt.category {
					t.Errorf("expected category %s, got %s", tt.category, err.Category())
				}
				if err.Severity() != tt.severity {
					t.Errorf("expected severity %s, got %s", tt.severity, err.Severity())
				}
			})
		}
	})
}

func TestErrorContext(t *testing.T) {
	t.Run("Context operations", func(t *testing.T) {
		ctx := make(ErrorContext)
		ctx = ctx.Set("key1", "value1")
		ctx = ctx.Set("key2", 42)

		value1, exists1 := ctx.GetString("key1")
		if !exists1 || value1 != "value1" {
			t.Errorf("expected key1=value1, got %v", value1)
		}
		value2, exists2 := ctx.Get("key2")
		if !exists2 || value2 != 42 {
			t.Errorf("expected key2=42, got %v", value2)
		}
		if _, exists3 := ctx.Get("nonexistent"); exists3 {
			t.Error("expected nonexistent key to not exist")
		}
	})

	t.Run("Context merge", func(t *testing.T) {
		ctx1 := ErrorContext{"key1": "value1", "shared": "original"}
		ctx2 := ErrorContext{"key2": "value2", "shared": "overridden"}

		merged := ctx1.Merge(ctx2)

		if v, _ := merged.GetString("key1"); v != "value1" {
			t.Errorf("expected key1=value1, got %s", v)
		}
		if v, _ := merged.GetString("key2"); v != "value2" {
			t.Errorf("expected key2=value2, got %s", v)
		}
		if v, _ := merged.GetString("shared"); v != "overridden" {
			t.Errorf("expected shared=overridden, got %s", v)
		}
	})
}
