// Package shared holds cross-cutting helpers that do not belong to any
// single domain or architectural layer.
//
// The testutil subpackage provides an in-memory slog handler so tests can
// assert on what a component logged without parsing formatted output:
//
//	func TestSomething(t *testing.T) {
//	    logger, capture := testutil.NewTestLogger(t)
//	    component := NewComponent(logger)
//	    component.Run()
//	    assert.True(t, capture.HasMessage("run complete"))
//	}
//
// Keep this package free of business logic and of dependencies on other
// internal packages; anything domain-specific belongs next to its domain.
package shared
