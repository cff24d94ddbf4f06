// Package errors provides structured, actionable error messages for the
// elementview tooling layers (configuration, scene documents, export sinks,
// the inspector).
//
// The element core itself never returns errors from rendering or resizing;
// everything that can fail lives at the edges and reports through this
// package.
//
// # Error Categories
//
//   - config: elementview.json could not be read, parsed or validated
//   - scene: a scene document is malformed or references unknown elements
//   - export: a target could not be encoded or delivered to a sink
//   - inspector: the inspector server could not start
//   - cli: command line usage errors
//
// # Usage
//
//	err := errors.New("E201").
//	    WithLocation("scenes/dashboard.yaml", 14, 3).
//	    WithSuggestion("Check the indentation of the children list")
//
//	fmt.Println(err.Format())
package errors
