// Package ui provides semantic text formatting for CLI output.
//
// Formatters degrade gracefully when color is unavailable, substituting
// textual decoration (backticks for code, quotes for highlights) so the
// output stays readable in pipes, logs, and NO_COLOR environments.
package ui
