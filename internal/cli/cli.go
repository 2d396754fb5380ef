// Package cli implements the gridart command-line interface.
//
// # Commands
//
//   - render: draw a diagram file (Mermaid, JSON or YAML) as text
//   - convert: translate a diagram between Mermaid, JSON, YAML and text
//   - markdown: keep rendered drawings next to diagram blocks in Markdown
//   - shapes: show every node shape
//
// # Configuration
//
// Render settings come from the defaults, then the TOML file named by
// --config, then GRIDART_* environment variables, then command flags.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// travels in the command context.
package cli
