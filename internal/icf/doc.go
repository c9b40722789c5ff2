// Package icf maps clinical text to ICF codes and analyzes performance and
// capacity qualifiers. Everything here is pure computation over read-only
// reference tables, so functions may be called concurrently.
package icf
