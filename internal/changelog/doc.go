// Package changelog groups annotated commits by the project version they
// belong to and renders the groups as Markdown release notes.
//
// This package implements:
//   - Strict semantic version validation and precedence ordering
//   - Grouping of commits by exact version string, dropping invalid versions
//   - Markdown rendering with one "## Version <v>" section per group
//
// Grouping and rendering are pure: the only side effect is the warning
// emitted for each dropped entry.
package changelog
