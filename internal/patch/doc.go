// Package patch writes and edits files inside a project directory: whole-file
// writes, anchored insertions, regular-expression substitutions, line
// deletions, renames and the Rails "application" config injection. Paths are
// relative to the project root. Edits whose anchor is absent return
// ErrAnchorNotFound and leave the file untouched.
package patch
