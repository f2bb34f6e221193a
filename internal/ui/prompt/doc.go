// Package prompt provides the interactive confirmation used before
// destructive operations like removing a group or recreating a venv.
package prompt
