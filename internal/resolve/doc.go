// Package resolve turns mistyped repo and group names into helpful errors.
//
// Commands look up targets by name; when a lookup fails this package builds
// the error, fuzzy-matching the input against the known names so the user
// gets a did-you-mean hint instead of a bare failure.
package resolve
