// Package git wraps the git commands dbx needs: cloning, remote management,
// branch inspection, and the fetch/rebase/push cycle used by sync. All
// operations shell out to the git binary.
package git
