// Package git provides the git operations used to pick search candidates.
package git

import "context"

// Git defines git operations needed by refract.
type Git interface {
	// Root returns the top-level directory of the work tree containing dir.
	Root(ctx context.Context, dir string) (string, error)
	// LsFiles lists tracked and untracked, non-ignored files below dir,
	// relative to dir.
	LsFiles(ctx context.Context, dir string) ([]string, error)
}
