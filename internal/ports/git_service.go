package ports

import "context"

// DiffSource provides the version control context used to build prompts.
type DiffSource interface {
	// Diff returns the working tree diff, or the staged one when staged is true.
	Diff(ctx context.Context, staged, nameOnly bool) (string, error)
	// DiffRef returns the diff between ref and the working tree.
	DiffRef(ctx context.Context, ref string) (string, error)
	// Log returns the commit log for sinceRef..HEAD.
	Log(ctx context.Context, sinceRef string) (string, error)
}

// RepoInspector exposes what is needed to open a pull request from the
// current checkout.
type RepoInspector interface {
	GetCurrentBranch(ctx context.Context) (string, error)
	GetRepoInfo(ctx context.Context) (owner, repo, provider string, err error)
}
