package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/thomas-vilte/gitai/internal/errors"
	"github.com/thomas-vilte/gitai/internal/logger"
	"github.com/thomas-vilte/gitai/internal/ports"
	"github.com/thomas-vilte/gitai/internal/regex"
)

var (
	_ ports.DiffSource    = (*GitService)(nil)
	_ ports.RepoInspector = (*GitService)(nil)
)

// GitService runs the git executable in dir. An empty dir means the current
// working directory.
type GitService struct {
	dir string
}

func NewGitService(dir string) *GitService {
	return &GitService{dir: dir}
}

// Diff returns `git diff`, adding --staged and --name-only as requested.
func (s *GitService) Diff(ctx context.Context, staged, nameOnly bool) (string, error) {
	args := []string{"diff"}
	if nameOnly {
		args = append(args, "--name-only")
	}
	if staged {
		args = append(args, "--staged")
	}
	return s.run(ctx, args...)
}

// DiffRef returns the changes between ref and the working tree.
func (s *GitService) DiffRef(ctx context.Context, ref string) (string, error) {
	return s.run(ctx, "diff", ref)
}

// Log returns the commits reachable from HEAD but not from sinceRef.
func (s *GitService) Log(ctx context.Context, sinceRef string) (string, error) {
	return s.run(ctx, "log", fmt.Sprintf("%s..HEAD", sinceRef))
}

func (s *GitService) GetCurrentBranch(ctx context.Context) (string, error) {
	output, err := s.run(ctx, "branch", "--show-current")
	if err != nil {
		return "", err
	}

	branchName := strings.TrimSpace(output)
	if branchName == "" {
		return "", errors.ErrNoBranch
	}

	return branchName, nil
}

// GetRepoInfo returns owner, repository name and provider of the origin remote.
func (s *GitService) GetRepoInfo(ctx context.Context) (string, string, string, error) {
	output, err := s.run(ctx, "remote", "get-url", "origin")
	if err != nil {
		return "", "", "", errors.ErrGetRepoURL.WithError(err)
	}

	return parseRepoURL(strings.TrimSpace(output))
}

func (s *GitService) run(ctx context.Context, args ...string) (string, error) {
	log := logger.FromContext(ctx)

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = s.dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debug("running git", "args", strings.Join(args, " "))

	if err := cmd.Run(); err != nil {
		log.Debug("git command failed",
			"args", strings.Join(args, " "),
			"error", err)
		return "", errors.ErrExternalTool.
			WithError(err).
			WithContext("args", strings.Join(args, " ")).
			WithContext("stderr", strings.TrimSpace(stderr.String()))
	}

	return strings.ToValidUTF8(stdout.String(), "�"), nil
}

func parseRepoURL(url string) (string, string, string, error) {
	var matches []string
	if regex.RemoteSSH.MatchString(url) {
		matches = regex.RemoteSSH.FindStringSubmatch(url)
	} else if regex.RemoteHTTPS.MatchString(url) {
		matches = regex.RemoteHTTPS.FindStringSubmatch(url)
	}

	if len(matches) >= 4 {
		provider := detectProvider(matches[1])
		return matches[2], matches[3], provider, nil
	}

	return "", "", "", errors.ErrExtractRepoInfo.WithContext("url", url)
}

func detectProvider(host string) string {
	if strings.Contains(host, "github") {
		return "github"
	}
	if strings.Contains(host, "gitlab") {
		return "gitlab"
	}
	return "unknown"
}
