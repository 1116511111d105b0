package utils

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// GitRepo describes the GitHub repository a local checkout tracks
type GitRepo struct {
	Owner  string
	Name   string
	Branch string
}

// DetectGitRepo reads the origin remote and current branch of the checkout at dir
func DetectGitRepo(ctx context.Context, dir string) (GitRepo, error) {
	remote, err := runGit(ctx, dir, "remote", "get-url", "origin")
	if err != nil {
		return GitRepo{}, fmt.Errorf("could not read origin remote: %w", err)
	}

	owner, name, ok := ParseGithubRemote(remote)
	if !ok {
		return GitRepo{}, fmt.Errorf("origin %q is not a GitHub repository", remote)
	}

	repo := GitRepo{Owner: owner, Name: name}

	branch, err := runGit(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err == nil && branch != "HEAD" {
		repo.Branch = branch
	}

	return repo, nil
}

func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// ParseGithubRemote extracts owner and name from a GitHub remote URL in
// https, ssh or scp-like form
func ParseGithubRemote(remote string) (owner, name string, ok bool) {
	remote = strings.TrimSpace(remote)

	var path string
	switch {
	case strings.HasPrefix(remote, "git@github.com:"):
		path = strings.TrimPrefix(remote, "git@github.com:")
	case strings.HasPrefix(remote, "ssh://git@github.com/"):
		path = strings.TrimPrefix(remote, "ssh://git@github.com/")
	case strings.HasPrefix(remote, "https://github.com/"):
		path = strings.TrimPrefix(remote, "https://github.com/")
	case strings.HasPrefix(remote, "http://github.com/"):
		path = strings.TrimPrefix(remote, "http://github.com/")
	default:
		return "", "", false
	}

	path = strings.TrimSuffix(strings.TrimSuffix(path, "/"), ".git")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
