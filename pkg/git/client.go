package git

import (
	"fmt"
	"log/slog"
	"os/exec"
	"path"
	"path/filepath"
	"strings"
)

// Client wraps read-only git command execution in a working directory.
type Client struct {
	WorkDir string
	Logger  *slog.Logger
}

// NewClient creates a new git client for the given working directory.
func NewClient(workDir string, logger *slog.Logger) *Client {
	return &Client{
		WorkDir: workDir,
		Logger:  logger,
	}
}

// IsInstalled checks if git is available in the system path.
func IsInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Run executes a raw git command in the working directory.
func (c *Client) Run(args ...string) (string, error) {
	if c.Logger != nil {
		c.Logger.Debug("executing git", "args", args, "dir", c.WorkDir)
	}

	cmd := exec.Command("git", args...)
	cmd.Dir = c.WorkDir

	out, err := cmd.Output()
	output := string(out)

	if err != nil {
		return output, fmt.Errorf("git %s failed: %w", args[0], err)
	}

	return strings.TrimSpace(output), nil
}

// RemoteURL returns the URL of the origin remote.
func (c *Client) RemoteURL() (string, error) {
	return c.Run("remote", "get-url", "origin")
}

// ProjectName guesses the name of the project the working directory belongs to:
// the repository name of the origin remote, or the directory name when there is
// no remote (or no git).
func (c *Client) ProjectName() string {
	if IsInstalled() {
		if url, err := c.RemoteURL(); err == nil {
			if name := RepoName(url); name != "" {
				return name
			}
		} else if c.Logger != nil {
			c.Logger.Debug("no origin remote, using directory name", "error", err)
		}
	}

	abs, err := filepath.Abs(c.WorkDir)
	if err != nil {
		return ""
	}
	name := filepath.Base(abs)
	if name == string(filepath.Separator) || name == "." {
		return ""
	}
	return name
}

// RepoName extracts the repository name from a remote URL.
//
//	git@github.com:aretw0/devlog.git -> devlog
//	https://github.com/aretw0/devlog -> devlog
func RepoName(url string) string {
	url = strings.TrimSpace(url)
	url = strings.TrimRight(url, "/")
	if i := strings.LastIndex(url, ":"); i >= 0 && !strings.Contains(url, "://") {
		url = url[i+1:]
	}
	return strings.TrimSuffix(path.Base(url), ".git")
}
