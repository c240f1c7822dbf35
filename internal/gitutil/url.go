package gitutil

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/codemaster-gdg/codementor/internal/core"
)

// RequiredPrefix is the only hosted-repository prefix the assistant accepts.
const RequiredPrefix = "https://github.com/"

var repoURLRegex = regexp.MustCompile(`^https://github\.com/[A-Za-z0-9._-]+/[A-Za-z0-9._-]+$`)

// ValidateRepoURL checks that rawURL references a GitHub repository of the form
// https://github.com/{owner}/{repo} and returns the normalized URL. A trailing
// slash or .git suffix is tolerated. Malformed URLs fail with
// core.ErrInvalidRepoURL before any clone is attempted.
func ValidateRepoURL(rawURL string) (string, error) {
	url := strings.TrimSpace(rawURL)
	url = strings.TrimSuffix(url, "/")
	url = strings.TrimSuffix(url, ".git")

	if !strings.HasPrefix(url, RequiredPrefix) {
		return "", fmt.Errorf("%w: %q must start with %s", core.ErrInvalidRepoURL, rawURL, RequiredPrefix)
	}
	if !repoURLRegex.MatchString(url) {
		return "", fmt.Errorf("%w: %q is not of the form %sowner/repo", core.ErrInvalidRepoURL, rawURL, RequiredPrefix)
	}
	return url, nil
}
