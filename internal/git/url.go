package git

import (
	"fmt"
	"path"
	"strings"
)

// RepoName extracts the repository name from a clone URL.
// Works for both ssh and https URLs.
func RepoName(url string) string {
	url = strings.TrimSuffix(strings.TrimSuffix(url, "/"), ".git")
	if i := strings.LastIndexAny(url, "/:"); i >= 0 {
		return url[i+1:]
	}
	return url
}

// RewriteOwner replaces the owner segment of a clone URL, producing the URL
// of a fork under the given user. Unsupported URL shapes are returned
// unchanged along with an error.
func RewriteOwner(url, user string) (string, error) {
	if rest, ok := strings.CutPrefix(url, "git@"); ok {
		host, repoPath, found := strings.Cut(rest, ":")
		if !found {
			return url, fmt.Errorf("cannot rewrite owner of %q", url)
		}
		parts := strings.SplitN(repoPath, "/", 2)
		if len(parts) != 2 {
			return url, fmt.Errorf("cannot rewrite owner of %q", url)
		}
		return "git@" + host + ":" + user + "/" + parts[1], nil
	}

	for _, scheme := range []string{"https://", "http://"} {
		rest, ok := strings.CutPrefix(url, scheme)
		if !ok {
			continue
		}
		parts := strings.SplitN(rest, "/", 3)
		if len(parts) != 3 {
			return url, fmt.Errorf("cannot rewrite owner of %q", url)
		}
		return scheme + parts[0] + "/" + user + "/" + parts[2], nil
	}

	return url, fmt.Errorf("cannot rewrite owner of %q", url)
}

// BrowserURL converts a clone URL into a URL a browser can open.
func BrowserURL(url string) string {
	url = strings.TrimSuffix(url, ".git")
	if rest, ok := strings.CutPrefix(url, "git@"); ok {
		host, repoPath, found := strings.Cut(rest, ":")
		if !found {
			return "https://" + rest
		}
		return "https://" + host + "/" + path.Clean(repoPath)
	}
	return url
}
