package regex

import "regexp"

var (
	// Remote URL patterns: host, owner and repository name.
	RemoteSSH   = regexp.MustCompile(`^git@([^:]+):([^/]+)/(.+?)(?:\.git)?$`)
	RemoteHTTPS = regexp.MustCompile(`^https://(?:[^@/]+@)?([^/]+)/([^/]+)/(.+?)(?:\.git)?$`)
)
