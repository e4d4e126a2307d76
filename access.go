package html2pdf

import (
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
)

// AccessPolicy restricts the sub-resources a page may load.
// The page's own document is never subject to it.
type AccessPolicy struct {
	BlockLocal     bool     // reject file: requests
	BlockRemote    bool     // reject http(s) and ws(s) requests
	AllowedPaths   []string // file: prefixes exempt from BlockLocal
	AllowedDomains []string // hosts (and their subdomains) exempt from BlockRemote
}

// Active reports whether the policy can reject anything.
func (a AccessPolicy) Active() bool {
	return a.BlockLocal || a.BlockRemote
}

// Allows reports whether a request for rawURL may proceed.
func (a AccessPolicy) Allows(rawURL string) bool {
	if !a.Active() {
		return true
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	switch strings.ToLower(u.Scheme) {
	case "data", "about", "blob":
		return true
	case "file":
		return !a.BlockLocal || a.pathAllowed(fileURLPath(u))
	case "http", "https", "ws", "wss":
		return !a.BlockRemote || a.hostAllowed(u.Hostname())
	default:
		return true
	}
}

// pathAllowed reports whether p lies under one of AllowedPaths.
func (a AccessPolicy) pathAllowed(p string) bool {
	p = filepath.Clean(p)
	for _, allowed := range a.AllowedPaths {
		if allowed == "" {
			continue
		}
		base, err := filepath.Abs(allowed)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(base, p)
		if err != nil {
			continue
		}
		if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
			return true
		}
	}
	return false
}

// hostAllowed matches host against AllowedDomains, exact or as a subdomain.
func (a AccessPolicy) hostAllowed(host string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if host == "" {
		return false
	}
	for _, d := range a.AllowedDomains {
		d = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(d), "."))
		if d == "" {
			continue
		}
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// fileURLPath returns the local path of a file: URL.
func fileURLPath(u *url.URL) string {
	p := u.Path
	if runtime.GOOS == "windows" {
		p = strings.TrimPrefix(p, "/")
	}
	return filepath.FromSlash(p)
}

// allowsRequest decides a request made while loading the document docURL.
// The navigation to the document itself always proceeds.
func (a AccessPolicy) allowsRequest(docURL, reqURL string, navigation bool) bool {
	if navigation && sameDocument(docURL, reqURL) {
		return true
	}
	return a.Allows(reqURL)
}

// sameDocument compares two URLs ignoring fragments and percent-encoding
// differences.
func sameDocument(a, b string) bool {
	ua, errA := url.Parse(a)
	ub, errB := url.Parse(b)
	if errA != nil || errB != nil {
		return a == b
	}
	ua.Fragment, ua.RawFragment = "", ""
	ub.Fragment, ub.RawFragment = "", ""
	if ua.Path == "" && ua.Host != "" {
		ua.Path = "/"
	}
	if ub.Path == "" && ub.Host != "" {
		ub.Path = "/"
	}
	return strings.EqualFold(ua.Scheme, ub.Scheme) &&
		strings.EqualFold(ua.Host, ub.Host) &&
		ua.Path == ub.Path &&
		ua.RawQuery == ub.RawQuery &&
		ua.Opaque == ub.Opaque
}
