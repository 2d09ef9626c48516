package xclinkregexp

import "regexp"

var (
	IOSBase = regexp.MustCompile("ios")
	// URLScheme is the scheme production from RFC 3986.
	URLScheme = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*$`)
)
