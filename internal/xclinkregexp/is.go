package xclinkregexp

func IsIOSBase(dir string) bool {
	return IOSBase.MatchString(dir)
}

func IsURLScheme(scheme string) bool {
	return URLScheme.MatchString(scheme)
}
