package ocifs

import (
	"strings"

	"github.com/objectfs/ocifs/pkg/errors"
)

// prefixer translates between the logical paths callers use and the
// physical keys stored in the bucket. The configured prefix is
// normalized exactly once, here, so every later apply/strip is plain
// string concatenation.
type prefixer struct {
	// prefix is "" when disabled, otherwise canonical: no leading
	// slash, exactly one trailing slash.
	prefix string
}

// newPrefixer canonicalizes raw. "x", "/x", "x/", "/x/" and "//x//"
// all produce the same prefixer; empty (or all-slash) input disables
// prefixing.
func newPrefixer(raw string) prefixer {
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return prefixer{}
	}
	return prefixer{prefix: trimmed + "/"}
}

func (p prefixer) enabled() bool {
	return p.prefix != ""
}

// apply converts a logical path to its physical key.
func (p prefixer) apply(path string) string {
	return p.prefix + path
}

// strip converts a physical key back to a logical path. Keys outside
// the prefix are returned unchanged; the service does not produce them
// for prefixed queries, so there is nothing meaningful to strip.
func (p prefixer) strip(key string) string {
	return strings.TrimPrefix(key, p.prefix)
}

// normalizeLogical validates a caller-supplied path and trims the
// leading-slash spelling difference. Trailing slashes are preserved:
// they are how callers mark directory-shaped paths. Paths that climb
// out of the prefix with ".." segments are rejected.
func normalizeLogical(path string) (string, error) {
	path = strings.TrimLeft(path, "/")
	for _, segment := range strings.Split(path, "/") {
		if segment == ".." {
			return "", errors.Newf(errors.ErrCodeInvalidPath, "path %q contains a parent traversal", path)
		}
	}
	return path, nil
}
