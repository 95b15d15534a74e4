package ocifs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objectfs/ocifs/pkg/errors"
)

func TestNewPrefixer_Normalization(t *testing.T) {
	// every spelling of the same prefix canonicalizes identically
	spellings := []string{"x", "/x", "x/", "/x/", "//x//"}
	for _, raw := range spellings {
		p := newPrefixer(raw)
		assert.Equal(t, "x/", p.prefix, "raw %q", raw)
		assert.True(t, p.enabled(), "raw %q", raw)
	}

	// normalizing an already-canonical prefix changes nothing
	canonical := newPrefixer("x")
	assert.Equal(t, canonical.prefix, newPrefixer(canonical.prefix).prefix)
}

func TestNewPrefixer_Disabled(t *testing.T) {
	for _, raw := range []string{"", "/", "//"} {
		p := newPrefixer(raw)
		assert.False(t, p.enabled(), "raw %q", raw)
		assert.Equal(t, "file.txt", p.apply("file.txt"))
		assert.Equal(t, "file.txt", p.strip("file.txt"))
	}
}

func TestPrefixer_RoundTrip(t *testing.T) {
	prefixes := []string{"", "uploads", "a/b/c"}
	paths := []string{"file.txt", "docs/report.pdf", "docs/sub/", ""}

	for _, rawPrefix := range prefixes {
		p := newPrefixer(rawPrefix)
		for _, path := range paths {
			assert.Equal(t, path, p.strip(p.apply(path)),
				"prefix %q path %q", rawPrefix, path)
		}
	}
}

func TestPrefixer_Apply(t *testing.T) {
	p := newPrefixer("/uploads/")
	assert.Equal(t, "uploads/hello.txt", p.apply("hello.txt"))
	assert.Equal(t, "uploads/docs/a.txt", p.apply("docs/a.txt"))
	assert.Equal(t, "uploads/", p.apply(""))
}

func TestNormalizeLogical(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain path", in: "docs/a.txt", want: "docs/a.txt"},
		{name: "leading slash trimmed", in: "/docs/a.txt", want: "docs/a.txt"},
		{name: "trailing slash preserved", in: "docs/", want: "docs/"},
		{name: "empty", in: "", want: ""},
		{name: "dot segment allowed", in: "docs/./a.txt", want: "docs/./a.txt"},
		{name: "parent traversal rejected", in: "../secrets", wantErr: true},
		{name: "embedded traversal rejected", in: "docs/../../etc/passwd", wantErr: true},
		{name: "trailing traversal rejected", in: "docs/..", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeLogical(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.ErrCodeInvalidPath, errors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
