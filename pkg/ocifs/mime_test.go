package ocifs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectContentType(t *testing.T) {
	pngMagic := []byte("\x89PNG\r\n\x1a\n0000000000000000")

	tests := []struct {
		name string
		path string
		data []byte
		want string
	}{
		{name: "table hit json", path: "config.json", data: []byte("{}"), want: "application/json"},
		{name: "table hit pdf", path: "report.PDF", data: nil, want: "application/pdf"},
		{name: "table beats sniffing", path: "page.html", data: []byte("not html at all"), want: "text/html"},
		{name: "sniffed png", path: "picture", data: pngMagic, want: "image/png"},
		{name: "unknown extension empty body", path: "blob.xyz", data: nil, want: "application/octet-stream"},
		{name: "no extension no body", path: "LICENSE", data: nil, want: "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectContentType(tt.path, tt.data))
		})
	}

	t.Run("sniffed text carries charset", func(t *testing.T) {
		got := detectContentType("NOTES", []byte("plain words"))
		assert.True(t, strings.HasPrefix(got, "text/plain"), "got %s", got)
	})
}
