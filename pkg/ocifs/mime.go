package ocifs

import (
	"net/http"
	"path/filepath"
	"strings"
)

// mimeByExtension resolves the common cases without touching the body.
// Sniffing cannot tell JSON from plain text or XML from HTML reliably,
// so the table wins whenever the extension is known.
var mimeByExtension = map[string]string{
	".json": "application/json",
	".xml":  "application/xml",
	".html": "text/html",
	".htm":  "text/html",
	".css":  "text/css",
	".js":   "text/javascript",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".csv":  "text/csv",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
	".pdf":  "application/pdf",
	".zip":  "application/zip",
	".gz":   "application/gzip",
	".tar":  "application/x-tar",
	".mp3":  "audio/mpeg",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".woff": "font/woff",
	".wasm": "application/wasm",
}

const defaultContentType = "application/octet-stream"

// detectContentType picks a MIME type for a write: extension table
// first, then magic-byte sniffing over the leading bytes, then the
// binary default.
func detectContentType(path string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ct, ok := mimeByExtension[ext]; ok {
		return ct
	}
	if len(data) > 0 {
		// DetectContentType never returns ""; it falls back to the
		// binary default on its own.
		return http.DetectContentType(data)
	}
	return defaultContentType
}
