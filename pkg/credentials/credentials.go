// Package credentials holds the API signing identity: tenancy, user,
// key fingerprint, and the private key material used to sign requests.
package credentials

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"os"
	"regexp"
	"strings"

	"github.com/objectfs/ocifs/pkg/errors"
)

// KeyProvider supplies PEM-encoded private key material. Providers are
// pure over their source: the same underlying content always yields the
// same bytes. Key material is read at call time, never cached here.
type KeyProvider interface {
	PrivateKeyPEM() ([]byte, error)
}

// fingerprintPattern is the service's key fingerprint shape: sixteen
// colon-separated hex byte pairs.
var fingerprintPattern = regexp.MustCompile(`^([0-9a-fA-F]{2}:){15}[0-9a-fA-F]{2}$`)

// Credentials identifies the signing principal. Immutable after
// construction; safe to share across goroutines.
type Credentials struct {
	TenancyID   string
	UserID      string
	Fingerprint string
	Key         KeyProvider
}

// KeyID returns the composite key identifier the service expects in the
// Authorization header: tenancy, user, and fingerprint joined by "/".
func (c Credentials) KeyID() string {
	return c.TenancyID + "/" + c.UserID + "/" + c.Fingerprint
}

// Validate checks the structural invariants of the credentials. Every
// problem is reported in a single error. Key material is not touched
// here; unreadable or malformed keys surface as signing errors on the
// first request instead.
func (c Credentials) Validate() error {
	var missing []string
	if c.TenancyID == "" {
		missing = append(missing, "tenancy_id")
	}
	if c.UserID == "" {
		missing = append(missing, "user_id")
	}
	if c.Fingerprint == "" {
		missing = append(missing, "key_fingerprint")
	}
	if c.Key == nil {
		missing = append(missing, "private_key")
	}
	if len(missing) > 0 {
		return errors.NewMissingConfig(missing...)
	}

	if !fingerprintPattern.MatchString(c.Fingerprint) {
		return errors.Newf(errors.ErrCodeInvalidFingerprint,
			"fingerprint %q is not 16 colon-separated hex byte pairs", c.Fingerprint)
	}

	return nil
}

// FileKeyProvider reads the private key from a file on every call.
type FileKeyProvider struct {
	Path string
}

// NewFileKeyProvider creates a provider reading key material from path.
func NewFileKeyProvider(path string) *FileKeyProvider {
	return &FileKeyProvider{Path: path}
}

// PrivateKeyPEM reads and sanity-checks the key file. A missing file, an
// unreadable file, and a file without PEM content are reported as three
// distinct error codes.
func (p *FileKeyProvider) PrivateKeyPEM() ([]byte, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrCodeKeyNotFound, "key file %s does not exist", p.Path).WithCause(err)
		}
		return nil, errors.Newf(errors.ErrCodeKeyUnreadable, "reading key file %s", p.Path).WithCause(err)
	}
	if !looksLikePEM(data) {
		return nil, errors.Newf(errors.ErrCodeKeyMalformed, "key file %s contains no PEM block", p.Path)
	}
	return data, nil
}

// InlineKeyProvider carries the key in configuration, either as raw PEM
// or as base64-encoded PEM.
type InlineKeyProvider struct {
	Content string
}

// NewInlineKeyProvider creates a provider over in-memory key material.
func NewInlineKeyProvider(content string) *InlineKeyProvider {
	return &InlineKeyProvider{Content: content}
}

// PrivateKeyPEM returns the configured key material. Base64 content is
// decoded first; content that is neither PEM nor base64-of-PEM is a
// configuration mistake and is rejected, never passed through.
func (p *InlineKeyProvider) PrivateKeyPEM() ([]byte, error) {
	raw := []byte(p.Content)
	if looksLikePEM(raw) {
		return raw, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(p.Content))
	if err != nil {
		return nil, errors.New(errors.ErrCodeKeyMalformed,
			"inline key is neither PEM nor valid base64").WithCause(err)
	}
	if !looksLikePEM(decoded) {
		return nil, errors.New(errors.ErrCodeKeyMalformed,
			"inline key decodes to non-PEM content")
	}
	return decoded, nil
}

func looksLikePEM(data []byte) bool {
	return strings.Contains(string(data), "-----BEGIN ") &&
		strings.Contains(string(data), "KEY-----")
}

// ParsePrivateKey decodes a PEM block and parses the RSA private key
// inside it. PKCS#1 is tried first; PKCS#8 is accepted as a fallback
// since key generation tools differ on the container format.
func ParsePrivateKey(pemData []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, errors.New(errors.ErrCodeKeyMalformed, "failed to decode PEM block from private key")
	}

	privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		keyInterface, pkcs8Err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if pkcs8Err != nil {
			return nil, errors.Newf(errors.ErrCodeKeyMalformed,
				"parsing private key: %v (also tried PKCS8: %v)", err, pkcs8Err)
		}
		var ok bool
		privateKey, ok = keyInterface.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.New(errors.ErrCodeKeyMalformed, "private key is not RSA")
		}
	}

	return privateKey, nil
}
