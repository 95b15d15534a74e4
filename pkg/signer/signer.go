// Package signer implements the provider's draft-cavage HTTP request
// signing scheme: a canonical signing string over a fixed header set,
// signed with RSA-SHA256 and carried in the Authorization header.
package signer

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/objectfs/ocifs/pkg/credentials"
	"github.com/objectfs/ocifs/pkg/errors"
)

// signingVersion is the only protocol version the service accepts.
const signingVersion = "1"

// defaultContentType is assumed for body-bearing requests that do not
// declare one, mirroring the service's signing rules.
const defaultContentType = "application/json"

// Header sets by method class. Order is load-bearing: the service
// reconstructs the signing string from the headers list in the
// Authorization header, so both sides must agree on it.
var (
	baseHeaders = []string{"date", "(request-target)", "host"}
	bodyHeaders = []string{"content-length", "content-type", "x-content-sha256"}
)

// Signer signs outbound HTTP requests with an RSA private key. It is
// stateless apart from immutable credentials and is safe for concurrent
// use. Key material is fetched from the provider on every signature so
// key rotation on disk is picked up without restarting.
type Signer struct {
	creds credentials.Credentials
	now   func() time.Time
}

// Option configures a Signer.
type Option func(*Signer)

// WithClock overrides the time source. Signatures embed the date header,
// so a fixed clock makes them reproducible.
func WithClock(now func() time.Time) Option {
	return func(s *Signer) {
		s.now = now
	}
}

// New creates a Signer for the given credentials.
func New(creds credentials.Credentials, opts ...Option) *Signer {
	s := &Signer{
		creds: creds,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignRequest computes the signature headers for req and sets them in
// place. body must be the exact bytes the request will send (nil for
// bodyless requests); it is hashed, never stored. The signed header
// values are set on the request from the same inputs that were signed,
// so the two can never disagree.
func (s *Signer) SignRequest(req *http.Request, body []byte) error {
	date := s.now().UTC().Format(http.TimeFormat)
	req.Header.Set("date", date)

	headers := baseHeaders
	if methodHasBody(req.Method) {
		headers = append(append([]string{}, baseHeaders...), bodyHeaders...)

		contentType := req.Header.Get("content-type")
		if contentType == "" {
			contentType = defaultContentType
			req.Header.Set("content-type", contentType)
		}

		// The empty body is hashed like any other: the header set for a
		// method never varies with payload size.
		digest := sha256.Sum256(body)
		req.Header.Set("x-content-sha256", base64.StdEncoding.EncodeToString(digest[:]))

		req.ContentLength = int64(len(body))
		req.Header.Set("content-length", strconv.Itoa(len(body)))
	}

	signingString, err := buildSigningString(req, headers)
	if err != nil {
		return err
	}

	signature, err := s.sign([]byte(signingString))
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", fmt.Sprintf(
		`Signature version=%q,headers=%q,keyId=%q,algorithm="rsa-sha256",signature=%q`,
		signingVersion, strings.Join(headers, " "), s.creds.KeyID(), signature))

	return nil
}

// buildSigningString assembles the newline-joined "name: value" lines
// for the given header names, in order.
func buildSigningString(req *http.Request, headers []string) (string, error) {
	lines := make([]string, 0, len(headers))
	for _, name := range headers {
		value, err := headerValue(req, name)
		if err != nil {
			return "", err
		}
		lines = append(lines, name+": "+value)
	}
	return strings.Join(lines, "\n"), nil
}

// headerValue resolves one signing-string line. (request-target) and
// host are derived from the request line rather than stored headers.
func headerValue(req *http.Request, name string) (string, error) {
	switch name {
	case "(request-target)":
		return strings.ToLower(req.Method) + " " + req.URL.RequestURI(), nil
	case "host":
		host := req.Host
		if host == "" {
			host = req.URL.Host
		}
		if host == "" {
			return "", errors.New(errors.ErrCodeSignatureFailed, "request has no host")
		}
		return host, nil
	default:
		value := req.Header.Get(name)
		if value == "" && name != "content-type" {
			return "", errors.Newf(errors.ErrCodeSignatureFailed, "signed header %q is empty", name)
		}
		return value, nil
	}
}

// sign hashes the signing string and produces a base64 PKCS#1 v1.5
// RSA-SHA256 signature.
func (s *Signer) sign(signingString []byte) (string, error) {
	pemData, err := s.creds.Key.PrivateKeyPEM()
	if err != nil {
		return "", err
	}

	privateKey, err := credentials.ParsePrivateKey(pemData)
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(signingString)
	signature, err := rsa.SignPKCS1v15(rand.Reader, privateKey, crypto.SHA256, hash[:])
	if err != nil {
		return "", errors.New(errors.ErrCodeSignatureFailed, "rsa signing failed").WithCause(err)
	}

	return base64.StdEncoding.EncodeToString(signature), nil
}

func methodHasBody(method string) bool {
	switch method {
	case http.MethodPut, http.MethodPost, http.MethodPatch:
		return true
	}
	return false
}
