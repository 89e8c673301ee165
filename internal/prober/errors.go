package prober

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
)

// Kind classifies why an attempt did not succeed.
type Kind int

const (
	KindUnclassified       Kind = iota // Not retried
	KindConnectionFailure              // DNS, refused, reset, TLS, timeout
	KindMalformedURL                   // Unparseable, no scheme or no host
	KindNonSuccessResponse             // Response with a status other than 200
)

func (k Kind) String() string {
	switch k {
	case KindConnectionFailure:
		return "connection_failure"
	case KindMalformedURL:
		return "malformed_url"
	case KindNonSuccessResponse:
		return "non_success_response"
	default:
		return "unclassified"
	}
}

// Retryable reports whether an attempt of this kind consumes a trial and is
// retried after the delay.
func (k Kind) Retryable() bool {
	return k != KindUnclassified
}

var ErrMalformedURL = errors.New("malformed url")

// StatusError is returned for a response whose status is not 200 OK.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// Classify maps an attempt error to its Kind.
func Classify(err error) Kind {
	if err == nil {
		return KindUnclassified
	}

	if errors.Is(err, ErrMalformedURL) {
		return KindMalformedURL
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return KindNonSuccessResponse
	}

	// *url.Error satisfies net.Error itself, so look at what it wraps.
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}

	if isConnectionFailure(err) {
		return KindConnectionFailure
	}

	return KindUnclassified
}

func isConnectionFailure(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var (
		verifyErr    *tls.CertificateVerificationError
		recordErr    tls.RecordHeaderError
		authorityErr x509.UnknownAuthorityError
		hostnameErr  x509.HostnameError
		invalidErr   x509.CertificateInvalidError
	)

	return errors.As(err, &verifyErr) ||
		errors.As(err, &recordErr) ||
		errors.As(err, &authorityErr) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &invalidErr)
}
