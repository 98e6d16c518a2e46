// Package daverr implements the status translator and the module's typed
// error taxonomy: HttpError for non-2xx HTTP outcomes
// and DavError for protocol-level semantic failures. Transport-native I/O
// failures are not translated into either type; WrapTransport only prefixes
// them with the operation name and keeps the original error reachable.
package daverr

import (
	"encoding/xml"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rclone/dav/davcolxml"
)

// HttpError is a typed, non-2xx HTTP outcome.
type HttpError struct {
	Code       int
	Reason     string
	Header     http.Header
	Conditions []davcolxml.QName
	RetryAfter *time.Duration
}

func (e *HttpError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("davdav: http %d %s", e.Code, e.Reason)
	}
	return fmt.Sprintf("davdav: http %d", e.Code)
}

// Is lets callers pattern-match with errors.Is against the sentinels below
// without importing net/http; a target with Code 0 matches any HttpError.
func (e *HttpError) Is(target error) bool {
	t, ok := target.(*HttpError)
	if !ok {
		return false
	}
	return t.Code == 0 || t.Code == e.Code
}

// Unauthorized, Forbidden, etc. are sentinels callers compare against with
// errors.Is; Translate returns a *HttpError whose Code matches the table
// below and which also unwraps to these markers via Is.
var (
	ErrUnauthorized        = &HttpError{Code: http.StatusUnauthorized}
	ErrForbidden           = &HttpError{Code: http.StatusForbidden}
	ErrNotFound            = &HttpError{Code: http.StatusNotFound}
	ErrConflict            = &HttpError{Code: http.StatusConflict}
	ErrPreconditionFailed  = &HttpError{Code: http.StatusPreconditionFailed}
	ErrServiceUnavailable  = &HttpError{Code: http.StatusServiceUnavailable}
)

// DavError is a protocol-level semantic failure: unexpected status where a
// specific one was required, malformed XML, a refused redirect, a redirect
// with no Location, the hop limit exceeded, or an invalid Multi-Status
// envelope.
type DavError struct {
	Op    string
	Msg   string
	Cause error
}

func (e *DavError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("davdav: %s: %s: %v", e.Op, e.Msg, e.Cause)
	}
	return fmt.Sprintf("davdav: %s: %s", e.Op, e.Msg)
}

func (e *DavError) Unwrap() error { return e.Cause }

func NewDavError(op, msg string, cause error) *DavError {
	return &DavError{Op: op, Msg: msg, Cause: cause}
}

// errorBody is the RFC 4918 §11 "<D:error>" document: a root element whose
// children name WebDAV precondition codes.
type errorBody struct {
	XMLName xml.Name
	Any     []struct {
		XMLName xml.Name
	} `xml:",any"`
}

// Translate reads (and closes) resp.Body, builds the typed error for a
// non-2xx status, and parses Retry-After for 503.
func Translate(resp *http.Response) error {
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	he := &HttpError{
		Code:   resp.StatusCode,
		Reason: strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))),
		Header: resp.Header.Clone(),
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if t, _, err := mime.ParseMediaType(ct); err == nil && (t == "application/xml" || t == "text/xml") {
			var eb errorBody
			if err := xml.Unmarshal(body, &eb); err == nil && eb.XMLName.Local == "error" {
				for _, child := range eb.Any {
					he.Conditions = append(he.Conditions, davcolxml.QName{
						Space: child.XMLName.Space,
						Local: child.XMLName.Local,
					})
				}
			}
		}
	}

	if resp.StatusCode == http.StatusServiceUnavailable {
		if ra := parseRetryAfter(resp.Header.Get("Retry-After")); ra != nil {
			he.RetryAfter = ra
		}
	}

	return he
}

func parseRetryAfter(v string) *time.Duration {
	if v == "" {
		return nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		d := time.Duration(secs) * time.Second
		return &d
	}
	if t, err := http.ParseTime(v); err == nil {
		d := time.Until(t)
		return &d
	}
	return nil
}

// WrapTransport wraps a transport-native I/O failure so it's identifiable
// as having happened within the named operation, without obscuring the
// original error for errors.Is/As (pkg/errors preserves Cause()).
func WrapTransport(op string, err error) error {
	return errors.Wrapf(err, "davdav: %s", op)
}
