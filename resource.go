// Package dav implements the WebDAV/CalDAV/CardDAV resource operation
// layer: DavResource and the per-verb operations that synthesize requests,
// enforce conditional headers and redirect discipline, translate error
// statuses, and invoke caller-supplied result handlers.
package dav

import (
	"context"
	"net/url"
	"sync/atomic"

	"github.com/rclone/dav/davlog"
	"github.com/rclone/dav/davtransport"
)

// DavResource is a handle to a remote URL with an associated HTTP
// transport and logger. location is the one piece of mutable state; it is
// updated in place as redirects are followed. A handle is single-threaded
// use: two concurrent operations on the same handle race on location.
// inUse is a cheap reentrancy guard that catches that misuse instead of
// silently racing.
type DavResource struct {
	Transport davtransport.Transport
	Log       davlog.Logger
	// Vendor is an optional server-quirk hint (see the Vendor* constants
	// in config.go), set by NewDavResourceFromConfig. Operations in this
	// package don't branch on it themselves; it's exposed for callers
	// (e.g. davcal/davcard) that need to adjust property expectations for
	// a known server.
	Vendor string

	location *url.URL
	inUse    int32
}

// NewDavResource constructs a handle rooted at location, using transport
// for all network I/O. log is stored as given; a zero-value Logger is not
// replaced by davlog.Default().
func NewDavResource(transport davtransport.Transport, location *url.URL, log davlog.Logger) *DavResource {
	return &DavResource{Transport: transport, Log: log, location: location}
}

// Location returns the resource's current URL. It changes in place as
// redirects are followed by Move and other redirect-following operations.
func (r *DavResource) Location() *url.URL {
	return r.location
}

func (r *DavResource) enter(op string) func() {
	if !atomic.CompareAndSwapInt32(&r.inUse, 0, 1) {
		panic("davdav: concurrent operation on the same DavResource handle (op=" + op + ")")
	}
	return func() { atomic.StoreInt32(&r.inUse, 0) }
}

// requestFunc builds and submits one attempt of an operation's request. It
// is re-invoked unchanged by the redirect loop on every hop (method, body
// and headers are re-sent verbatim, matching historical WebDAV redirect
// behavior rather than RFC 7231's method-downgrade-on-redirect rules).
type requestFunc func(ctx context.Context, target *url.URL) (*davtransport.Response, error)
