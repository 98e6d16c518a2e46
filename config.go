package dav

import (
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"

	"github.com/rclone/dav/davlog"
	"github.com/rclone/dav/davtransport"
)

// DavConfig is the shape a caller fills in to stand up a DavResource
// without hand-assembling a Transport: server URL, optional basic-auth
// credentials, a vendor hint for known-server quirks, and a request
// timeout. Credential storage/obscuring and any on-disk config format are
// the caller's concern; DavConfig only carries already-resolved values.
type DavConfig struct {
	// URL is the root resource this DavResource is scoped to.
	URL string
	// User and Pass are sent as HTTP Basic auth when User is non-empty.
	// Pass is expected already decrypted/plaintext; DavConfig does not
	// obscure or reveal secrets.
	User string
	Pass string
	// Vendor adjusts known server-specific quirks. Recognized values:
	// "owncloud", "nextcloud", "sharepoint", "" (equivalent to "other").
	Vendor string
	// Timeout bounds each individual HTTP round trip. Zero means
	// http.DefaultClient's behavior (no timeout).
	Timeout time.Duration
}

// Vendor constants recognized by DavConfig.Vendor / DavResource.Vendor.
const (
	VendorOther      = "other"
	VendorOwncloud   = "owncloud"
	VendorNextcloud  = "nextcloud"
	VendorSharepoint = "sharepoint"
)

// NewDavResourceFromConfig parses cfg.URL, builds a basic-auth HTTPTransport
// refusing auto-redirects, and returns a DavResource rooted there. A nil log
// falls back to davlog.Default(). Sharepoint's cookie-based auth is out of
// scope here: this engine's Transport abstraction is the place for
// non-basic-auth schemes, so a caller targeting Sharepoint supplies its own
// davtransport.Transport via NewDavResource instead of this constructor.
func NewDavResourceFromConfig(cfg DavConfig, log *davlog.Logger) (*DavResource, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "dav: invalid config URL")
	}
	vendor := cfg.Vendor
	if vendor == "" {
		vendor = VendorOther
	}
	if vendor == VendorSharepoint {
		return nil, errors.New("dav: vendor \"sharepoint\" requires cookie auth; build a Transport and call NewDavResource directly")
	}

	client := &http.Client{
		Timeout:       cfg.Timeout,
		CheckRedirect: davtransport.RefusingRedirects,
	}
	var rt http.RoundTripper = http.DefaultTransport
	if cfg.User != "" {
		rt = &basicAuthRoundTripper{user: cfg.User, pass: cfg.Pass, next: rt}
	}
	client.Transport = rt

	transport, err := davtransport.NewHTTPTransport(client)
	if err != nil {
		return nil, err
	}

	l := davlog.Default()
	if log != nil {
		l = *log
	}
	r := NewDavResource(transport, u, l)
	r.Vendor = vendor
	return r, nil
}

// basicAuthRoundTripper sets Basic auth on every request without mutating
// the caller's original request object, matching http.RoundTripper's
// "must not modify the request" contract.
type basicAuthRoundTripper struct {
	user, pass string
	next       http.RoundTripper
}

func (b *basicAuthRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.SetBasicAuth(b.user, b.pass)
	return b.next.RoundTrip(clone)
}
