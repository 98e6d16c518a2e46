package dav

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rclone/dav/daverr"
	"github.com/rclone/dav/davtransport"
)

const maxRedirects = 5

// followRedirects drives reqFn across 3xx hops: cap at 5 hops, refuse
// HTTPS→HTTP, refuse a redirect lacking Location, and update r.location to
// the resolved target on every hop (a prior hop's update is kept even if a
// later hop fails, since redirect updates are idempotent).
func (r *DavResource) followRedirects(ctx context.Context, op string, reqFn requestFunc) (*davtransport.Response, error) {
	target := r.location
	for hop := 0; ; hop++ {
		if hop > maxRedirects {
			return nil, daverr.NewDavError(op, "redirect limit exceeded", nil)
		}

		resp, err := reqFn(ctx, target)
		if err != nil {
			return nil, daverr.WrapTransport(op, err)
		}

		if resp.StatusCode < 300 || resp.StatusCode >= 400 {
			return resp, nil
		}

		loc := resp.Header.Get("Location")
		resp.Body.Close()
		if loc == "" {
			return nil, daverr.NewDavError(op, "redirect without Location header", nil)
		}

		next, err := url.Parse(loc)
		if err != nil {
			return nil, daverr.NewDavError(op, "redirect with unparseable Location header", err)
		}
		resolved := target.ResolveReference(next)

		if target.Scheme == "https" && resolved.Scheme == "http" {
			return nil, daverr.NewDavError(op, "received redirect from HTTPS to HTTP", nil)
		}

		target = resolved
		r.location = resolved
	}
}

// doNoRedirect submits one request without following any redirect the
// server returns (used by Options, which must never follow).
func (r *DavResource) doNoRedirect(ctx context.Context, reqFn requestFunc) (*davtransport.Response, error) {
	return reqFn(ctx, r.location)
}

// checkStatus returns a typed error via daverr.Translate for any non-2xx
// status, closing resp.Body in the process. On 2xx it returns nil and
// leaves resp.Body open for the caller's handler.
func checkStatus(resp *davtransport.Response) error {
	if resp.StatusCode/100 == 2 {
		return nil
	}
	return daverr.Translate(&http.Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       resp.Body,
	})
}
