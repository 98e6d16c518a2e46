package dav

import (
	"bytes"
	"context"
	"net/http"
	"net/url"

	"github.com/rclone/dav/daverr"
	"github.com/rclone/dav/davmulti"
	"github.com/rclone/dav/davprop"
	"github.com/rclone/dav/davresponse"
	"github.com/rclone/dav/davtransport"
)

// Search sends SEARCH (RFC 5323) with a caller-supplied XML body and
// expects Multi-Status.
func (r *DavResource) Search(ctx context.Context, xmlBody []byte, cb ResponseCallback) error {
	_, err := r.multiStatusRequest(ctx, "search", "SEARCH", nil, xmlBody, cb)
	return err
}

// Report sends REPORT (RFC 3253) with a caller-supplied XML body and
// expects Multi-Status, without a Depth header. The CalDAV/CardDAV query
// reports (calendar-query, calendar-multiget, addressbook-query,
// addressbook-multiget, sync-collection) are all REPORT, not SEARCH —
// davcal/davcard/davsync build on this, not on Search. Use ReportDepth for
// the reports that scope their results by Depth (calendar-query,
// addressbook-query).
func (r *DavResource) Report(ctx context.Context, xmlBody []byte, cb ResponseCallback) error {
	_, err := r.multiStatusRequest(ctx, "report", "REPORT", nil, xmlBody, cb)
	return err
}

// ReportDepth is like Report but also sets the Depth header, for the query
// reports (calendar-query, addressbook-query) that use it to scope the
// search to the target collection's members.
func (r *DavResource) ReportDepth(ctx context.Context, depth Depth, xmlBody []byte, cb ResponseCallback) error {
	_, err := r.multiStatusRequest(ctx, "report", "REPORT", &depth, xmlBody, cb)
	return err
}

// ReportCollecting is like Report but also returns the residual top-level
// properties (e.g. the sync-token trailing a sync-collection REPORT).
func ReportCollecting(ctx context.Context, r *DavResource, xmlBody []byte, cb ResponseCallback) ([]davprop.Property, error) {
	return r.multiStatusRequest(ctx, "report", "REPORT", nil, xmlBody, cb)
}

func (r *DavResource) multiStatusRequest(ctx context.Context, op, method string, depth *Depth, xmlBody []byte, cb ResponseCallback) ([]davprop.Property, error) {
	defer r.enter(op)()

	resp, err := r.followRedirects(ctx, op, func(ctx context.Context, target *url.URL) (*davtransport.Response, error) {
		header := http.Header{"Content-Type": []string{"application/xml; charset=utf-8"}}
		if depth != nil {
			header.Set("Depth", depth.String())
		}
		return r.Transport.Do(ctx, &davtransport.Request{
			Method: method,
			URL:    target.String(),
			Header: header,
			Body:   bytes.NewReader(xmlBody),
		})
	})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusMultiStatus {
		if err := checkStatus(resp); err != nil {
			return nil, err
		}
		resp.Body.Close()
		return nil, daverr.NewDavError(op, "expected 207 Multi-Status", nil)
	}
	defer resp.Body.Close()

	return davmulti.Parse(resp.Body, resp.StatusCode, resp.Header.Get("Content-Type"), r.location, func(dr *davresponse.Response) error {
		if cb == nil {
			return nil
		}
		return cb(dr, dr.HrefRelation)
	})
}
