// Package davsync implements the sync-collection REPORT (RFC 6578): a
// sync-token-based enumeration of a collection's changes since a
// previously returned token.
package davsync

import (
	"context"
	"strconv"

	"github.com/rclone/dav"
	"github.com/rclone/dav/davcolxml"
	"github.com/rclone/dav/davprop"
)

// SyncCollection sends a "sync-collection" REPORT and returns the new
// sync-token from the response's residual properties (davmulti.Parse
// surfaces it there, same as any other top-level property).
func SyncCollection(ctx context.Context, c *dav.DavCollection, depth dav.Depth, syncToken string, limit int, props []davcolxml.QName, cb dav.ResponseCallback) (newToken string, err error) {
	b := davcolxml.NewBuilder(davcolxml.QName{Space: davcolxml.NSDAV, Local: "sync-collection"})
	davcolxml.AppendText(b.Root(), davcolxml.QName{Space: davcolxml.NSDAV, Local: "sync-token"}, syncToken)
	davcolxml.AppendText(b.Root(), davcolxml.QName{Space: davcolxml.NSDAV, Local: "sync-level"}, depth.String())
	if limit > 0 {
		limitEl := davcolxml.AppendEmpty(b.Root(), davcolxml.QName{Space: davcolxml.NSDAV, Local: "limit"})
		davcolxml.AppendText(limitEl, davcolxml.QName{Space: davcolxml.NSDAV, Local: "nresults"}, strconv.Itoa(limit))
	}
	prop := davcolxml.AppendEmpty(b.Root(), davcolxml.PropName)
	for _, p := range props {
		davcolxml.AppendEmpty(prop, p)
	}

	residual, err := dav.ReportCollecting(ctx, c.DavResource, b.Bytes(), cb)
	if err != nil {
		return "", err
	}
	for _, p := range residual {
		if st, ok := p.(davprop.SyncToken); ok {
			newToken = st.Token
		}
	}
	return newToken, nil
}
