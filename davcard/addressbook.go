// Package davcard implements the CardDAV (RFC 6352) REPORT specializations
// atop the resource operation layer: addressbook-query and
// addressbook-multiget.
package davcard

import (
	"context"

	"github.com/rclone/dav"
	"github.com/rclone/dav/davcolxml"
)

// DavAddressBook specializes DavCollection with the CardDAV REPORT
// operations.
type DavAddressBook struct {
	*dav.DavCollection
}

// NewDavAddressBook wraps an existing collection handle as an address book.
func NewDavAddressBook(c *dav.DavCollection) *DavAddressBook {
	return &DavAddressBook{DavCollection: c}
}

// TextMatch is a CardDAV "<C:text-match>" constraint within a prop-filter.
type TextMatch struct {
	Collation string
	MatchType string
	Negate    bool
	Value     string
}

// PropFilter is a CardDAV "<C:prop-filter name=...>" constraint.
type PropFilter struct {
	Name      string
	TextMatch *TextMatch
}

// AddressbookQuery sends a CardDAV "addressbook-query" REPORT with the
// given prop-filters and a Depth header scoping the search to the target
// collection's members.
func (c *DavAddressBook) AddressbookQuery(ctx context.Context, depth dav.Depth, filters []PropFilter, props []davcolxml.QName, cb dav.ResponseCallback) error {
	b := davcolxml.NewBuilder(davcolxml.QName{Space: davcolxml.NSCardDAV, Local: "addressbook-query"})
	prop := davcolxml.AppendEmpty(b.Root(), davcolxml.PropName)
	for _, p := range props {
		davcolxml.AppendEmpty(prop, p)
	}

	filter := b.Root().CreateElement("filter")
	filter.Space = "CARD"
	for _, f := range filters {
		pf := filter.CreateElement("prop-filter")
		pf.Space = "CARD"
		pf.CreateAttr("name", f.Name)
		if f.TextMatch != nil {
			tm := pf.CreateElement("text-match")
			tm.Space = "CARD"
			if f.TextMatch.Collation != "" {
				tm.CreateAttr("collation", f.TextMatch.Collation)
			}
			if f.TextMatch.MatchType != "" {
				tm.CreateAttr("match-type", f.TextMatch.MatchType)
			}
			if f.TextMatch.Negate {
				tm.CreateAttr("negate-condition", "yes")
			}
			tm.SetText(f.TextMatch.Value)
		}
	}

	return c.ReportDepth(ctx, depth, b.Bytes(), cb)
}

// AddressbookMultiget sends an "addressbook-multiget" REPORT for the given
// hrefs.
func (c *DavAddressBook) AddressbookMultiget(ctx context.Context, hrefs []string, props []davcolxml.QName, cb dav.ResponseCallback) error {
	b := davcolxml.NewBuilder(davcolxml.QName{Space: davcolxml.NSCardDAV, Local: "addressbook-multiget"})
	prop := davcolxml.AppendEmpty(b.Root(), davcolxml.PropName)
	for _, p := range props {
		davcolxml.AppendEmpty(prop, p)
	}
	for _, href := range hrefs {
		davcolxml.AppendText(b.Root(), davcolxml.QName{Space: davcolxml.NSDAV, Local: "href"}, href)
	}

	return c.Report(ctx, b.Bytes(), cb)
}
