package davcal

import (
	"github.com/rclone/dav"
	"github.com/rclone/dav/davcolxml"
	"github.com/rclone/dav/davresponse"

	"context"

	"github.com/beevik/etree"
)

// DavCalendar specializes DavCollection with the CalDAV REPORT operations.
type DavCalendar struct {
	*dav.DavCollection
}

// NewDavCalendar wraps an existing collection handle as a calendar.
func NewDavCalendar(c *dav.DavCollection) *DavCalendar {
	return &DavCalendar{DavCollection: c}
}

func buildCompFilter(parent *etree.Element, f CompFilter) {
	cf := parent.CreateElement("comp-filter")
	cf.Space = "CAL"
	cf.CreateAttr("name", f.Component)
	if f.TimeRange != nil {
		tr := cf.CreateElement("time-range")
		tr.Space = "CAL"
		if s := f.TimeRange.startAttr(); s != "" {
			tr.CreateAttr("start", s)
		}
		if e := f.TimeRange.endAttr(); e != "" {
			tr.CreateAttr("end", e)
		}
	}
	for _, child := range f.Children {
		buildCompFilter(cf, child)
	}
}

// CalendarQuery sends a CalDAV "calendar-query" REPORT with a Depth header
// scoping the search to the target collection's members: requested
// properties plus a component filter tree, typically rooted at VCALENDAR
// with a nested VEVENT/VTODO time-range filter (RFC 4791 §7.8).
func (c *DavCalendar) CalendarQuery(ctx context.Context, depth dav.Depth, root CompFilter, props []davcolxml.QName, cb dav.ResponseCallback) error {
	b := davcolxml.NewBuilder(davcolxml.QName{Space: davcolxml.NSCalDAV, Local: "calendar-query"})
	prop := davcolxml.AppendEmpty(b.Root(), davcolxml.PropName)
	for _, p := range props {
		davcolxml.AppendEmpty(prop, p)
	}
	filter := b.Root().CreateElement("filter")
	filter.Space = "CAL"
	buildCompFilter(filter, root)

	return c.ReportDepth(ctx, depth, b.Bytes(), cb)
}

// CalendarMultiget sends a "calendar-multiget" REPORT for the given hrefs.
func (c *DavCalendar) CalendarMultiget(ctx context.Context, hrefs []string, props []davcolxml.QName, cb dav.ResponseCallback) error {
	b := davcolxml.NewBuilder(davcolxml.QName{Space: davcolxml.NSCalDAV, Local: "calendar-multiget"})
	prop := davcolxml.AppendEmpty(b.Root(), davcolxml.PropName)
	for _, p := range props {
		davcolxml.AppendEmpty(prop, p)
	}
	for _, href := range hrefs {
		davcolxml.AppendText(b.Root(), davcolxml.QName{Space: davcolxml.NSDAV, Local: "href"}, href)
	}

	return c.Report(ctx, b.Bytes(), cb)
}

// FreeBusyHandler receives the single response element a free-busy-query
// produces: a VFREEBUSY component embedded as opaque calendar-data,
// carried in resp.PropStat like any other property.
type FreeBusyHandler func(resp *davresponse.Response) error

// FreeBusyQuery sends a CalDAV "free-busy-query" REPORT (RFC 4791 §7.10),
// a standard sibling of calendar-query.
func (c *DavCalendar) FreeBusyQuery(ctx context.Context, tr TimeRange, handler FreeBusyHandler) error {
	b := davcolxml.NewBuilder(davcolxml.QName{Space: davcolxml.NSCalDAV, Local: "free-busy-query"})
	timeRange := b.Root().CreateElement("time-range")
	timeRange.Space = "CAL"
	if s := tr.startAttr(); s != "" {
		timeRange.CreateAttr("start", s)
	}
	if e := tr.endAttr(); e != "" {
		timeRange.CreateAttr("end", e)
	}

	return c.Report(ctx, b.Bytes(), func(resp *davresponse.Response, _ davresponse.HrefRelation) error {
		if handler == nil {
			return nil
		}
		return handler(resp)
	})
}
