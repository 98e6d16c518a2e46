package davcal

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/rclone/dav"
	"github.com/rclone/dav/davcolxml"
	"github.com/rclone/dav/davlog"
	"github.com/rclone/dav/davresponse"
	"github.com/rclone/dav/davtransport"
	"github.com/stretchr/testify/require"
)

type recordingTransport struct {
	method string
	header http.Header
	body   []byte
}

func (r *recordingTransport) Do(ctx context.Context, req *davtransport.Request) (*davtransport.Response, error) {
	r.method = req.Method
	r.header = req.Header
	if req.Body != nil {
		r.body, _ = io.ReadAll(req.Body)
	}
	body := `<?xml version="1.0"?><multistatus xmlns="DAV:"></multistatus>`
	return &davtransport.Response{
		StatusCode: http.StatusMultiStatus,
		Status:     "207 Multi-Status",
		Header:     http.Header{"Content-Type": []string{"application/xml"}},
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}, nil
}

func newCalendar(t *testing.T, rt *recordingTransport) *DavCalendar {
	t.Helper()
	loc, err := url.Parse("https://example.com/calendars/alice/")
	require.NoError(t, err)
	resource := dav.NewDavResource(rt, loc, davlog.Default())
	return NewDavCalendar(dav.NewDavCollection(resource))
}

func TestCalendarQueryUsesReportVerb(t *testing.T) {
	rt := &recordingTransport{}
	cal := newCalendar(t, rt)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	root := CompFilter{
		Component: "VCALENDAR",
		Children: []CompFilter{
			{Component: "VEVENT", TimeRange: &TimeRange{Start: &start, End: &end}},
		},
	}

	err := cal.CalendarQuery(context.Background(), dav.DepthOne, root, []davcolxml.QName{davcolxml.QName{Space: davcolxml.NSCalDAV, Local: "calendar-data"}}, nil)
	require.NoError(t, err)
	require.Equal(t, "REPORT", rt.method)
	require.Equal(t, "1", rt.header.Get("Depth"))
	require.Contains(t, string(rt.body), "calendar-query")
	require.Contains(t, string(rt.body), `name="VEVENT"`)
	require.Contains(t, string(rt.body), "20260101T000000Z")
}

func TestCalendarMultigetUsesReportVerb(t *testing.T) {
	rt := &recordingTransport{}
	cal := newCalendar(t, rt)

	err := cal.CalendarMultiget(context.Background(), []string{"/calendars/alice/1.ics"}, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "REPORT", rt.method)
	require.Contains(t, string(rt.body), "calendar-multiget")
	require.Contains(t, string(rt.body), "/calendars/alice/1.ics")
}

func TestFreeBusyQueryUsesReportVerb(t *testing.T) {
	rt := &recordingTransport{}
	cal := newCalendar(t, rt)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC)
	called := false
	err := cal.FreeBusyQuery(context.Background(), TimeRange{Start: &start, End: &end}, func(resp *davresponse.Response) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, "REPORT", rt.method)
	require.Contains(t, string(rt.body), "free-busy-query")
	require.False(t, called) // empty multistatus body in this fixture yields no response elements
}
