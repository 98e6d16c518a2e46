package davprop

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/rclone/dav/davcolxml"
	"github.com/stretchr/testify/require"
)

// decodeOne parses a single top-level element and runs it through Decode.
func decodeOne(t *testing.T, body string) (Property, bool) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(body))
	var start xml.StartElement
	for {
		tok, err := dec.Token()
		require.NoError(t, err)
		if s, ok := tok.(xml.StartElement); ok {
			start = s
			break
		}
	}
	prop, ok, err := Decode(dec, start)
	require.NoError(t, err)
	return prop, ok
}

func TestDecodeDisplayName(t *testing.T) {
	prop, ok := decodeOne(t, `<displayname xmlns="DAV:">My Calendar</displayname>`)
	require.True(t, ok)
	require.Equal(t, DisplayName{Name: "My Calendar"}, prop)
}

func TestDecodeGetETagStripsWeakAndQuotes(t *testing.T) {
	prop, ok := decodeOne(t, `<getetag xmlns="DAV:">W/"abc123"</getetag>`)
	require.True(t, ok)
	require.Equal(t, GetETag{ETag: "abc123", Weak: true}, prop)
}

func TestDecodeGetETagEmptyIsAbsent(t *testing.T) {
	_, ok := decodeOne(t, `<getetag xmlns="DAV:"></getetag>`)
	require.False(t, ok)
}

func TestDecodeResourceTypeCollection(t *testing.T) {
	prop, ok := decodeOne(t, `<resourcetype xmlns="DAV:"><collection/></resourcetype>`)
	require.True(t, ok)
	require.Equal(t, ResourceType{Collection: true}, prop)
}

func TestDecodeResourceTypeCalendar(t *testing.T) {
	prop, ok := decodeOne(t, `<resourcetype xmlns="DAV:" xmlns:C="urn:ietf:params:xml:ns:caldav"><collection/><C:calendar/></resourcetype>`)
	require.True(t, ok)
	require.Equal(t, ResourceType{Collection: true, Calendar: true}, prop)
}

func TestDecodeGetContentLengthInvalidIsAbsent(t *testing.T) {
	_, ok := decodeOne(t, `<getcontentlength xmlns="DAV:">not-a-number</getcontentlength>`)
	require.False(t, ok)
}

func TestDecodeUnknownPropertyIsSkipped(t *testing.T) {
	prop, ok := decodeOne(t, `<totally-unknown xmlns="urn:example:ns"><nested>x</nested></totally-unknown>`)
	require.False(t, ok)
	require.Nil(t, prop)
}

func TestDecodeSupportedReportSet(t *testing.T) {
	body := `<supported-report-set xmlns="DAV:" xmlns:C="urn:ietf:params:xml:ns:caldav">
		<supported-report><report><C:calendar-query/></report></supported-report>
		<supported-report><report><sync-collection/></report></supported-report>
	</supported-report-set>`
	prop, ok := decodeOne(t, body)
	require.True(t, ok)
	srs, isSRS := prop.(SupportedReportSet)
	require.True(t, isSRS)
	require.Len(t, srs.Reports, 2)
	require.Equal(t, "calendar-query", srs.Reports[0].Local)
	require.Equal(t, "sync-collection", srs.Reports[1].Local)
}

func TestDecodeCalendarHomeSet(t *testing.T) {
	body := `<C:calendar-home-set xmlns:C="urn:ietf:params:xml:ns:caldav" xmlns="DAV:">
		<href>/calendars/alice/</href>
	</C:calendar-home-set>`
	prop, ok := decodeOne(t, body)
	require.True(t, ok)
	require.Equal(t, CalendarHomeSet{Hrefs: []string{"/calendars/alice/"}}, prop)
}
