package davcolxml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPropfindBody(t *testing.T) {
	body := NewPropfindBody(
		QName{NSDAV, "displayname"},
		QName{NSCalDAV, "calendar-data"},
	)
	s := string(body)
	require.True(t, strings.HasPrefix(s, `<?xml version="1.0" encoding="UTF-8"?>`))
	require.Contains(t, s, "<propfind")
	require.Contains(t, s, `xmlns:CAL="urn:ietf:params:xml:ns:caldav"`)
	require.Contains(t, s, `xmlns:CARD="urn:ietf:params:xml:ns:carddav"`)
	require.Contains(t, s, "<displayname")
	require.Contains(t, s, "<CAL:calendar-data")
}

func TestPropfindAllProp(t *testing.T) {
	body := PropfindAllProp()
	require.Contains(t, string(body), "<allprop")
}

func TestNewPropPatchBody(t *testing.T) {
	body := NewPropPatchBody(
		[]SetProp{{Name: QName{NSDAV, "displayname"}, Text: "New Name"}},
		[]QName{{NSDAV, "getcontentlanguage"}},
	)
	s := string(body)
	require.Contains(t, s, "<set>")
	require.Contains(t, s, "<remove>")
	require.Contains(t, s, "New Name")
	require.Contains(t, s, "<getcontentlanguage")
}

func TestQNameString(t *testing.T) {
	require.Equal(t, "displayname", QName{Local: "displayname"}.String())
	require.Equal(t, "{DAV:}displayname", QName{Space: NSDAV, Local: "displayname"}.String())
}
