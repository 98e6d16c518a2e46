package davprop

import (
	"encoding/xml"
	"strconv"
	"strings"
	"time"

	"github.com/rclone/dav/davcolxml"
)

// readText consumes start's element, returning the concatenation of its
// direct character data and skipping over any (unexpected) child elements.
func readText(dec *xml.Decoder) (string, error) {
	var sb strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			if err := dec.Skip(); err != nil {
				return "", err
			}
		case xml.EndElement:
			return sb.String(), nil
		}
	}
}

// readChildNames consumes start's element, returning the QName of every
// direct child element (used for resourcetype, and by decodePrivilegeSet
// and decodeOneSupportedReport below for the privilege and report wrappers,
// whose names sit one level deeper).
func readChildNames(dec *xml.Decoder) ([]davcolxml.QName, error) {
	var names []davcolxml.QName
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			names = append(names, davcolxml.QName{Space: t.Name.Space, Local: t.Name.Local})
			if err := dec.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			return names, nil
		}
	}
}

// readHrefs consumes start's element, returning the text of every direct
// or nested "<D:href>" child.
func readHrefs(dec *xml.Decoder) ([]string, error) {
	var hrefs []string
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "href" {
				text, err := readText(dec)
				if err != nil {
					return nil, err
				}
				hrefs = append(hrefs, text)
				continue
			}
			depth++
		case xml.EndElement:
			if depth == 0 {
				return hrefs, nil
			}
			depth--
		}
	}
}

func stripETag(v string) (tag string, weak bool) {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "W/") {
		weak = true
		v = v[2:]
	}
	v = strings.TrimPrefix(v, `"`)
	v = strings.TrimSuffix(v, `"`)
	return v, weak
}

// lastModFormats is the fallback chain of accepted getlastmodified layouts
// (RFC 1123 first, RFC 3339 last); creationdate's ISO 8601 forms use
// creationDateFormats below.
var lastModFormats = []string{
	time.RFC1123,
	time.RFC1123Z,
	time.UnixDate,
	"Mon, _2 Jan 2006 15:04:05 MST",
	time.RFC3339,
}

var creationDateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"20060102T150405Z",
}

func parseAny(v string, formats []string) time.Time {
	for _, f := range formats {
		if t, err := time.Parse(f, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func registerBuiltins() {
	Register(NameDisplayName, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		text, err := readText(dec)
		if err != nil {
			return nil, err
		}
		return DisplayName{Name: text}, nil
	})

	Register(NameGetETag, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		text, err := readText(dec)
		if err != nil {
			return nil, err
		}
		tag, weak := stripETag(text)
		if tag == "" {
			return nil, nil
		}
		return GetETag{ETag: tag, Weak: weak}, nil
	})

	Register(NameGetContentType, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		text, err := readText(dec)
		if err != nil {
			return nil, err
		}
		return GetContentType{Type: text}, nil
	})

	Register(NameGetContentLength, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		text, err := readText(dec)
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return nil, nil
		}
		return GetContentLength{Length: n}, nil
	})

	Register(NameGetLastModified, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		text, err := readText(dec)
		if err != nil {
			return nil, err
		}
		return GetLastModified{Time: parseAny(strings.TrimSpace(text), lastModFormats)}, nil
	})

	Register(NameCreationDate, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		text, err := readText(dec)
		if err != nil {
			return nil, err
		}
		return CreationDate{Time: parseAny(strings.TrimSpace(text), creationDateFormats)}, nil
	})

	Register(NameResourceType, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		names, err := readChildNames(dec)
		if err != nil {
			return nil, err
		}
		var rt ResourceType
		for _, n := range names {
			switch n.Local {
			case "collection":
				rt.Collection = true
			case "principal":
				rt.Principal = true
			case "calendar":
				rt.Calendar = true
			case "addressbook":
				rt.Addressbook = true
			case "calendar-proxy-read":
				rt.CalendarProxyRead = true
			case "calendar-proxy-write":
				rt.CalendarProxyWrite = true
			case "subscribed":
				rt.Subscribed = true
			}
		}
		return rt, nil
	})

	Register(NameCurrentUserPrincipal, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		hrefs, err := readHrefs(dec)
		if err != nil {
			return nil, err
		}
		if len(hrefs) == 0 {
			return nil, nil
		}
		return CurrentUserPrincipal{Href: hrefs[0]}, nil
	})

	Register(NameCurrentUserPrivilegeSet, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		privs, err := decodePrivilegeSet(dec)
		if err != nil {
			return nil, err
		}
		return CurrentUserPrivilegeSet{Privileges: privs}, nil
	})

	Register(NameSupportedReportSet, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		reports, err := decodeSupportedReportSet(dec)
		if err != nil {
			return nil, err
		}
		return SupportedReportSet{Reports: reports}, nil
	})

	Register(NameSyncToken, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		text, err := readText(dec)
		if err != nil {
			return nil, err
		}
		return SyncToken{Token: strings.TrimSpace(text)}, nil
	})

	Register(NameOwner, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		hrefs, err := readHrefs(dec)
		if err != nil {
			return nil, err
		}
		if len(hrefs) == 0 {
			return nil, nil
		}
		return Owner{Href: hrefs[0]}, nil
	})

	Register(NameGroupMembership, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		hrefs, err := readHrefs(dec)
		if err != nil {
			return nil, err
		}
		return GroupMembership{Hrefs: hrefs}, nil
	})

	Register(NameQuotaUsedBytes, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		text, err := readText(dec)
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return nil, nil
		}
		return QuotaUsedBytes{Bytes: n}, nil
	})

	Register(NameQuotaAvailableBytes, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		text, err := readText(dec)
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return nil, nil
		}
		return QuotaAvailableBytes{Bytes: n}, nil
	})

	Register(NameLockDiscovery, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		raw, err := readInnerXML(dec)
		if err != nil {
			return nil, err
		}
		return LockDiscovery{Raw: raw}, nil
	})

	Register(NameCalendarHomeSet, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		hrefs, err := readHrefs(dec)
		if err != nil {
			return nil, err
		}
		return CalendarHomeSet{Hrefs: hrefs}, nil
	})

	Register(NameCalendarDescription, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		text, err := readText(dec)
		if err != nil {
			return nil, err
		}
		return CalendarDescription{Description: text}, nil
	})

	Register(NameCalendarColor, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		text, err := readText(dec)
		if err != nil {
			return nil, err
		}
		return CalendarColor{Color: strings.TrimSpace(text)}, nil
	})

	Register(NameCalendarTimezone, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		text, err := readText(dec)
		if err != nil {
			return nil, err
		}
		return CalendarTimezone{TZData: text}, nil
	})

	Register(NameSupportedCalendarComponentSet, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		names, err := readComponentNames(dec)
		if err != nil {
			return nil, err
		}
		return SupportedCalendarComponentSet{Components: names}, nil
	})

	Register(NameCalendarData, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		text, err := readText(dec)
		if err != nil {
			return nil, err
		}
		return CalendarData{Data: text}, nil
	})

	Register(NameMaxResourceSizeCalDAV, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		text, err := readText(dec)
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return nil, nil
		}
		return MaxResourceSize{Bytes: n, CardDAV: false}, nil
	})

	Register(NameScheduleTag, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		text, err := readText(dec)
		if err != nil {
			return nil, err
		}
		tag, _ := stripETag(text)
		return ScheduleTag{Tag: tag}, nil
	})

	Register(NameAddressbookHomeSet, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		hrefs, err := readHrefs(dec)
		if err != nil {
			return nil, err
		}
		return AddressbookHomeSet{Hrefs: hrefs}, nil
	})

	Register(NameAddressbookDescription, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		text, err := readText(dec)
		if err != nil {
			return nil, err
		}
		return AddressbookDescription{Description: text}, nil
	})

	Register(NameSupportedAddressData, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		types, err := readAddressDataTypes(dec)
		if err != nil {
			return nil, err
		}
		return SupportedAddressData{ContentTypes: types}, nil
	})

	Register(NameAddressData, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		text, err := readText(dec)
		if err != nil {
			return nil, err
		}
		return AddressData{Data: text}, nil
	})

	Register(NameMaxResourceSizeCardDAV, func(dec *xml.Decoder, start xml.StartElement) (Property, error) {
		text, err := readText(dec)
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return nil, nil
		}
		return MaxResourceSize{Bytes: n, CardDAV: true}, nil
	})
}

// decodePrivilegeSet reads "<D:current-user-privilege-set><D:privilege><D:X/></D:privilege>...".
func decodePrivilegeSet(dec *xml.Decoder) ([]davcolxml.QName, error) {
	var privs []davcolxml.QName
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "privilege" {
				inner, err := readChildNames(dec)
				if err != nil {
					return nil, err
				}
				privs = append(privs, inner...)
				continue
			}
			if err := dec.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			return privs, nil
		}
	}
}

// decodeSupportedReportSet reads "<D:supported-report><D:report><D:X/></D:report></D:supported-report>...".
func decodeSupportedReportSet(dec *xml.Decoder) ([]davcolxml.QName, error) {
	var reports []davcolxml.QName
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "supported-report" {
				inner, err := decodeOneSupportedReport(dec)
				if err != nil {
					return nil, err
				}
				if inner != nil {
					reports = append(reports, *inner)
				}
				continue
			}
			if err := dec.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			return reports, nil
		}
	}
}

func decodeOneSupportedReport(dec *xml.Decoder) (*davcolxml.QName, error) {
	var found *davcolxml.QName
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "report" {
				names, err := readChildNames(dec)
				if err != nil {
					return nil, err
				}
				if len(names) > 0 {
					found = &names[0]
				}
				continue
			}
			if err := dec.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			return found, nil
		}
	}
}

func readComponentNames(dec *xml.Decoder) ([]string, error) {
	var comps []string
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "comp" {
				for _, a := range t.Attr {
					if a.Name.Local == "name" {
						comps = append(comps, a.Value)
					}
				}
			}
			if err := dec.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			return comps, nil
		}
	}
}

func readAddressDataTypes(dec *xml.Decoder) ([]string, error) {
	var types []string
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "address-data-type" {
				for _, a := range t.Attr {
					if a.Name.Local == "content-type" {
						types = append(types, a.Value)
					}
				}
			}
			if err := dec.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			return types, nil
		}
	}
}

// readInnerXML captures the element's subtree as raw XML text, used for
// properties (lockdiscovery) this registry treats as opaque structure.
func readInnerXML(dec *xml.Decoder) (string, error) {
	var sb strings.Builder
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			sb.WriteString("<" + t.Name.Local + ">")
			depth++
		case xml.EndElement:
			if depth == 0 {
				return sb.String(), nil
			}
			sb.WriteString("</" + t.Name.Local + ">")
			depth--
		case xml.CharData:
			sb.Write(t)
		}
	}
}
