// Package davresponse parses a single "<D:response>" element into the
// Response model: href(s), per-propstat properties, and status.
package davresponse

import (
	"encoding/xml"
	"net/url"
	"strings"

	"github.com/rclone/dav/davcolxml"
	"github.com/rclone/dav/davprop"
)

// HrefRelation classifies a response href relative to the request location.
type HrefRelation int

const (
	Other HrefRelation = iota
	Self
	Member
)

// PropStat pairs an ordered list of properties with the single Status that
// applies to all of them.
type PropStat struct {
	Props  []davprop.Property
	Status davcolxml.Status
}

// Response is the parsed form of one "<D:response>" element. Multiple
// "<D:href>" children produce multiple Response values sharing the same
// PropStat content; HrefRelation is computed by the caller once the
// href has been resolved against the request location (the Response
// element parser has no notion of "location" on its own).
type Response struct {
	Href                *url.URL
	HrefMismatch        bool // href resolved outside the request's scheme+authority
	Status              *davcolxml.Status
	PropStat            []PropStat
	Error               string
	ResponseDescription string
	Location            string
	HrefRelation        HrefRelation
}

// Parse reads one "<D:response>" element (dec positioned just after the
// opening "response" start tag) and returns one Response per "<D:href>"
// child, resolved against base.
func Parse(dec *xml.Decoder, base *url.URL) ([]*Response, error) {
	var (
		hrefs               []string
		status              *davcolxml.Status
		propstats           []PropStat
		errStr              string
		responseDescription string
		location            string
	)

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		end, isEnd := tok.(xml.EndElement)
		if isEnd {
			if end.Name.Local == "response" {
				break
			}
			continue
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "href":
			text, err := readText(dec)
			if err != nil {
				return nil, err
			}
			hrefs = append(hrefs, strings.TrimSpace(text))
		case "status":
			text, err := readText(dec)
			if err != nil {
				return nil, err
			}
			st, err := davcolxml.ParseStatus(text)
			if err == nil {
				status = &st
			}
		case "propstat":
			ps, err := parsePropStat(dec)
			if err != nil {
				return nil, err
			}
			propstats = append(propstats, ps)
		case "error":
			text, err := readInnerXML(dec)
			if err != nil {
				return nil, err
			}
			errStr = text
		case "responsedescription":
			text, err := readText(dec)
			if err != nil {
				return nil, err
			}
			responseDescription = text
		case "location":
			text, err := readLocationHref(dec)
			if err != nil {
				return nil, err
			}
			location = text
		default:
			if err := dec.Skip(); err != nil {
				return nil, err
			}
		}
	}

	if len(hrefs) == 0 {
		return nil, nil
	}

	out := make([]*Response, 0, len(hrefs))
	for _, h := range hrefs {
		resolved, mismatch := resolveHref(base, h)
		out = append(out, &Response{
			Href:                resolved,
			HrefMismatch:        mismatch,
			Status:              status,
			PropStat:            propstats,
			Error:               errStr,
			ResponseDescription: responseDescription,
			Location:            location,
		})
	}
	return out, nil
}

func resolveHref(base *url.URL, href string) (*url.URL, bool) {
	ref, err := url.Parse(href)
	if err != nil {
		return &url.URL{Path: href}, true
	}
	resolved := ref
	if base != nil {
		resolved = base.ResolveReference(ref)
	}
	mismatch := base != nil && (resolved.Scheme != base.Scheme || resolved.Host != base.Host)
	return resolved, mismatch
}

// ComputeHrefRelation classifies href relative to location: SELF when href
// equals location modulo trailing slash, MEMBER when href's path strictly
// extends location's path, OTHER otherwise.
func ComputeHrefRelation(href, location *url.URL) HrefRelation {
	if href == nil || location == nil {
		return Other
	}
	hp := strings.TrimSuffix(href.Path, "/")
	lp := strings.TrimSuffix(location.Path, "/")
	if hp == lp {
		return Self
	}
	if strings.HasPrefix(hp, lp+"/") {
		return Member
	}
	return Other
}

func parsePropStat(dec *xml.Decoder) (PropStat, error) {
	var ps PropStat
	seen := map[davcolxml.QName]int{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return ps, err
		}
		if end, ok := tok.(xml.EndElement); ok {
			if end.Name.Local == "propstat" {
				return ps, nil
			}
			continue
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "status":
			text, err := readText(dec)
			if err != nil {
				return ps, err
			}
			if st, err := davcolxml.ParseStatus(text); err == nil {
				ps.Status = st
			}
		case "prop":
			props, err := parseProp(dec)
			if err != nil {
				return ps, err
			}
			// At most one per QName per propstat group; duplicates
			// resolved by last-wins.
			for _, p := range props {
				if idx, ok := seen[p.Name()]; ok {
					ps.Props[idx] = p
					continue
				}
				seen[p.Name()] = len(ps.Props)
				ps.Props = append(ps.Props, p)
			}
		default:
			if err := dec.Skip(); err != nil {
				return ps, err
			}
		}
	}
}

func parseProp(dec *xml.Decoder) ([]davprop.Property, error) {
	var props []davprop.Property
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if end, ok := tok.(xml.EndElement); ok {
			if end.Name.Local == "prop" {
				return props, nil
			}
			continue
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		prop, matched, err := davprop.Decode(dec, start)
		if err != nil {
			return nil, err
		}
		if matched {
			props = append(props, prop)
		}
	}
}

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

// readLocationHref reads "<D:location><D:href>...</D:href></D:location>".
func readLocationHref(dec *xml.Decoder) (string, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "href" {
				return readText(dec)
			}
			if err := dec.Skip(); err != nil {
				return "", err
			}
		case xml.EndElement:
			return "", nil
		}
	}
}
