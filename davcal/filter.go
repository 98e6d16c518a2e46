// Package davcal implements the CalDAV (RFC 4791) REPORT specializations
// atop the resource operation layer: calendar-query, calendar-multiget and
// free-busy-query. sync-collection is in package davsync, not here.
package davcal

import "time"

// TimeRange is a CalDAV "<C:time-range>" constraint, grounded on the same
// shape the pack's CalDAV server implementations use for filter matching.
type TimeRange struct {
	Start *time.Time
	End   *time.Time
}

const icalTimeLayout = "20060102T150405Z"

func (t TimeRange) startAttr() string {
	if t.Start == nil {
		return ""
	}
	return t.Start.UTC().Format(icalTimeLayout)
}

func (t TimeRange) endAttr() string {
	if t.End == nil {
		return ""
	}
	return t.End.UTC().Format(icalTimeLayout)
}

// CompFilter is one "<C:comp-filter name=...>" node, optionally constrained
// by a time-range and nested component filters (e.g. VCALENDAR containing
// a VEVENT time-range filter).
type CompFilter struct {
	Component string
	TimeRange *TimeRange
	Children  []CompFilter
}
