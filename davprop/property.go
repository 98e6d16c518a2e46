// Package davprop implements the typed property registry: a process-global
// mapping from qualified XML names to decoders/encoders for the WebDAV,
// CalDAV and CardDAV properties this module recognizes.
package davprop

import (
	"time"

	"github.com/rclone/dav/davcolxml"
)

// Property is the sum type over every recognized property kind. Each
// concrete variant carries its QName as a static constant (see the Name*
// vars below) and its decoded payload.
type Property interface {
	Name() davcolxml.QName
}

// QNames for every property this registry recognizes out of the box.
var (
	NameResourceType                    = davcolxml.QName{Space: davcolxml.NSDAV, Local: "resourcetype"}
	NameGetETag                         = davcolxml.QName{Space: davcolxml.NSDAV, Local: "getetag"}
	NameGetContentType                  = davcolxml.QName{Space: davcolxml.NSDAV, Local: "getcontenttype"}
	NameGetContentLength                = davcolxml.QName{Space: davcolxml.NSDAV, Local: "getcontentlength"}
	NameGetLastModified                 = davcolxml.QName{Space: davcolxml.NSDAV, Local: "getlastmodified"}
	NameCreationDate                    = davcolxml.QName{Space: davcolxml.NSDAV, Local: "creationdate"}
	NameDisplayName                     = davcolxml.QName{Space: davcolxml.NSDAV, Local: "displayname"}
	NameCurrentUserPrincipal            = davcolxml.QName{Space: davcolxml.NSDAV, Local: "current-user-principal"}
	NameCurrentUserPrivilegeSet         = davcolxml.QName{Space: davcolxml.NSDAV, Local: "current-user-privilege-set"}
	NameSupportedReportSet              = davcolxml.QName{Space: davcolxml.NSDAV, Local: "supported-report-set"}
	NameSyncToken                       = davcolxml.QName{Space: davcolxml.NSDAV, Local: "sync-token"}
	NameOwner                           = davcolxml.QName{Space: davcolxml.NSDAV, Local: "owner"}
	NameGroupMembership                 = davcolxml.QName{Space: davcolxml.NSDAV, Local: "group-membership"}
	NameQuotaUsedBytes                  = davcolxml.QName{Space: davcolxml.NSDAV, Local: "quota-used-bytes"}
	NameQuotaAvailableBytes             = davcolxml.QName{Space: davcolxml.NSDAV, Local: "quota-available-bytes"}
	NameLockDiscovery                   = davcolxml.QName{Space: davcolxml.NSDAV, Local: "lockdiscovery"}
	NameCalendarHomeSet                 = davcolxml.QName{Space: davcolxml.NSCalDAV, Local: "calendar-home-set"}
	NameCalendarDescription             = davcolxml.QName{Space: davcolxml.NSCalDAV, Local: "calendar-description"}
	NameCalendarColor                   = davcolxml.QName{Space: "http://apple.com/ns/ical/", Local: "calendar-color"}
	NameCalendarTimezone                = davcolxml.QName{Space: davcolxml.NSCalDAV, Local: "calendar-timezone"}
	NameSupportedCalendarComponentSet   = davcolxml.QName{Space: davcolxml.NSCalDAV, Local: "supported-calendar-component-set"}
	NameCalendarData                    = davcolxml.QName{Space: davcolxml.NSCalDAV, Local: "calendar-data"}
	NameMaxResourceSizeCalDAV           = davcolxml.QName{Space: davcolxml.NSCalDAV, Local: "max-resource-size"}
	NameScheduleTag                     = davcolxml.QName{Space: davcolxml.NSCalDAV, Local: "schedule-tag"}
	NameAddressbookHomeSet              = davcolxml.QName{Space: davcolxml.NSCardDAV, Local: "addressbook-home-set"}
	NameAddressbookDescription          = davcolxml.QName{Space: davcolxml.NSCardDAV, Local: "addressbook-description"}
	NameSupportedAddressData            = davcolxml.QName{Space: davcolxml.NSCardDAV, Local: "supported-address-data"}
	NameAddressData                     = davcolxml.QName{Space: davcolxml.NSCardDAV, Local: "address-data"}
	NameMaxResourceSizeCardDAV          = davcolxml.QName{Space: davcolxml.NSCardDAV, Local: "max-resource-size"}
)

// ResourceType decodes into a flag set.
type ResourceType struct {
	Collection         bool
	Principal          bool
	Calendar           bool
	Addressbook        bool
	CalendarProxyRead  bool
	CalendarProxyWrite bool
	Subscribed         bool
}

func (ResourceType) Name() davcolxml.QName { return NameResourceType }

// GetETag holds the raw entity tag with the optional "W/" weak prefix and
// surrounding quotes already stripped.
type GetETag struct {
	ETag string
	Weak bool
}

func (GetETag) Name() davcolxml.QName { return NameGetETag }

type GetContentType struct{ Type string }

func (GetContentType) Name() davcolxml.QName { return NameGetContentType }

type GetContentLength struct{ Length int64 }

func (GetContentLength) Name() davcolxml.QName { return NameGetContentLength }

// GetLastModified parses RFC 1123; a parse failure yields a zero Time
// rather than an error.
type GetLastModified struct{ Time time.Time }

func (GetLastModified) Name() davcolxml.QName { return NameGetLastModified }

// CreationDate parses ISO 8601; a parse failure yields a zero Time.
type CreationDate struct{ Time time.Time }

func (CreationDate) Name() davcolxml.QName { return NameCreationDate }

type DisplayName struct{ Name string }

func (DisplayName) Name() davcolxml.QName { return NameDisplayName }

type CurrentUserPrincipal struct{ Href string }

func (CurrentUserPrincipal) Name() davcolxml.QName { return NameCurrentUserPrincipal }

// CurrentUserPrivilegeSet decodes to a set of QNames.
type CurrentUserPrivilegeSet struct{ Privileges []davcolxml.QName }

func (CurrentUserPrivilegeSet) Name() davcolxml.QName { return NameCurrentUserPrivilegeSet }

// SupportedReportSet decodes to a set of QNames naming supported REPORTs.
type SupportedReportSet struct{ Reports []davcolxml.QName }

func (SupportedReportSet) Name() davcolxml.QName { return NameSupportedReportSet }

type SyncToken struct{ Token string }

func (SyncToken) Name() davcolxml.QName { return NameSyncToken }

type Owner struct{ Href string }

func (Owner) Name() davcolxml.QName { return NameOwner }

type GroupMembership struct{ Hrefs []string }

func (GroupMembership) Name() davcolxml.QName { return NameGroupMembership }

type QuotaUsedBytes struct{ Bytes int64 }

func (QuotaUsedBytes) Name() davcolxml.QName { return NameQuotaUsedBytes }

type QuotaAvailableBytes struct{ Bytes int64 }

func (QuotaAvailableBytes) Name() davcolxml.QName { return NameQuotaAvailableBytes }

// LockDiscovery carries the raw inner XML; lock-token parsing is a rare
// enough concern in this pack's clients that we keep it opaque.
type LockDiscovery struct{ Raw string }

func (LockDiscovery) Name() davcolxml.QName { return NameLockDiscovery }

type CalendarHomeSet struct{ Hrefs []string }

func (CalendarHomeSet) Name() davcolxml.QName { return NameCalendarHomeSet }

type CalendarDescription struct{ Description string }

func (CalendarDescription) Name() davcolxml.QName { return NameCalendarDescription }

type CalendarColor struct{ Color string }

func (CalendarColor) Name() davcolxml.QName { return NameCalendarColor }

type CalendarTimezone struct{ TZData string }

func (CalendarTimezone) Name() davcolxml.QName { return NameCalendarTimezone }

type SupportedCalendarComponentSet struct{ Components []string }

func (SupportedCalendarComponentSet) Name() davcolxml.QName {
	return NameSupportedCalendarComponentSet
}

// CalendarData preserves the iCalendar body verbatim, including line
// endings; the object format itself is treated as opaque.
type CalendarData struct{ Data string }

func (CalendarData) Name() davcolxml.QName { return NameCalendarData }

type MaxResourceSize struct {
	Bytes   int64
	CardDAV bool
}

func (m MaxResourceSize) Name() davcolxml.QName {
	if m.CardDAV {
		return NameMaxResourceSizeCardDAV
	}
	return NameMaxResourceSizeCalDAV
}

type ScheduleTag struct{ Tag string }

func (ScheduleTag) Name() davcolxml.QName { return NameScheduleTag }

type AddressbookHomeSet struct{ Hrefs []string }

func (AddressbookHomeSet) Name() davcolxml.QName { return NameAddressbookHomeSet }

type AddressbookDescription struct{ Description string }

func (AddressbookDescription) Name() davcolxml.QName { return NameAddressbookDescription }

type SupportedAddressData struct{ ContentTypes []string }

func (SupportedAddressData) Name() davcolxml.QName { return NameSupportedAddressData }

// AddressData preserves the vCard body verbatim.
type AddressData struct{ Data string }

func (AddressData) Name() davcolxml.QName { return NameAddressData }

// UnknownProperty is a sentinel type for a QName with no built-in factory.
// Decode never produces it itself (elements with no registered factory are
// skipped); only a factory installed with Register returns it.
type UnknownProperty struct {
	QName davcolxml.QName
	Raw   string
}

func (u UnknownProperty) Name() davcolxml.QName { return u.QName }
