package dav

// DavCollection is a DavResource known to be a WebDAV collection. It adds
// no behavior of its own over DavResource; it exists so that
// CalDAV/CardDAV specializations (DavCalendar, DavAddressBook) have a
// named embedding point distinct from a plain resource handle.
type DavCollection struct {
	*DavResource
}

// NewDavCollection wraps an existing handle as a collection.
func NewDavCollection(r *DavResource) *DavCollection {
	return &DavCollection{DavResource: r}
}
