package davprop

import (
	"encoding/xml"
	"sync"

	"github.com/rclone/dav/davcolxml"
)

// Factory decodes a Property from a pull-parser positioned at the property's
// opening tag. It MUST consume exactly its own element, up to and including
// the matching end tag. Returning (nil, nil) signals that the body is
// malformed or empty in a way this property treats as absent, which MUST
// NOT fail the enclosing parse.
type Factory func(dec *xml.Decoder, start xml.StartElement) (Property, error)

// registry is the process-global QName -> Factory map. Writes only happen
// during Register (normally from init() or early in main()); reads after
// that are safe for concurrent use, guarded by a RWMutex for callers that
// register late.
type registry struct {
	mu       sync.RWMutex
	factories map[davcolxml.QName]Factory
}

var global = &registry{factories: map[davcolxml.QName]Factory{}}

// Register installs (or replaces) the factory for the given QName.
// Applications MAY call this to add support for additional properties.
func Register(name davcolxml.QName, f Factory) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.factories[name] = f
}

func lookup(name davcolxml.QName) (Factory, bool) {
	global.mu.RLock()
	defer global.mu.RUnlock()
	f, ok := global.factories[name]
	return f, ok
}

// Decode dispatches start to the registered factory for its QName. If no
// factory is registered, the element's subtree is skipped and (nil, false)
// is returned — this is not an error condition.
func Decode(dec *xml.Decoder, start xml.StartElement) (Property, bool, error) {
	name := davcolxml.QName{Space: start.Name.Space, Local: start.Name.Local}
	f, ok := lookup(name)
	if !ok {
		if err := dec.Skip(); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}
	prop, err := f(dec, start)
	if err != nil {
		return nil, false, err
	}
	if prop == nil {
		return nil, false, nil
	}
	return prop, true, nil
}

func init() {
	registerBuiltins()
}
