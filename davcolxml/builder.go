package davcolxml

import (
	"github.com/beevik/etree"
)

// prefixes is the fixed namespace-prefix map used on every request body
// this module emits. Namespace bindings on input are resolved by URI, not
// by prefix (see davprop); on output they are always these exact prefixes.
var prefixes = map[string]string{
	NSDAV:     "",
	NSCalDAV:  "CAL",
	NSCardDAV: "CARD",
}

func prefixFor(space string) string {
	if p, ok := prefixes[space]; ok {
		return p
	}
	return ""
}

func qualify(e *etree.Element, n QName) *etree.Element {
	child := e.CreateElement(n.Local)
	if p := prefixFor(n.Space); p != "" {
		child.Space = p
	}
	return child
}

// Builder assembles a WebDAV request body as an etree document using the
// fixed prefix map, then renders it with the XML declaration.
type Builder struct {
	doc  *etree.Document
	root *etree.Element
}

// NewBuilder starts a new request body rooted at the given element, binding
// xmlns declarations for every namespace reachable from prefixes plus any
// extra namespace URIs the caller names (used by CalDAV/CardDAV REPORT
// bodies that also need e.g. the Apple iCal namespace).
func NewBuilder(root QName, extraNamespaces ...string) *Builder {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rootEl := doc.CreateElement(root.Local)
	if p := prefixFor(root.Space); p != "" {
		rootEl.Space = p
	}

	declared := map[string]bool{}
	declareNS := func(space string) {
		if space == "" || declared[space] {
			return
		}
		declared[space] = true
		if p := prefixFor(space); p != "" {
			rootEl.CreateAttr("xmlns:"+p, space)
		} else {
			rootEl.CreateAttr("xmlns", space)
		}
	}
	declareNS(root.Space)
	for space := range prefixes {
		declareNS(space)
	}
	for _, ns := range extraNamespaces {
		declareNS(ns)
	}

	return &Builder{doc: doc, root: rootEl}
}

// Root returns the root element so callers can append further children.
func (b *Builder) Root() *etree.Element { return b.root }

// AppendEmpty appends an empty element for the given QName (used for prop
// requests, where only the property name is sent).
func AppendEmpty(parent *etree.Element, n QName) *etree.Element {
	return qualify(parent, n)
}

// AppendText appends an element with escaped text content.
func AppendText(parent *etree.Element, n QName, text string) *etree.Element {
	e := qualify(parent, n)
	e.SetText(text)
	return e
}

// Bytes renders the document as an indented UTF-8 byte slice.
func (b *Builder) Bytes() []byte {
	b.doc.Indent(2)
	out, _ := b.doc.WriteToBytes()
	return out
}

// PropName is the "DAV:" prop element QName, used as the parent of
// requested-property children in PROPFIND/PROPPATCH bodies.
var PropName = QName{NSDAV, "prop"}

// NewPropfindBody builds a "<D:propfind><D:prop>...</D:prop></D:propfind>"
// body listing the given property names as empty elements.
func NewPropfindBody(props ...QName) []byte {
	b := NewBuilder(QName{NSDAV, "propfind"})
	prop := AppendEmpty(b.Root(), PropName)
	for _, p := range props {
		AppendEmpty(prop, p)
	}
	return b.Bytes()
}

// PropfindAllProp builds a "<D:propfind><D:allprop/></D:propfind>" body.
func PropfindAllProp() []byte {
	b := NewBuilder(QName{NSDAV, "propfind"})
	AppendEmpty(b.Root(), QName{NSDAV, "allprop"})
	return b.Bytes()
}

// SetProp is one property to set via PROPPATCH, with its literal text
// value (properties whose value isn't plain text are out of scope for
// this builder).
type SetProp struct {
	Name QName
	Text string
}

// NewPropPatchBody builds a "<D:propertyupdate>" body with a <D:set> group
// for setProps and a <D:remove> group for removeProps.
func NewPropPatchBody(setProps []SetProp, removeProps []QName) []byte {
	b := NewBuilder(QName{NSDAV, "propertyupdate"})
	if len(setProps) > 0 {
		set := AppendEmpty(b.Root(), QName{NSDAV, "set"})
		prop := AppendEmpty(set, PropName)
		for _, sp := range setProps {
			AppendText(prop, sp.Name, sp.Text)
		}
	}
	if len(removeProps) > 0 {
		remove := AppendEmpty(b.Root(), QName{NSDAV, "remove"})
		prop := AppendEmpty(remove, PropName)
		for _, p := range removeProps {
			AppendEmpty(prop, p)
		}
	}
	return b.Bytes()
}
