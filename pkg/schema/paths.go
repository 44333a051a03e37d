package schema

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/openconfig/goyang/pkg/yang"
)

// PathElements returns the element names addressing e from the top of
// its module, outermost first. The module entry itself and choice/case
// layers do not appear in data paths.
func PathElements(e *yang.Entry) []string {
	elems := make([]string, 0, 4)
	for x := e; x != nil && x.Parent != nil; x = x.Parent {
		if x.IsChoice() || x.IsCase() {
			continue
		}
		elems = append(elems, x.Name)
	}
	// reverse into document order
	for i, j := 0, len(elems)-1; i < j; i, j = i+1, j-1 {
		elems[i], elems[j] = elems[j], elems[i]
	}
	return elems
}

// ConfigPath returns the unique absolute data path of e, the flavor
// used to locate e's value in a retrieved config tree.
func ConfigPath(e *yang.Entry) string {
	return "/" + strings.Join(PathElements(e), "/")
}

// Namespace returns the XML namespace of the module defining e, or the
// empty string if none is declared.
func Namespace(e *yang.Entry) string {
	ns := e.Namespace()
	if ns == nil {
		return ""
	}
	return ns.Name
}

// SubtreeFilter renders a NETCONF subtree filter selecting e and
// everything below it.
func SubtreeFilter(e *yang.Entry) (string, error) {
	doc := etree.NewDocument()
	_, err := buildChain(doc, e, "")
	if err != nil {
		return "", err
	}
	return doc.WriteToString()
}

// EditFragment renders the XML config fragment staging value at e's
// path, suitable as the payload of an edit-config merge.
func EditFragment(e *yang.Entry, value string) (string, error) {
	doc := etree.NewDocument()
	leaf, err := buildChain(doc, e, "")
	if err != nil {
		return "", err
	}
	leaf.CreateText(value)
	return doc.WriteToString()
}

// buildChain creates the nested element chain addressing e and returns
// the innermost element. The module namespace is declared on the
// outermost element.
func buildChain(doc *etree.Document, e *yang.Entry, ns string) (*etree.Element, error) {
	elems := PathElements(e)
	if len(elems) == 0 {
		return nil, fmt.Errorf("entry %q has no data path", e.Name)
	}
	if ns == "" {
		ns = Namespace(e)
	}
	parent := &doc.Element
	for i, name := range elems {
		el := parent.CreateElement(name)
		if i == 0 && ns != "" {
			el.CreateAttr("xmlns", ns)
		}
		parent = el
	}
	return parent, nil
}
