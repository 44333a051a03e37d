package datastore

import (
	"github.com/beevik/etree"
)

// Merge merges the children of src into dst. Matching elements are
// merged recursively, leaves are overwritten (last write wins),
// unmatched elements are copied over. Two same-named elements match
// only if every leaf child they share carries the same text, which
// keeps distinct list entries apart.
func Merge(dst, src *etree.Element) {
	for _, c := range src.ChildElements() {
		d := matchChild(dst, c)
		if d == nil {
			dst.AddChild(c.Copy())
			continue
		}
		if len(c.ChildElements()) == 0 {
			d.SetText(c.Text())
			continue
		}
		Merge(d, c)
	}
}

func matchChild(dst, c *etree.Element) *etree.Element {
	for _, d := range dst.ChildElements() {
		if d.Tag != c.Tag || d.Space != c.Space {
			continue
		}
		if leavesAgree(d, c) {
			return d
		}
	}
	return nil
}

func leavesAgree(a, b *etree.Element) bool {
	for _, cb := range b.ChildElements() {
		if len(cb.ChildElements()) != 0 {
			continue
		}
		for _, ca := range a.ChildElements() {
			if ca.Tag == cb.Tag && len(ca.ChildElements()) == 0 && ca.Text() != cb.Text() {
				return false
			}
		}
	}
	return true
}

// OperationFailed builds a protocol operation-failed error document,
// substituted into a result tree when a recoverable document-level
// failure occurs.
func OperationFailed(errorType, message string) *etree.Document {
	doc := etree.NewDocument()
	e := doc.CreateElement("rpc-error")
	e.CreateElement("error-type").CreateText(errorType)
	e.CreateElement("error-tag").CreateText("operation-failed")
	e.CreateElement("error-severity").CreateText("error")
	e.CreateElement("error-message").CreateText(message)
	return doc
}
