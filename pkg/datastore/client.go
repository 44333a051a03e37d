package datastore

import (
	"context"
	"fmt"

	"github.com/beevik/etree"
)

// Client is the request/response contract against the configuration
// datastore. Edits always target the candidate store with merge
// semantics; Commit moves candidate to running, Discard drops every
// staged edit of the session.
type Client interface {
	// Get retrieves config and state below the given subtree filter.
	Get(ctx context.Context, filter string) (*Response, error)
	// EditConfig stages the XML fragment as a merge edit against candidate.
	EditConfig(ctx context.Context, config string) (*Response, error)
	// Commit applies the candidate changes to the running config.
	Commit(ctx context.Context) error
	// Discard drops the candidate changes.
	Discard(ctx context.Context) error
	// Close terminates the session.
	Close() error
}

// Response wraps the tree returned by a datastore RPC. The document is
// owned by the caller that received it and never outlives the handler
// invocation that requested it.
type Response struct {
	Doc *etree.Document
}

func NewResponse(doc *etree.Document) *Response {
	return &Response{Doc: doc}
}

// RPCError returns the embedded rpc-error of the response document, or
// nil if the RPC succeeded. An embedded error is a recoverable
// document-level condition, distinct from a transport failure.
func (r *Response) RPCError() error {
	if r == nil || r.Doc == nil {
		return nil
	}
	e := r.Doc.FindElement("//rpc-error")
	if e == nil {
		return nil
	}
	msg := ""
	if m := e.FindElement("error-message"); m != nil {
		msg = m.Text()
	}
	tag := ""
	if t := e.FindElement("error-tag"); t != nil {
		tag = t.Text()
	}
	return fmt.Errorf("rpc-error: %s: %s", tag, msg)
}

// Find locates an element by its absolute data path, resolved against
// the response root element.
func (r *Response) Find(path string) *etree.Element {
	if r == nil || r.Doc == nil || r.Doc.Root() == nil {
		return nil
	}
	return r.Doc.Root().FindElement("." + path)
}
