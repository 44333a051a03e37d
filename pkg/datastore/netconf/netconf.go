package netconf

import (
	"context"
	"fmt"

	"github.com/beevik/etree"
	scraplinetconf "github.com/scrapli/scrapligo/driver/netconf"
	"github.com/scrapli/scrapligo/driver/options"
	"github.com/scrapli/scrapligo/util"
	"github.com/sirupsen/logrus"

	"github.com/iptecharch/snmp-server/pkg/config"
	"github.com/iptecharch/snmp-server/pkg/datastore"
)

const candidate = "candidate"

// Target is the NETCONF implementation of datastore.Client.
type Target struct {
	driver *scraplinetconf.Driver
	log    *logrus.Entry
}

// NewTarget connects to the configured NETCONF endpoint.
func NewTarget(cfg *config.DatastoreConfig, log *logrus.Entry) (*Target, error) {
	var opts []util.Option

	if cfg.Credentials != nil {
		opts = append(opts,
			options.WithAuthUsername(cfg.Credentials.Username),
			options.WithAuthPassword(cfg.Credentials.Password),
			options.WithTransportType("standard"),
			options.WithPort(cfg.Port),
		)
	}

	opts = append(opts,
		options.WithAuthNoStrictKey(),
		options.WithNetconfForceSelfClosingTags(),
	)

	d, err := scraplinetconf.NewDriver(cfg.Address, opts...)
	if err != nil {
		return nil, err
	}
	err = d.Open()
	if err != nil {
		return nil, err
	}
	return &Target{driver: d, log: log}, nil
}

func (t *Target) Close() error {
	return t.driver.Close()
}

// Get retrieves config and state data below the given subtree filter.
// An embedded rpc-error stays in the returned document for the caller
// to inspect; only transport failures surface as an error.
func (t *Target) Get(_ context.Context, filter string) (*datastore.Response, error) {
	resp, err := t.driver.Get(filter, withFilter(filter))
	if err != nil {
		return nil, err
	}
	if resp.Failed != nil {
		return nil, resp.Failed
	}
	return parseReply(resp.Result)
}

// EditConfig stages the config fragment as a merge edit against the
// candidate datastore.
func (t *Target) EditConfig(_ context.Context, config string) (*datastore.Response, error) {
	// add the <config/> tag to the provided config data
	xdoc := fmt.Sprintf("<config>%s</config>", config)

	resp, err := t.driver.EditConfig(candidate, xdoc)
	if err != nil {
		return nil, err
	}
	if resp.Failed != nil {
		return nil, resp.Failed
	}
	x := etree.NewDocument()
	err = x.ReadFromString(resp.Result)
	if err != nil {
		return nil, err
	}
	return datastore.NewResponse(x), nil
}

func (t *Target) Commit(_ context.Context) error {
	resp, err := t.driver.Commit()
	if err != nil {
		return err
	}
	if resp.Failed != nil {
		return resp.Failed
	}
	return nil
}

func (t *Target) Discard(_ context.Context) error {
	resp, err := t.driver.Discard()
	if err != nil {
		return err
	}
	if resp.Failed != nil {
		return resp.Failed
	}
	return nil
}

// parseReply parses an rpc-reply and makes its data element the
// document root. Replies without a data element (error replies) are
// returned unchanged so the embedded rpc-error stays reachable.
func parseReply(result string) (*datastore.Response, error) {
	x := etree.NewDocument()
	err := x.ReadFromString(result)
	if err != nil {
		return nil, err
	}
	if r := x.FindElement("/rpc-reply/data"); r != nil {
		x.SetRoot(r)
	}
	return datastore.NewResponse(x), nil
}

// withFilter populates the Filter field of the underlying RPC.
func withFilter(filter string) util.Option {
	return func(x interface{}) error {
		oo, ok := x.(*scraplinetconf.OperationOptions)
		if !ok {
			return util.ErrIgnoredOption
		}
		oo.Filter = filter
		return nil
	}
}
