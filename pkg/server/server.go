package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/beevik/etree"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/iptecharch/snmp-server/pkg/config"
	"github.com/iptecharch/snmp-server/pkg/datastore"
	"github.com/iptecharch/snmp-server/pkg/datastore/netconf"
	"github.com/iptecharch/snmp-server/pkg/schema"
	"github.com/iptecharch/snmp-server/pkg/snmp"
	"github.com/iptecharch/snmp-server/pkg/yanglib"
)

// Server wires the schema, the datastore session and the managed
// object registrations together and runs the ancillary HTTP endpoint.
type Server struct {
	config *config.Config
	log    *logrus.Entry

	schema     *schema.Schema
	ds         datastore.Client
	dispatcher *snmp.Dispatcher

	router *mux.Router
	reg    *prometheus.Registry
}

func New(cfg *config.Config, log *logrus.Entry) (*Server, error) {
	sc, err := schema.New(cfg.Schema, log)
	if err != nil {
		return nil, fmt.Errorf("schema %s parsing failed: %v", cfg.Schema.Name, err)
	}
	// the inventory module and the module-set-id are startup
	// requirements, not request-time conditions
	if err := yanglib.Init(sc, cfg.SNMP.ModuleSetID); err != nil {
		return nil, err
	}
	ds, err := netconf.NewTarget(cfg.Datastore, log)
	if err != nil {
		return nil, err
	}
	s := &Server{
		config: cfg,
		log:    log,
		schema: sc,
		ds:     ds,
		router: mux.NewRouter(),
		reg:    prometheus.NewRegistry(),
	}
	s.dispatcher = snmp.NewDispatcher(ds, log, snmp.NewMetrics(s.reg))
	if err := s.registerMappings(); err != nil {
		s.ds.Close()
		return nil, err
	}
	return s, nil
}

// registerMappings creates one binding per configured mapping: leaves
// become scalar bindings, containers with a list child table bindings.
func (s *Server) registerMappings() error {
	for _, m := range s.config.SNMP.Mappings {
		oid, err := snmp.ParseOid(m.Oid)
		if err != nil {
			return fmt.Errorf("mapping %q: %v", m.Name, err)
		}
		e, err := s.schema.GetEntry(schema.ParsePath(m.Path))
		if err != nil {
			return fmt.Errorf("mapping %q: path %q: %v", m.Name, m.Path, err)
		}
		if e.IsLeaf() {
			err = s.dispatcher.RegisterScalar(m.Name, oid, e)
		} else {
			err = s.dispatcher.RegisterTable(m.Name, oid, e)
		}
		if err != nil {
			return fmt.Errorf("mapping %q: %v", m.Name, err)
		}
	}
	return nil
}

// Dispatcher exposes the request entry points to the agent runtime.
func (s *Server) Dispatcher() *snmp.Dispatcher {
	return s.dispatcher
}

// ModulesState merges the yang-library state report into result.
func (s *Server) ModulesState(result *etree.Element) error {
	return yanglib.MergeState(s.schema, s.config.SNMP.ModuleSetID, result)
}

// Serve runs until the context is cancelled, then closes the datastore
// session.
func (s *Server) Serve(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	if s.config.Prometheus != nil {
		g.Go(func() error {
			return s.serveHTTP(ctx)
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		return ctx.Err()
	})
	err := g.Wait()
	s.ds.Close()
	if err == context.Canceled {
		return nil
	}
	return err
}

func (s *Server) serveHTTP(ctx context.Context) error {
	s.router.Handle("/metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))
	s.reg.MustRegister(collectors.NewGoCollector())
	s.reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	srv := &http.Server{
		Addr:         s.config.Prometheus.Address,
		Handler:      s.router,
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
	}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(sctx)
	}()
	s.log.Infof("running metrics server on %s", s.config.Prometheus.Address)
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
