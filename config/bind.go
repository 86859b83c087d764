package config

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/havoc/idl"
	"github.com/dhamidi/havoc/idl/parser"
)

type BindOption func(*binder)

// WithSource replaces the default file system source.
func WithSource(src Source) BindOption {
	return func(b *binder) {
		b.source = src
	}
}

// WithCache parses through cache instead of parsing every file afresh.
func WithCache(cache *ParseCache) BindOption {
	return func(b *binder) {
		b.cache = cache
	}
}

type binder struct {
	source Source
	cache  *ParseCache
}

func (b *binder) parse(name string, text []byte) (*idl.Document, error) {
	if b.cache != nil {
		return b.cache.Parse(name, text)
	}
	return parser.Parse(text, parser.WithFile(name))
}

// BindError names the service and IDL file a binding failure belongs to.
type BindError struct {
	Service string
	Proto   string
	Err     error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("service %s (%s): %v", e.Service, e.Proto, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

type binding struct {
	endpoint *Endpoint
	res      *idl.Resolution
}

// Bind parses every IDL file referenced by cfg and resolves each endpoint
// against its service. Distinct files are parsed in parallel. Endpoints are
// only updated once every one of them resolved; on error cfg is unchanged.
func Bind(ctx context.Context, cfg *Config, opts ...BindOption) error {
	b := &binder{source: FileSource{Dir: cfg.Dir()}}
	for _, opt := range opts {
		opt(b)
	}

	docs, err := b.loadAll(ctx, cfg)
	if err != nil {
		return err
	}

	var bindings []binding
	for _, svc := range cfg.Spec.Services {
		doc := docs[svc.Proto]
		if doc.Service(svc.Name) == nil {
			return &BindError{
				Service: svc.Name,
				Proto:   svc.Proto,
				Err:     &idl.ResolutionError{Kind: idl.ErrServiceNotFound, Name: svc.Name},
			}
		}
		for _, ep := range svc.Endpoints {
			res, err := doc.Resolve(svc.Name, ep.RPC, ep.Request.Type, ep.Response.Type)
			if err != nil {
				return &BindError{
					Service: svc.Name,
					Proto:   svc.Proto,
					Err:     fmt.Errorf("endpoint %s %s: %w", ep.Method, ep.Path, err),
				}
			}
			bindings = append(bindings, binding{endpoint: ep, res: res})
		}
	}

	for _, svc := range cfg.Spec.Services {
		svc.Document = docs[svc.Proto]
	}
	for _, bnd := range bindings {
		bnd.endpoint.Request.Type = bnd.res.RequestType
		bnd.endpoint.Request.Fields = bnd.res.RequestFields
		bnd.endpoint.Response.Type = bnd.res.ResponseType
		bnd.endpoint.Response.Fields = bnd.res.ResponseFields
	}
	log.Infof("bound %d endpoints from %d IDL files", len(bindings), len(docs))
	return nil
}

func (b *binder) loadAll(ctx context.Context, cfg *Config) (map[string]*idl.Document, error) {
	protos := cfg.Protos()
	owners := make(map[string]string, len(protos))
	for _, svc := range cfg.Spec.Services {
		if _, ok := owners[svc.Proto]; !ok {
			owners[svc.Proto] = svc.Name
		}
	}

	var (
		mu   sync.Mutex
		docs = make(map[string]*idl.Document, len(protos))
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, proto := range protos {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text, err := b.source.LoadText(proto)
			if err != nil {
				return &BindError{Service: owners[proto], Proto: proto, Err: err}
			}
			doc, err := b.parse(proto, text)
			if err != nil {
				return &BindError{Service: owners[proto], Proto: proto, Err: err}
			}
			log.Debugf("parsed %s: %d services, %d messages", proto, len(doc.Services), len(doc.Messages))

			mu.Lock()
			docs[proto] = doc
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// Protos lists the distinct IDL paths referenced by cfg, in order of first
// use.
func (c *Config) Protos() []string {
	seen := make(map[string]bool)
	var out []string
	for _, svc := range c.Spec.Services {
		if !seen[svc.Proto] {
			seen[svc.Proto] = true
			out = append(out, svc.Proto)
		}
	}
	return out
}
