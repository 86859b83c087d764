// Package scaffold renders a gateway project for a bound configuration
// from the embedded per-framework templates.
package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/havoc/config"
	"github.com/dhamidi/havoc/framework"
)

var log = commonlog.GetLogger("havoc.scaffold")

//go:embed all:templates
var builtin embed.FS

const (
	templateExt = ".tmpl"

	// ServicePlaceholder in a template path marks a template rendered once
	// per configured service.
	ServicePlaceholder = "_service_"
)

// ErrNotBound is returned when rendering a configuration whose services
// have not been resolved against their IDL files.
var ErrNotBound = errors.New("configuration is not bound")

// File is one rendered output file. Path is slash separated and relative
// to the project root.
type File struct {
	Path string
	Data []byte
}

type Option func(*Scaffolder)

// WithTemplates replaces the embedded templates. The root of fsys holds the
// templates of a single framework.
func WithTemplates(fsys fs.FS) Option {
	return func(s *Scaffolder) {
		s.templates = fsys
	}
}

// WithSource sets where IDL files copied into the project are read from.
// The default reads from the directory of the configuration file.
func WithSource(src config.Source) Option {
	return func(s *Scaffolder) {
		s.source = src
	}
}

type Scaffolder struct {
	framework framework.Framework
	templates fs.FS
	source    config.Source
}

func New(fw framework.Framework, opts ...Option) (*Scaffolder, error) {
	s := &Scaffolder{framework: fw}
	for _, opt := range opts {
		opt(s)
	}
	if s.templates == nil {
		sub, err := fs.Sub(builtin, path.Join("templates", fw.String()))
		if err != nil {
			return nil, fmt.Errorf("templates for %s: %w", fw, err)
		}
		s.templates = sub
	}
	return s, nil
}

// TemplateData is the value templates are executed with. Service is only
// set for per-service templates.
type TemplateData struct {
	Framework string
	Metadata  config.Metadata
	Spec      config.Spec
	Services  []*config.Service
	Service   *config.Service
	Protos    []string
}

// Render produces every project file in memory. Nothing is written.
func (s *Scaffolder) Render(cfg *config.Config) ([]File, error) {
	for _, svc := range cfg.Spec.Services {
		if svc.Document == nil {
			return nil, fmt.Errorf("service %s: %w", svc.Name, ErrNotBound)
		}
	}

	protoFiles, err := s.protoFiles(cfg)
	if err != nil {
		return nil, err
	}
	base := TemplateData{
		Framework: s.framework.String(),
		Metadata:  cfg.Metadata,
		Spec:      cfg.Spec,
		Services:  cfg.Spec.Services,
	}
	for _, f := range protoFiles {
		base.Protos = append(base.Protos, f.Path)
	}

	out := newOutput()
	err = fs.WalkDir(s.templates, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		return s.renderEntry(out, name, cfg, base)
	})
	if err != nil {
		return nil, err
	}
	for _, f := range protoFiles {
		if err := out.add(f.Path, f.Data); err != nil {
			return nil, err
		}
	}

	log.Infof("rendered %d files for %s", len(out.files), s.framework)
	return out.sorted(), nil
}

func (s *Scaffolder) renderEntry(out *output, name string, cfg *config.Config, base TemplateData) error {
	data, err := fs.ReadFile(s.templates, name)
	if err != nil {
		return err
	}
	target := name
	var tmpl *template.Template
	if strings.HasSuffix(name, templateExt) {
		target = strings.TrimSuffix(name, templateExt)
		tmpl, err = template.New(name).
			Option("missingkey=error").
			Funcs(Funcs(s.framework)).
			Parse(string(data))
		if err != nil {
			return fmt.Errorf("parse template: %w", err)
		}
	}

	if !strings.Contains(target, ServicePlaceholder) {
		if tmpl == nil {
			return out.add(target, data)
		}
		rendered, err := execute(tmpl, base)
		if err != nil {
			return err
		}
		return out.add(target, rendered)
	}

	for _, svc := range cfg.Spec.Services {
		svcTarget := strings.ReplaceAll(target, ServicePlaceholder, s.framework.ServiceFileName(svc.Name))
		content := data
		if tmpl != nil {
			td := base
			td.Service = svc
			if content, err = execute(tmpl, td); err != nil {
				return fmt.Errorf("service %s: %w", svc.Name, err)
			}
		}
		if err := out.add(svcTarget, content); err != nil {
			return err
		}
	}
	return nil
}

func execute(tmpl *template.Template, data TemplateData) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}
	return buf.Bytes(), nil
}

// protoFiles reads the IDL files of cfg for copying into the project's
// proto directory.
func (s *Scaffolder) protoFiles(cfg *config.Config) ([]File, error) {
	src := s.source
	if src == nil {
		src = config.FileSource{Dir: cfg.Dir()}
	}
	var files []File
	owner := make(map[string]string)
	for _, proto := range cfg.Protos() {
		target := path.Join(s.framework.ProtoDir(), path.Base(filepath.ToSlash(proto)))
		if prev, ok := owner[target]; ok {
			return nil, fmt.Errorf("IDL files %s and %s would both be copied to %s", prev, proto, target)
		}
		owner[target] = proto

		data, err := src.LoadText(proto)
		if err != nil {
			return nil, fmt.Errorf("copy IDL file: %w", err)
		}
		files = append(files, File{Path: target, Data: data})
	}
	return files, nil
}

type output struct {
	files map[string][]byte
}

func newOutput() *output {
	return &output{files: make(map[string][]byte)}
}

func (o *output) add(name string, data []byte) error {
	if _, ok := o.files[name]; ok {
		return fmt.Errorf("output file %s produced twice", name)
	}
	o.files[name] = data
	return nil
}

func (o *output) sorted() []File {
	files := make([]File, 0, len(o.files))
	for name, data := range o.files {
		files = append(files, File{Path: name, Data: data})
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files
}

// Generate renders the project for cfg and writes it below dir. Files are
// only written once every template rendered.
func (s *Scaffolder) Generate(cfg *config.Config, dir string) ([]File, error) {
	files, err := s.Render(cfg)
	if err != nil {
		return nil, err
	}
	if err := WriteFiles(dir, files); err != nil {
		return nil, err
	}
	return files, nil
}

// WriteFiles writes files below dir, creating directories as needed.
func WriteFiles(dir string, files []File) error {
	for _, f := range files {
		target := filepath.Join(dir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
		if err := os.WriteFile(target, f.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", f.Path, err)
		}
		log.Debugf("wrote %s", target)
	}
	return nil
}
