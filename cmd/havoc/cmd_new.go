package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/havoc/config"
	"github.com/dhamidi/havoc/framework"
	"github.com/dhamidi/havoc/scaffold"
	"github.com/dhamidi/havoc/watch"
)

func newNewCmd() *cobra.Command {
	var output string
	var watchMode bool
	var debounce time.Duration
	fw := framework.Default

	cmd := &cobra.Command{
		Use:     "new <config>",
		Aliases: []string{"generate"},
		Short:   "Generate a gateway project from a configuration file",
		Long: `Generate a gateway project from a configuration file.

The configuration (JSON or YAML) lists the RPC services to expose and the
HTTP endpoints mapped onto their methods. Every referenced IDL file is parsed
and each endpoint resolved before anything is written, so a failing run
leaves the output directory untouched.

With --watch, the project is regenerated whenever the configuration or one
of its IDL files changes. Errors are reported and watching continues.

Examples:
  havoc new gateway.yaml                    # axum project in ./gateway
  havoc new gateway.yaml -f spring -o api   # Spring Boot project in ./api
  havoc new gateway.yaml --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			out := cmd.OutOrStdout()

			err := generate(cmd.Context(), out, path, fw, output)
			if !watchMode {
				return err
			}
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "❌ %v\n", err)
			}
			return watchAndGenerate(cmd.Context(), out, cmd.ErrOrStderr(), path, fw, output, debounce)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "gateway", "output directory")
	cmd.Flags().VarP(&fw, "framework", "f", "target framework ("+frameworkNames()+")")
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "regenerate when the configuration or IDL files change")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before regenerating in watch mode")

	return cmd
}

func generate(ctx context.Context, out io.Writer, path string, fw framework.Framework, dir string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := config.Bind(ctx, cfg); err != nil {
		return err
	}

	s, err := scaffold.New(fw)
	if err != nil {
		return err
	}
	files, err := s.Generate(cfg, dir)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "✅ Project generated at `%s` (%s, %d files)\n", dir, fw, len(files))
	return nil
}

// watchAndGenerate regenerates on every change until ctx is done. The
// watched set is rebuilt when a change adds or removes IDL files.
func watchAndGenerate(ctx context.Context, out, errOut io.Writer, path string, fw framework.Framework, dir string, debounce time.Duration) error {
	for {
		w, err := watch.New(watchedPaths(path), debounce)
		if err != nil {
			return err
		}
		files := w.Files()
		fmt.Fprintf(out, "👀 Watching %d files for changes\n", len(files))

		runCtx, cancel := context.WithCancel(ctx)
		err = w.Run(runCtx, func(changed []string) {
			for _, c := range changed {
				fmt.Fprintf(out, "↻ %s\n", c)
			}
			if err := generate(ctx, out, path, fw, dir); err != nil {
				fmt.Fprintf(errOut, "❌ %v\n", err)
			}
			if !slices.Equal(watchedPaths(path), files) {
				cancel()
			}
		})
		cancel()
		w.Close()

		if err != nil || ctx.Err() != nil {
			return err
		}
	}
}

// watchedPaths lists the configuration file and, if it loads, the IDL files
// it references, as sorted absolute paths.
func watchedPaths(path string) []string {
	set := make(map[string]bool)
	add := func(p string) {
		if abs, err := filepath.Abs(p); err == nil {
			set[filepath.Clean(abs)] = true
		}
	}

	add(path)
	if cfg, err := config.Load(path); err == nil {
		for _, proto := range cfg.Protos() {
			if filepath.IsAbs(proto) {
				add(proto)
			} else {
				add(filepath.Join(cfg.Dir(), proto))
			}
		}
	}

	paths := make([]string, 0, len(set))
	for p := range set {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
