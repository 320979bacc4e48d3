package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jacoelho/sif/pkg/sifversion"
)

func (a *app) convertCmd() *cobra.Command {
	var (
		to     string
		outDir string
		jobs   int
	)
	cmd := &cobra.Command{
		Use:   "convert --to <version> <message.xml>...",
		Short: "Re-encode messages in another SIF version",
		Long: "Converts each message to the target version. A single input is written to\n" +
			"stdout unless --out is set; several inputs require --out.",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usageError{errors.New("at least one message file is required")}
			}
			if len(args) > 1 && outDir == "" {
				return usageError{errors.New("--out is required with several inputs")}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if to == "" {
				return usageError{errors.New("--to is required")}
			}
			target, err := sifversion.Parse(to)
			if err != nil {
				return usageError{err}
			}
			if outDir == "" {
				return a.convertFile(args[0], target, "")
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			return a.convertAll(cmd.Context(), args, target, outDir, jobs)
		},
	}
	cmd.Flags().StringVar(&to, "to", "", `target version, e.g. "1.5r1" or "2.*"`)
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory receiving converted files")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "files converted concurrently")
	return cmd
}

func (a *app) convertAll(ctx context.Context, paths []string, target sifversion.Version, outDir string, jobs int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for _, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return a.convertFile(path, target, filepath.Join(outDir, filepath.Base(path)))
		})
	}
	return g.Wait()
}

// convertFile converts path into dst, or to stdout when dst is empty.
func (a *app) convertFile(path string, target sifversion.Version, dst string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var out bytes.Buffer
	root, err := a.codec.Convert(f, &out, target)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	a.log.Debug().
		Str("file", path).
		Str("root", root.Def().Name()).
		Str("from", root.EffectiveVersion().String()).
		Str("to", target.String()).
		Msg("converted")
	if dst == "" {
		_, err = a.stdout.Write(append(out.Bytes(), '\n'))
		return err
	}
	return os.WriteFile(dst, out.Bytes(), 0o644)
}
