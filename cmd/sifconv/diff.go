package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jacoelho/sif/pkg/element"
	"github.com/jacoelho/sif/pkg/sifxml"
)

func (a *app) diffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <left.xml> <right.xml>",
		Short: "Compare the object graphs of two messages",
		Long: "Parses both messages, each in its own version, and lists the nodes whose\n" +
			"values differ. Exits 1 when differences are found.",
		Args: exactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			var left, right *element.Element
			var g errgroup.Group
			g.Go(func() (err error) {
				left, err = a.parseFile(args[0])
				return err
			})
			g.Go(func() (err error) {
				right, err = a.parseFile(args[1])
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}
			src, dst, err := left.CompareGraphTo(right)
			if err != nil {
				return err
			}
			for i := range src {
				if err := writef(a.stdout, "%s\n  - %s\n  + %s\n", itemPath(src[i], dst[i]), describe(src[i]), describe(dst[i])); err != nil {
					return err
				}
			}
			if len(src) > 0 {
				return errDiffer
			}
			return nil
		},
	}
}

func (a *app) parseFile(path string) (*element.Element, error) {
	return a.parseWith(a.codec.NewParser(), path)
}

func (a *app) parseWith(p *sifxml.Parser, path string) (*element.Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	root, err := a.codec.ParseWith(p, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

func itemPath(a, b element.Item) string {
	if a != nil {
		return a.Path()
	}
	return b.Path()
}

func describe(it element.Item) string {
	switch v := it.(type) {
	case nil:
		return "(absent)"
	case *element.Field:
		return v.Value().String()
	case *element.Element:
		if t, ok := v.Text(); ok {
			return t.String()
		}
		if key := v.Key(); key != "" {
			return "[" + key + "]"
		}
		return "(element)"
	default:
		return it.Def().Name()
	}
}
