package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacoelho/sif/pkg/element"
	"github.com/jacoelho/sif/pkg/simpletype"
)

func (a *app) inspectCmd() *cobra.Command {
	var tree bool
	cmd := &cobra.Command{
		Use:   "inspect <message.xml>",
		Short: "Report the version, root and contents of a message",
		Args:  exactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			p := a.codec.NewParser()
			root, err := a.parseWith(p, args[0])
			if err != nil {
				return err
			}
			v := root.EffectiveVersion()
			ns, _ := root.Namespace()
			elements, fields := count(root)
			lines := []string{
				"version:   " + v.String(),
				"namespace: " + ns,
				"root:      " + root.Def().Name(),
				"elements:  " + strconv.Itoa(elements),
				"fields:    " + strconv.Itoa(fields),
				"warnings:  " + strconv.Itoa(len(p.Warnings())),
			}
			for _, l := range lines {
				if err := writeln(a.stdout, l); err != nil {
					return err
				}
			}
			for _, w := range p.Warnings() {
				if err := writeln(a.stdout, "  "+w.Error()); err != nil {
					return err
				}
			}
			if tree {
				return a.printTree(root, 0)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&tree, "tree", false, "print the element tree")
	return cmd
}

func (a *app) printTree(e *element.Element, depth int) error {
	v := e.EffectiveVersion()
	f := simpletype.FormatterFor(v)
	indent := strings.Repeat("  ", depth)
	line := indent + e.Def().Tag(v)
	if t, ok := e.Text(); ok {
		if s, ok := simpletype.Format(f, t); ok {
			line += " = " + s
		}
	}
	if err := writeln(a.stdout, line); err != nil {
		return err
	}
	for _, fd := range e.Fields() {
		s, ok := simpletype.Format(f, fd.Value())
		if !ok {
			s = "nil"
		}
		if err := writeln(a.stdout, indent+"  @"+fd.Def().Tag(v)+" = "+s); err != nil {
			return err
		}
	}
	for _, c := range e.Children() {
		if err := a.printTree(c, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func count(e *element.Element) (elements, fields int) {
	elements, fields = 1, len(e.Fields())
	for _, c := range e.Children() {
		ce, cf := count(c)
		elements += ce
		fields += cf
	}
	return elements, fields
}
