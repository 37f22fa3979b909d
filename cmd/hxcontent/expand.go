package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/pthm/hxcontent"
)

type expandOptions struct {
	id    string
	count int
	set   []string
	stamp bool
}

func newExpandCmd(a *app) *cobra.Command {
	opts := &expandOptions{}

	cmd := &cobra.Command{
		Use:   "expand [file]",
		Short: "Repeat a container's children as indexed clones",
		Long: `Parse an HTML document, use the element with the given id as a
container, normalize and extract its children as a template, then insert
--count clones. Each clone gets the context {"index": i}; --set values
become the container state that every clone falls back to.`,
		Example: `  hxcontent expand --id rows --count 3 page.html
  hxcontent expand --id rows --count 2 --set theme=dark --stamp < page.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExpand(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.id, "id", "", "id of the container element")
	flags.IntVarP(&opts.count, "count", "n", 1, "number of clones to insert")
	flags.StringArrayVar(&opts.set, "set", nil, "container state value as key=value (repeatable)")
	flags.BoolVar(&opts.stamp, "stamp", false, "write sealed clone contexts onto each clone")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func (a *app) runExpand(cmd *cobra.Command, args []string, opts *expandOptions) error {
	if opts.count < 0 {
		return fmt.Errorf("--count must not be negative, got %d", opts.count)
	}
	state, err := parseSet(opts.set)
	if err != nil {
		return err
	}

	in, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer in.Close()

	doc, err := html.Parse(in)
	if err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}
	container := hxcontent.FindByID(doc, opts.id)
	if container == nil {
		return fmt.Errorf("no element with id %q", opts.id)
	}

	reg := a.cfg.NewRegistry(a.logger)

	// Normalize the children only; the container keeps its attributes.
	holder := &html.Node{Type: html.DocumentNode}
	hxcontent.AdoptChildren(holder, container)
	reg.Normalize(holder)
	hxcontent.AdoptChildren(container, holder)

	if _, err := reg.Extract(container); err != nil {
		return err
	}
	reg.SetState(container, hxcontent.NewState(state))

	for i := 0; i < opts.count; i++ {
		if err := reg.Insert(container, hxcontent.End, map[string]any{"index": i}); err != nil {
			return err
		}
	}

	if opts.stamp {
		n, err := reg.StampContexts(container, a.cfg.Sensitive)
		if err != nil {
			return err
		}
		a.logger.Debug("stamped clone contexts", zap.Int("count", n))
	}

	if err := html.Render(cmd.OutOrStdout(), doc); err != nil {
		return fmt.Errorf("rendering document: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout())
	return err
}

// parseSet turns key=value pairs into a state map.
func parseSet(pairs []string) (map[string]any, error) {
	values := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --set %q, want key=value", p)
		}
		values[k] = v
	}
	return values, nil
}
