package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pthm/hxcontent"
)

func newNormalizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize [file]",
		Short: "Strip blank text and comments, stamp clone ids",
		Long: `Parse an HTML fragment (from file or stdin), remove whitespace-only
text and comment nodes, stamp every element with a unique clone id and
print the result.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			tpl, err := hxcontent.ParseFragment(in)
			if err != nil {
				return err
			}

			reg := a.cfg.NewRegistry(a.logger)
			reg.Normalize(tpl)
			a.logger.Debug("fragment normalized", zap.Uint64("ids", reg.Counter().Issued()))

			out, err := hxcontent.InnerHTML(tpl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
}
