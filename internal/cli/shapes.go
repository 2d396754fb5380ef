package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gridart/diagram"
	"gridart/render"
	"gridart/shapes"
)

func newShapesCmd(g *globalOpts) *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "shapes",
		Short: "Show every node shape",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, g, &f)
			if err != nil {
				return err
			}
			r := render.NewRenderer(loggerFromContext(cmd.Context()))

			for _, k := range shapes.Kinds() {
				d := &diagram.Diagram{Nodes: []diagram.Node{{ID: k.String(), Shape: k.String()}}}
				out, err := r.Render(d, s.render)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n\n", k, out)
			}
			return nil
		},
	}
	f.register(cmd)
	return cmd
}
