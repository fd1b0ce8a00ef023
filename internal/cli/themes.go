package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cellplot/cellplot/pkg/theme"
)

// themesCommand creates the themes subcommand for inspecting and
// validating theme files.
func (c *CLI) themesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "themes",
		Short: "Inspect and validate themes",
	}
	cmd.AddCommand(c.themesShowCommand())
	cmd.AddCommand(c.themesCheckCommand())
	return cmd
}

func (c *CLI) themesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [theme-file]",
		Short: "Print a theme's resolved settings (the default theme without arguments)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			th := theme.Default()
			if len(args) > 0 {
				loaded, err := theme.Load(args[0])
				if err != nil {
					return err
				}
				th = loaded
			}

			printKeyValue("name", th.Name)
			printKeyValue("foreground", hexOf(th.Foreground.R, th.Foreground.G, th.Foreground.B))
			printKeyValue("axis", hexOf(th.Axis.R, th.Axis.G, th.Axis.B))
			printKeyValue("grid", hexOf(th.Grid.R, th.Grid.G, th.Grid.B))
			printKeyValue("size", fmt.Sprintf("%dx%d", th.Render.Width, th.Render.Height))
			printKeyValue("color mode", string(th.Render.ColorMode))
			if len(th.Palette) > 0 {
				printKeyValue("palette", fmt.Sprintf("%d colors", len(th.Palette)))
			}
			return nil
		},
	}
}

func (c *CLI) themesCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <theme-file>...",
		Short: "Validate theme files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				th, err := theme.Load(path)
				if err != nil {
					printError("%s: %v", path, err)
					failed++
					continue
				}
				printSuccess("%s (%s)", path, th.Name)
			}
			if failed > 0 {
				return fmt.Errorf("%d theme(s) failed validation", failed)
			}
			return nil
		},
	}
}

func hexOf(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
