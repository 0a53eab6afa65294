package cli

import "github.com/spf13/cobra"

var openCmd = &cobra.Command{
	Use:   "open <index> [program]",
	Short: "Open a link in the browser or another program",
	Long: `Open the link at <index>.

Without [program] the link goes to the "program" set in the config file,
or to the system default handler when that is empty.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}

		var program string
		if len(args) > 1 {
			program = args[1]
		}
		return report(app.service.Open(index, program))
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
