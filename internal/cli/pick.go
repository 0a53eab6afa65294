package cli

import "github.com/spf13/cobra"

var pickCmd = &cobra.Command{
	Use:   "pick [program]",
	Short: "Choose a link interactively and open it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var program string
		if len(args) > 0 {
			program = args[0]
		}
		return report(app.service.Pick(cmd.Context(), program))
	},
}

func init() {
	rootCmd.AddCommand(pickCmd)
}
