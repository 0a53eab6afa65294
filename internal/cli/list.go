package cli

import "github.com/spf13/cobra"

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show stashed links, newest first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return report(app.service.List())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
