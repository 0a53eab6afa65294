package cli

import "github.com/spf13/cobra"

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report links that no longer load",
	Long: `Request every stashed link and list the ones that answer 404 or 410,
or do not answer at all. The stash is left unchanged; use delete to
remove what you no longer need.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return report(app.service.Check(cmd.Context()))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
