package cli

import "github.com/spf13/cobra"

var addCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Stash a link under its page title",
	Long: `Fetch the page at <url>, read its title and stash the link as index 1.

A URL without a scheme gets https://. Pages without a title are stored
under their URL. Nothing is stored if the page cannot be fetched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return report(app.service.Add(cmd.Context(), args[0]))
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
