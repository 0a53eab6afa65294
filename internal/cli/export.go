package cli

import "github.com/spf13/cobra"

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the stash as a browser bookmark file",
	Long: `Write all links to a Netscape bookmark HTML file that browsers can import.

Without [file] the export goes to ~/Downloads/linkstash-<date>.html.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) > 0 {
			path = args[0]
		}
		return report(app.service.Export(path))
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
