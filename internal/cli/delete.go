package cli

import "github.com/spf13/cobra"

var deleteCmd = &cobra.Command{
	Use:     "delete <index>",
	Aliases: []string{"rm"},
	Short:   "Remove a link from the stash",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		return report(app.service.Delete(index))
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
