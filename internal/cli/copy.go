package cli

import "github.com/spf13/cobra"

var copyCmd = &cobra.Command{
	Use:     "copy <index>",
	Aliases: []string{"cp"},
	Short:   "Copy a link's URL to the clipboard",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		return report(app.service.Copy(index))
	},
}

func init() {
	rootCmd.AddCommand(copyCmd)
}
