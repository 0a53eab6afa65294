// Package cli implements the linkstash commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kshyr/linkstash/internal/render"
)

// Version is set at build time with -ldflags "-X github.com/kshyr/linkstash/internal/cli.Version=..."
var Version = "dev"

const description = `Stash links from the terminal and open them later.

Links are numbered newest first: 1 is the link you added last.

Examples:
  linkstash add https://go.dev/blog     # fetch the page title and stash it
  linkstash list                        # show everything, newest first
  linkstash open 1                      # open the newest link in your browser
  linkstash open 3 firefox              # open link 3 with a specific program
  linkstash copy 2                      # copy link 2 to the clipboard
  linkstash pick                        # choose a link interactively
  linkstash delete 1                    # forget the newest link
  linkstash check                       # find links that no longer load
  linkstash export                      # write a browser bookmark file

Data and config live in your user config directory (~/.config/linkstash on Linux).
Set LINKSTASH_CONFIG to use a different config file.`

var rootCmd = &cobra.Command{
	Use:               "linkstash",
	Short:             "Stash links from the terminal and open them later",
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bare invocation shows help, like any other missing subcommand
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.Long = render.NewPrinter(os.Stdout).Logo() + "\n\n" + description

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("linkstash %s\n", Version))
}
