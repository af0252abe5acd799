package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iiroan/prefsctl/internal/ui"
	"github.com/iiroan/prefsctl/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information about prefsctl.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(ui.Header("prefsctl"))
		fmt.Print(version.Get().String())
	},
}
