package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shaheeralics/scriptwriter/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize scriptwriter configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to choose backends, a prompt template and reference scripts, and writes a .scriptwriter.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
