package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "csvbind",
	Short: "csvbind maps delimited text files onto typed records.",
	Long: "csvbind maps delimited text files onto typed records. " +
		"A YAML schema document declares the field kinds; delimiter and header " +
		"are inferred from the file when not fixed.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of csvbind",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("csvbind v0.1 -- HEAD")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(dumpCmd)
}
