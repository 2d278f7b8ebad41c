package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaborage/go-devkit/internal/commands"
)

var version = "dev" // Will be set during build

func main() {
	rootCmd := &cobra.Command{
		Use:   "devkit-gen",
		Short: "Generate XML schemas and Spring integration code for connector modules",
		Long: `Build-time generator for connector modules.

From a module descriptor it produces the XSD describing the module's XML
configuration surface, the message processor, source and transformer classes,
and the bean definition parsers and namespace handler that bind the two.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		commands.NewGenerateCommand(),
		commands.NewServeCommand(),
		commands.NewDoctorCommand(),
		commands.NewVersionCommand(version),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
