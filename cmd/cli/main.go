package main

import (
	"fmt"
	"os"

	"github.com/coder/quartz"
	"github.com/tarota5/scores/internal/cli"
	"github.com/tarota5/scores/internal/config"
)

func Execute() {
	rootCmd := cli.NewRootCmd(config.Load(), quartz.NewReal())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'\n", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
