package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"todo/internal/ui"
)

type options struct {
	configPath string
	dbPath     string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "todo",
		Short:         "A small to-do list for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.Close()
			return ui.Run(ui.Context{Store: s.store, Config: s.cfg, Logger: s.logger})
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $TODO_CONFIG or the user config dir)")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "database file, overrides db_path")

	root.AddCommand(newListCmd(opts), newExportCmd(opts))
	return root
}
