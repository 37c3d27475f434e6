package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"todo/internal/task"
)

func newListCmd(opts *options) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			name := filter
			if !cmd.Flags().Changed("filter") {
				name = s.cfg.DefaultFilter
			}
			kind, err := task.ParseFilter(name)
			if err != nil {
				return err
			}
			return printList(cmd.OutOrStdout(), s.store.List(kind.Predicate()))
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "all", "all, pending or done")
	return cmd
}

func newExportCmd(opts *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every task as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.Close()
			return writeTasks(cmd.OutOrStdout(), s.store.List(), format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "json or yaml")
	return cmd
}

func printList(w io.Writer, tasks []task.Task) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, t := range tasks {
		check := "[ ]"
		if t.Done {
			check = "[x]"
		}
		due := t.Date
		if due == "" {
			due = "-"
		}
		fmt.Fprintf(tw, "%s\t#%d\t%s\t%s\t%s\n", check, t.ID, t.Title, t.Priority, due)
	}
	return tw.Flush()
}

func writeTasks(w io.Writer, tasks []task.Task, format string) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
