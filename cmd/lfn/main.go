// Command lfn finds and optionally deletes working-copy entries whose
// paths exceed the Windows MAX_PATH limit. Such entries are fully usable
// through the long-path gateway but confuse Explorer, cmd.exe and many
// legacy programs, so operators occasionally need to hunt them down.
package main

import (
	"bufio"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clonkex/longpath"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lfn",
		Short: "Find or delete files with paths longer than MAX_PATH",
	}

	root.AddCommand(newListCmd(), newCleanCmd(), newStatusCmd())
	return root
}

func newListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list [dir]",
		Short: "Print every entry under dir whose full path reaches the limit",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys := longpath.NewOsLongPathFs()
			long, err := longpath.ListLongPaths(fsys, rootArg(args), limit)
			if err != nil {
				return err
			}
			for _, p := range long {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", longpath.MaxPath, "path length threshold")
	return cmd
}

func newCleanCmd() *cobra.Command {
	var limit int
	var force bool

	cmd := &cobra.Command{
		Use:   "clean [dir]",
		Short: "Delete entries whose full path reaches the limit",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			confirm := promptEach(cmd)
			if force {
				confirm = nil
			}
			fsys := longpath.NewOsLongPathFs()
			removed, err := longpath.CleanLongPaths(fsys, rootArg(args), limit, confirm)
			for _, p := range removed {
				fmt.Fprintln(cmd.OutOrStdout(), "removed", p)
			}
			return err
		},
	}

	cmd.Flags().IntVar(&limit, "limit", longpath.MaxPath, "path length threshold")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete without prompting")
	return cmd
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether the OS handles long paths without the gateway",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if longpath.LongPathsEnabled() {
				fmt.Fprintln(cmd.OutOrStdout(), "long paths: handled natively by the OS")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "long paths: require the \\\\?\\ rewrite")
			}
		},
	}
}

func rootArg(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return "."
}

func promptEach(cmd *cobra.Command) func(string) bool {
	in := bufio.NewReader(cmd.InOrStdin())
	return func(path string) bool {
		fmt.Fprintf(cmd.OutOrStdout(), "delete %s (y/N)? ", path)
		line, err := in.ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}
}
