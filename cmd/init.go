package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/AnyUserName/genkan/internal/scaffold"
	"github.com/spf13/cobra"
)

var initName string

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a starter config.toml with themes/ and output/ directories",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "profile name for the starter config")
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	created, err := scaffold.Init(abs, initName)
	if err != nil {
		return err
	}
	for _, p := range created {
		fmt.Printf("  created %s\n", p)
	}
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  edit %s\n", filepath.Join(abs, scaffold.ConfigFile))
	fmt.Printf("  genkan build -c %s -o %s\n",
		filepath.Join(dir, scaffold.ConfigFile), filepath.Join(dir, "output"))
	fmt.Println()
	return nil
}
