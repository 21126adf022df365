package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	version = "0.1.0"
	verbose bool
)

// Flag defaults that GENKAN_* environment variables can replace.
var envFlags = map[string]string{
	"config": "GENKAN_CONFIG",
	"output": "GENKAN_OUTPUT",
	"themes": "GENKAN_THEMES_DIR",
}

var rootCmd = &cobra.Command{
	Use:   "genkan",
	Short: "Single-file link pages from a TOML config",
	Long: `genkan — turns a profile and a list of links into one self-contained
index.html.

Avatars, icons and the favicon are downloaded, resized and embedded as
data URIs; SVG icons are inlined and recolored to follow the theme text
color. An optional QR code points back at the page.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: loadEnv,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"genkan %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// loadEnv reads .env from the working directory, then fills unset flags
// from GENKAN_* variables.
func loadEnv(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	var ferr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := envFlags[f.Name]
		if !ok || f.Changed {
			return
		}
		if v, ok := os.LookupEnv(key); ok && v != "" {
			if err := f.Value.Set(v); err != nil && ferr == nil {
				ferr = fmt.Errorf("%s: %w", key, err)
			}
			logVerbose("%s=%s from environment", f.Name, v)
		}
	})
	return ferr
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[genkan] "+format+"\n", args...)
	}
}

// logWarn always prints.
func logWarn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "[genkan] warning: "+format+"\n", args...)
}
