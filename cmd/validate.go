package cmd

import (
	"fmt"

	"github.com/AnyUserName/genkan/internal/config"
	"github.com/spf13/cobra"
)

var validateFlags siteFlags

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a config file and locate its theme",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func init() {
	validateFlags.register(validateCmd, false)
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	s, err := loadSite(&validateFlags)
	if err != nil {
		fmt.Printf("  ✗ %v\n", err)
		return fmt.Errorf("validation failed")
	}

	fmt.Println("  ✓ Config is valid")
	fmt.Printf("  ✓ %s\n", linkSummary(s.cfg))
	if s.theme.Embedded() {
		fmt.Printf("  ✓ Theme %q (built-in)\n", s.theme.Name)
	} else {
		fmt.Printf("  ✓ Theme %q found at %s\n", s.theme.Name, s.theme.Dir)
	}
	if len(s.warns) > 0 {
		fmt.Printf("  ! %d warning(s):\n", len(s.warns))
		for _, w := range s.warns {
			fmt.Printf("    • %s\n", w)
		}
	}
	return nil
}

func linkSummary(cfg *config.Config) string {
	var blocks, spaces int
	for _, l := range cfg.Links {
		if l.LinkType == config.LinkSpace {
			spaces++
		} else {
			blocks++
		}
	}
	return fmt.Sprintf("%d links (%d block, %d space), %d social links",
		len(cfg.Links), blocks, spaces, len(cfg.Profile.SocialLinks))
}
