package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/folio/internal/config"
	"github.com/jmylchreest/folio/internal/content"
	"github.com/jmylchreest/folio/internal/model"
)

var contentInitOpts struct {
	force bool
}

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Manage portfolio content files",
}

var contentValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check a content file",
	Long: `Load and validate a portfolio content file.

Without a path, the configured content (--content, FOLIO_CONTENT or
[content] path) is checked. Use "-" to read from stdin.

Examples:
  folio content validate ~/portfolio.yaml
  cat portfolio.yaml | folio content validate -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runContentValidate,
}

var contentInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the sample content to a file",
	Long: `Write the bundled sample portfolio to a file as a starting point.

The default path is content.yaml next to the config file
(~/.config/folio/content.yaml). Point folio at it with --content or
[content] path in the config.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runContentInit,
}

func init() {
	rootCmd.AddCommand(contentCmd)
	contentCmd.AddCommand(contentValidateCmd)
	contentCmd.AddCommand(contentInitCmd)

	contentInitCmd.Flags().BoolVar(&contentInitOpts.force, "force", false,
		"Overwrite an existing file")
}

func runContentValidate(cmd *cobra.Command, args []string) error {
	path := getConfig().ContentPath()
	if len(args) > 0 {
		path = args[0]
	}

	var (
		p   *model.Portfolio
		err error
	)
	if path == "-" {
		var data []byte
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read from stdin: %w", err)
		}
		p, err = content.Parse(data)
	} else {
		p, err = content.Load(path)
	}
	if err != nil {
		return err
	}

	name := path
	if name == "" {
		name = "bundled sample"
	}
	fmt.Printf("%s: ok (%d projects, %d testimonials, %d blog posts)\n",
		name, len(p.Projects), len(p.Testimonials), len(p.Blog))
	return nil
}

func runContentInit(cmd *cobra.Command, args []string) error {
	path := defaultContentPath()
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("unable to determine content path, pass one explicitly")
	}

	if err := content.WriteSample(path, contentInitOpts.force); err != nil {
		return err
	}
	fmt.Printf("Wrote sample content to %s\n", path)
	return nil
}

func defaultContentPath() string {
	path := config.ConfigPath()
	if path == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(path), "content.yaml")
}
