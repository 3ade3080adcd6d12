// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mdword/internal/bundle"
)

var copyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Copy project files into a destination subdirectory",
	Long: `Copy places the files and directories listed in a manifest
(bundle.yaml in the source directory by default) into a destination
subdirectory. Missing entries are reported and skipped. A default
.gitignore is written when the copy does not bring one.

Without a manifest the file set of a Vite web project is used.`,
	Args: cobra.NoArgs,
	RunE: runCopy,
}

func runCopy(cmd *cobra.Command, args []string) error {
	src, _ := cmd.Flags().GetString("src")
	manifest, _ := cmd.Flags().GetString("manifest")
	if manifest == "" {
		manifest = filepath.Join(src, bundle.DefaultManifest)
	}

	cfg, err := bundle.LoadManifest(manifest)
	if err != nil {
		return err
	}
	if dest, _ := cmd.Flags().GetString("dest"); dest != "" {
		cfg.Dest = dest
	}

	_, err = bundle.Copy(cfg, src, cmd.OutOrStdout())
	return err
}

func init() {
	copyCmd.Flags().String("manifest", "", "manifest file (default: <src>/bundle.yaml)")
	copyCmd.Flags().String("dest", "", "destination subdirectory, overriding the manifest")
	copyCmd.Flags().String("src", ".", "source base directory")

	rootCmd.AddCommand(copyCmd)
}
