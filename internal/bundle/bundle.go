// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bundle copies a fixed set of project files and directories into a
// destination subdirectory, as listed in a YAML manifest.
package bundle

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mdword/pkg/types"
)

// DefaultManifest is the manifest file name looked up in the source base.
const DefaultManifest = "bundle.yaml"

const gitignoreFile = ".gitignore"

// defaultGitignore is written into the destination when the copy did not
// bring a .gitignore along.
const defaultGitignore = `# Dependencies
node_modules/
.pnp
.pnp.js

# Build outputs
dist/
build/
.next/

# Environment variables
.env
.env.local
.env.development.local
.env.test.local
.env.production.local

# Logs
npm-debug.log*
yarn-debug.log*
yarn-error.log*

# IDE
.idea/
.vscode/
*.swp
*.swo
.DS_Store

# Testing
coverage/

# Misc
*.log
`

// Result reports what a copy run did.
type Result struct {
	Files            []string
	Dirs             []string
	Missing          []string
	GitignoreWritten bool
}

// LoadManifest reads a copy manifest. A missing file yields
// types.DefaultCopyConfig; fields absent from the manifest keep their
// defaults.
func LoadManifest(path string) (types.CopyConfig, error) {
	cfg := types.DefaultCopyConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading manifest: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing manifest: %w", err)
	}
	return cfg, nil
}

// Copy copies cfg.Files and cfg.Dirs from srcBase into srcBase/cfg.Dest.
// Missing sources are reported on w and skipped. Files keep their mode and
// modification time; existing destination files are overwritten.
func Copy(cfg types.CopyConfig, srcBase string, w io.Writer) (Result, error) {
	var result Result
	if err := cfg.Validate(); err != nil {
		return result, fmt.Errorf("invalid copy config: %w", err)
	}

	dest := filepath.Join(srcBase, cfg.Dest)
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return result, fmt.Errorf("creating destination: %w", err)
	}

	for _, name := range cfg.Files {
		src := filepath.Join(srcBase, name)
		info, err := os.Stat(src)
		if err != nil || info.IsDir() {
			fmt.Fprintf(w, "missing: %s\n", name)
			result.Missing = append(result.Missing, name)
			continue
		}
		if err := copyFile(src, filepath.Join(dest, name), info); err != nil {
			return result, err
		}
		fmt.Fprintf(w, "copied:  %s\n", name)
		result.Files = append(result.Files, name)
	}

	for _, name := range cfg.Dirs {
		src := filepath.Join(srcBase, name)
		info, err := os.Stat(src)
		if err != nil || !info.IsDir() {
			fmt.Fprintf(w, "missing: %s/\n", name)
			result.Missing = append(result.Missing, name)
			continue
		}
		n, err := copyDir(src, filepath.Join(dest, name), dest)
		if err != nil {
			return result, err
		}
		fmt.Fprintf(w, "copied:  %s/ (%d files)\n", name, n)
		result.Dirs = append(result.Dirs, name)
	}

	if cfg.WriteGitignore {
		path := filepath.Join(dest, gitignoreFile)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			if err := os.WriteFile(path, []byte(defaultGitignore), 0o644); err != nil {
				return result, fmt.Errorf("writing %s: %w", gitignoreFile, err)
			}
			fmt.Fprintf(w, "created: %s\n", gitignoreFile)
			result.GitignoreWritten = true
		}
	}

	fmt.Fprintf(w, "\ncopied %d files and %d directories into %s (%d missing)\n",
		len(result.Files), len(result.Dirs), dest, len(result.Missing))
	return result, nil
}

// copyDir copies the tree at src to dst and returns the number of files
// copied. The destination root is skipped so a source that contains it is
// not copied into itself.
func copyDir(src, dst, destRoot string) (int, error) {
	absDest, err := filepath.Abs(destRoot)
	if err != nil {
		return 0, fmt.Errorf("resolving destination: %w", err)
	}

	var n int
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if abs, aerr := filepath.Abs(path); aerr == nil && d.IsDir() && isWithin(abs, absDest) {
			return filepath.SkipDir
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}
		if d.IsDir() {
			return os.MkdirAll(target, info.Mode().Perm()|0o700)
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		n++
		return copyFile(path, target, info)
	})
	if err != nil {
		return n, fmt.Errorf("copying %s: %w", src, err)
	}
	return n, nil
}

func isWithin(path, root string) bool {
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}

// copyFile copies src to dst with the mode and modification time of info.
func copyFile(src, dst string, info fs.FileInfo) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dst), err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("setting mode on %s: %w", dst, err)
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("setting times on %s: %w", dst, err)
	}
	return nil
}
