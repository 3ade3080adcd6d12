// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bundle

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mdword/pkg/types"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadManifest(t *testing.T) {
	tests := []struct {
		name     string
		manifest string // empty means no file
		want     types.CopyConfig
		wantErr  bool
	}{
		{
			name: "missing manifest uses defaults",
			want: types.DefaultCopyConfig(),
		},
		{
			name:     "overrides keep unspecified defaults",
			manifest: "files: [README.md]\ndest: minimax\n",
			want: types.CopyConfig{
				Files:          []string{"README.md"},
				Dirs:           []string{"src"},
				Dest:           "minimax",
				WriteGitignore: true,
			},
		},
		{
			name:     "invalid yaml",
			manifest: "files: [unterminated\n",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultManifest)
			if tt.manifest != "" {
				writeFile(t, path, tt.manifest)
			}

			got, err := LoadManifest(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCopy(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "README.md"), "# readme")
	writeFile(t, filepath.Join(base, "package.json"), "{}")
	writeFile(t, filepath.Join(base, "src", "main.js"), "console.log(1)")
	writeFile(t, filepath.Join(base, "src", "components", "App.vue"), "<template/>")

	stamp := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(filepath.Join(base, "README.md"), stamp, stamp))

	cfg := types.CopyConfig{
		Files:          []string{"README.md", "package.json", "vite.config.js"},
		Dirs:           []string{"src", "public"},
		Dest:           "minimax",
		WriteGitignore: true,
	}

	var log bytes.Buffer
	result, err := Copy(cfg, base, &log)
	require.NoError(t, err)

	assert.Equal(t, []string{"README.md", "package.json"}, result.Files)
	assert.Equal(t, []string{"src"}, result.Dirs)
	assert.Equal(t, []string{"vite.config.js", "public"}, result.Missing)
	assert.True(t, result.GitignoreWritten)

	dest := filepath.Join(base, "minimax")
	data, err := os.ReadFile(filepath.Join(dest, "src", "components", "App.vue"))
	require.NoError(t, err)
	assert.Equal(t, "<template/>", string(data))

	info, err := os.Stat(filepath.Join(dest, "README.md"))
	require.NoError(t, err)
	assert.True(t, stamp.Equal(info.ModTime()), "modification time preserved")

	gitignore, err := os.ReadFile(filepath.Join(dest, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(gitignore), "node_modules/")

	assert.Contains(t, log.String(), "missing: vite.config.js")
	assert.Contains(t, log.String(), "copied:  src/ (2 files)")
	assert.Contains(t, log.String(), "created: .gitignore")
}

func TestCopy_KeepsCopiedGitignore(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, ".gitignore"), "custom\n")

	cfg := types.CopyConfig{Files: []string{".gitignore"}, Dest: "out", WriteGitignore: true}
	result, err := Copy(cfg, base, &bytes.Buffer{})
	require.NoError(t, err)
	assert.False(t, result.GitignoreWritten)

	data, err := os.ReadFile(filepath.Join(base, "out", ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, "custom\n", string(data))
}

func TestCopy_SkipsDestinationInsideSource(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "a.txt"), "a")

	cfg := types.CopyConfig{Dirs: []string{"."}, Dest: "bundle"}
	_, err := Copy(cfg, base, &bytes.Buffer{})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(base, "bundle", "a.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, "bundle", "bundle"))
	assert.True(t, os.IsNotExist(err))
}

func TestCopy_RequiresDest(t *testing.T) {
	_, err := Copy(types.CopyConfig{Files: []string{"a"}}, t.TempDir(), &bytes.Buffer{})
	assert.Error(t, err)
}
