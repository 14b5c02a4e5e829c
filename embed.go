// Package assistant provides embedded runtime texts (the startup banner)
// and an overlay filesystem that checks local disk first, falling back to embedded.
package assistant

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed texts/*.txt
var rawTexts embed.FS

// Texts is the embedded texts filesystem with the "texts/" prefix stripped.
var Texts = mustSub(rawTexts, "texts")

// BannerFile is the name of the startup banner within a texts filesystem.
const BannerFile = "banner.txt"

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// OverlayFS returns a filesystem that checks localDir on disk first,
// falling back to the embedded filesystem for files not found locally.
func OverlayFS(localDir string, embedded fs.FS) fs.FS {
	return overlayFS{localDir: localDir, embedded: embedded}
}

type overlayFS struct {
	localDir string
	embedded fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	f, err := os.Open(filepath.Join(o.localDir, name))
	if err == nil {
		return f, nil
	}
	return o.embedded.Open(name)
}

// Banner reads the startup banner from fsys without its trailing newline.
func Banner(fsys fs.FS) (string, error) {
	data, err := fs.ReadFile(fsys, BannerFile)
	if err != nil {
		return "", fmt.Errorf("assistant: reading %s: %w", BannerFile, err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
