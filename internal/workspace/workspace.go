// Package workspace owns the per-request scratch directories and the
// delayed cleanup that removes them after the response has been delivered.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DirPrefix starts the name of every workspace directory.
const DirPrefix = "qrposter_"

// Provider creates workspaces under Base, or the system temp directory when
// Base is empty.
type Provider struct {
	Base string
}

func NewProvider(base string) *Provider {
	return &Provider{Base: base}
}

// Root is the directory workspaces are created in.
func (p *Provider) Root() string {
	if p == nil || p.Base == "" {
		return os.TempDir()
	}
	return p.Base
}

// Create makes a fresh, empty workspace. Teardown belongs to the caller.
func (p *Provider) Create() (*Workspace, error) {
	root := p.Root()
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace root: %w", err)
	}
	dir, err := os.MkdirTemp(root, DirPrefix)
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Workspace{Dir: dir}, nil
}

// Workspace is a directory holding every file produced for one request.
type Workspace struct {
	Dir string
}

// File returns a new unique path inside the workspace, e.g.
// File("qr_styled", ".png") -> <dir>/qr_styled_<hex>.png. Nothing is created.
func (w *Workspace) File(prefix, ext string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return filepath.Join(w.Dir, prefix+"_"+id+ext)
}

// Contains reports whether path lies inside the workspace.
func (w *Workspace) Contains(path string) bool {
	rel, err := filepath.Rel(w.Dir, path)
	return err == nil && rel != "." && !strings.HasPrefix(rel, "..")
}

// Remove deletes the workspace and everything in it.
func (w *Workspace) Remove() error {
	return os.RemoveAll(w.Dir)
}
