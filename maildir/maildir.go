package maildir

import (
	"os"
	"path/filepath"

	"github.com/emersion/go-maildir"
)

// Areas of a maildir folder.
const (
	areaTmp = "tmp"
	areaNew = "new"
	areaCur = "cur"
)

// folderMarker is created in every folder below the top-level inbox,
// as Courier and Dovecot expect.
const folderMarker = "maildirfolder"

// Folder represents a single maildir directory.
type Folder struct {
	path string
}

// New creates a Folder instance for the given path.
// It does not create the directory; use Create() for that.
func New(path string) *Folder {
	return &Folder{path: path}
}

// Path returns the folder path.
func (f *Folder) Path() string {
	return f.path
}

// Dir returns the go-maildir handle for the folder.
func (f *Folder) Dir() maildir.Dir {
	return maildir.Dir(f.path)
}

// area returns the path of one of tmp, new or cur.
func (f *Folder) area(name string) string {
	return filepath.Join(f.path, name)
}

// Create creates the folder directory structure (new, cur, tmp).
// When marker is set a maildirfolder file is added as well.
func (f *Folder) Create(marker bool) error {
	if !f.Exists() {
		// Init tolerates existing areas but needs the parent directory.
		if err := os.MkdirAll(f.path, 0700); err != nil {
			return err
		}
		if err := f.Dir().Init(); err != nil {
			return err
		}
	}
	if !marker {
		return nil
	}
	mf, err := os.OpenFile(filepath.Join(f.path, folderMarker), os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	return mf.Close()
}

// Exists checks if the folder exists and has the required structure.
func (f *Folder) Exists() bool {
	for _, area := range []string{areaTmp, areaNew, areaCur} {
		info, err := os.Stat(f.area(area))
		if err != nil || !info.IsDir() {
			return false
		}
	}
	return true
}
