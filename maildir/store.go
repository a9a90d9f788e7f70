package maildir

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/infodancer/mailclean"
	"github.com/infodancer/mailclean/errors"
)

// InboxName is the logical name of the top-level inbox.
const InboxName = "INBOX"

// Store implements mailclean.MailStore using the Maildir format.
// It uses emersion/go-maildir for folder creation and flag handling.
type Store struct {
	basePath  string
	prefix    string // prepended to folder directory names (e.g., ".")
	separator string // replaces "/" in hierarchical names (e.g., ".")

	*Writer
}

// NewStore creates a new Store rooted at basePath.
// Folder "Lists/Go" maps to basePath/<prefix>Lists<separator>Go.
func NewStore(basePath, prefix, separator string) *Store {
	return &Store{
		basePath:  basePath,
		prefix:    prefix,
		separator: separator,
		Writer:    NewWriter(),
	}
}

// FolderPath implements mailclean.FolderStore.
// Returns an error if the resulting path would escape the base directory.
func (s *Store) FolderPath(name string) (string, error) {
	cleanBase := filepath.Clean(s.basePath)
	if name == InboxName {
		return cleanBase, nil
	}
	if name == "" {
		return "", errors.ErrInvalidPath
	}

	dirname := s.prefix + strings.ReplaceAll(name, "/", s.separator)
	cleanCandidate := filepath.Clean(filepath.Join(cleanBase, dirname))

	// Add separator to prevent prefix matching (e.g., /base-other matching /base)
	if cleanCandidate == cleanBase ||
		!strings.HasPrefix(cleanCandidate+string(filepath.Separator), cleanBase+string(filepath.Separator)) {
		return "", errors.ErrPathTraversal
	}
	return cleanCandidate, nil
}

// Open implements mailclean.FolderStore.
func (s *Store) Open(ctx context.Context, path string) (mailclean.FolderReader, error) {
	folder := New(path)
	if !folder.Exists() {
		return nil, errors.ErrFolderNotFound
	}
	return &reader{folder: folder, files: make(map[string]string)}, nil
}

// Create implements mailclean.FolderStore. Every level of a
// hierarchical folder name is created, so "Archive.2024.03-Mar" also
// creates "Archive" and "Archive.2024".
func (s *Store) Create(ctx context.Context, path string) error {
	for _, p := range s.hierarchy(path) {
		isInbox := p == filepath.Clean(s.basePath)
		if err := New(p).Create(!isInbox); err != nil {
			return err
		}
	}
	return nil
}

// hierarchy returns the folder paths from the outermost level down to path.
func (s *Store) hierarchy(path string) []string {
	cleanBase := filepath.Clean(s.basePath)
	rel, err := filepath.Rel(cleanBase, filepath.Clean(path))
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") || s.separator == "" {
		return []string{path}
	}
	if !strings.HasPrefix(rel, s.prefix) {
		return []string{path}
	}

	parts := strings.Split(filepath.ToSlash(strings.TrimPrefix(rel, s.prefix)), s.separator)
	paths := make([]string, 0, len(parts))
	for i := range parts {
		if parts[i] == "" {
			continue
		}
		paths = append(paths, filepath.Join(cleanBase, s.prefix+strings.Join(parts[:i+1], s.separator)))
	}
	return paths
}

// reader implements mailclean.FolderReader over one folder.
type reader struct {
	folder *Folder
	files  map[string]string // key -> filename of every listed message
}

func (r *reader) Path() string { return r.folder.Path() }

// Messages implements mailclean.FolderReader. Both cur/ and new/ are
// listed; messages in new/ are not moved to cur/. A name without a
// "2," info part is listed with no flags.
func (r *reader) Messages(ctx context.Context) ([]mailclean.Message, error) {
	var messages []mailclean.Message
	for _, area := range []string{areaCur, areaNew} {
		msgs, err := r.scan(area)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msgs...)
	}
	return messages, nil
}

func (r *reader) scan(area string) ([]mailclean.Message, error) {
	dir := r.folder.area(area)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var messages []mailclean.Message
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		key, flags := parseInfo(entry.Name())
		filename := filepath.Join(dir, entry.Name())
		m, err := loadMessage(key, filename, convertFlags(flags))
		if err != nil {
			if os.IsNotExist(err) {
				continue // removed by another agent
			}
			return nil, err
		}
		r.files[key] = filename
		messages = append(messages, m)
	}
	return messages, nil
}

// Remove implements mailclean.FolderReader.
func (r *reader) Remove(ctx context.Context, key string) error {
	if filename, ok := r.files[key]; ok {
		if err := os.Remove(filename); err != nil {
			return err
		}
		delete(r.files, key)
		return nil
	}
	// Not listed by this reader; ask go-maildir to find it in cur/.
	if msg, err := r.folder.Dir().MessageByKey(key); err == nil {
		return msg.Remove()
	}
	return errors.ErrMessageNotFound
}

// Compile-time interface verification.
var (
	_ mailclean.MailStore    = (*Store)(nil)
	_ mailclean.FolderReader = (*reader)(nil)
)
