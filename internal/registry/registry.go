package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/garyjia/docsynth/internal/models"
)

// DefaultExtensions are the template file extensions discovered when none are configured
var DefaultExtensions = []string{".html", ".htm"}

// Registry holds the sorted templates of one document class and a dispatch cursor.
// A Registry is not safe for concurrent use; each generator owns its own.
type Registry struct {
	class     models.DocumentClass
	templates []models.TemplateHandle
	cursor    int
	logger    *zap.Logger
}

// Discover lists dir inside fsys (non-recursive), keeps files whose extension is
// in exts and returns a registry over them in lexical name order.
func Discover(fsys fs.FS, dir string, class models.DocumentClass, exts []string, logger *zap.Logger) (*Registry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w for class %s in %s", ErrNoTemplatesFound, class, dir)
		}
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrInvalidDirectory, dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !hasExtension(entry.Name(), exts) {
			continue
		}
		names = append(names, entry.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w for class %s in %s", ErrNoTemplatesFound, class, dir)
	}
	sort.Strings(names)

	r := &Registry{
		class:     class,
		templates: make([]models.TemplateHandle, len(names)),
		logger:    logger,
	}
	for i, name := range names {
		h := models.TemplateHandle{
			Index: i,
			Name:  name,
			Path:  path.Join(dir, name),
			Class: class,
		}
		if class == models.ClassMiscellaneous {
			h.Subtype = ClassifySubtype(name)
		}
		r.templates[i] = h
	}

	logger.Info("Discovered templates",
		zap.String("class", string(class)),
		zap.String("dir", dir),
		zap.Int("count", len(names)))

	return r, nil
}

// Next returns the template under the cursor and advances it, wrapping after the last
func (r *Registry) Next() models.TemplateHandle {
	h := r.templates[r.cursor]
	r.cursor = (r.cursor + 1) % len(r.templates)
	return h
}

// Class returns the document class the registry serves
func (r *Registry) Class() models.DocumentClass {
	return r.class
}

// Len returns the number of templates
func (r *Registry) Len() int {
	return len(r.templates)
}

// Templates returns a copy of the sorted handles
func (r *Registry) Templates() []models.TemplateHandle {
	out := make([]models.TemplateHandle, len(r.templates))
	copy(out, r.templates)
	return out
}

func hasExtension(name string, exts []string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range exts {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}
