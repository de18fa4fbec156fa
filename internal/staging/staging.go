package staging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

var ErrTooLarge = errors.New("upload exceeds the size limit")

// Area is the directory uploads are staged in while a request is processed.
type Area struct {
	dir string
}

// NewArea resolves dir (relative to the working directory) and creates it.
func NewArea(dir string) (*Area, error) {
	if !filepath.IsAbs(dir) {
		root, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving staging directory: %w", err)
		}
		dir = filepath.Join(root, dir)
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("creating staging directory %s: %w", dir, err)
	}
	return &Area{dir: dir}, nil
}

func (a *Area) Dir() string {
	return a.dir
}

// File is one staged upload. The caller owns it and must Remove it.
type File struct {
	Path     string
	Filename string
	Size     int64

	once      sync.Once
	removeErr error
}

// Stage copies r into a uniquely named file. The client filename only keeps its
// extension, so two uploads with the same name never collide.
func (a *Area) Stage(r io.Reader, filename string, maxBytes int64) (*File, error) {
	name := uuid.New().String() + filepath.Ext(filepath.Base(filename))
	path := filepath.Join(a.dir, name)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return nil, fmt.Errorf("creating staged file: %w", err)
	}
	file := &File{Path: path, Filename: filename}

	written, err := io.Copy(dst, io.LimitReader(r, maxBytes+1))
	closeErr := dst.Close()
	switch {
	case err != nil:
		_ = file.Remove()
		return nil, fmt.Errorf("writing staged file: %w", err)
	case closeErr != nil:
		_ = file.Remove()
		return nil, fmt.Errorf("closing staged file: %w", closeErr)
	case written > maxBytes:
		_ = file.Remove()
		return nil, ErrTooLarge
	}
	file.Size = written
	return file, nil
}

func (f *File) Bytes() ([]byte, error) {
	return os.ReadFile(f.Path)
}

// Remove deletes the staged file. Safe to call more than once.
func (f *File) Remove() error {
	f.once.Do(func() {
		if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			f.removeErr = err
		}
	})
	return f.removeErr
}
