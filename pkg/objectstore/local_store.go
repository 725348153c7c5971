package objectstore

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStore serves documents from a directory on disk. Keys are
// slash-separated paths relative to the root.
type LocalStore struct {
	root string
}

var _ Store = &LocalStore{}

func NewLocalStore(root string) (*LocalStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("document store root %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("document store root %s is not a directory", abs)
	}
	return &LocalStore{root: abs}, nil
}

func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) List(ctx context.Context) ([]ObjectInfo, error) {
	var objects []ObjectInfo
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		objects = append(objects, ObjectInfo{
			Key:     filepath.ToSlash(rel),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return objects, nil
}

// resolve maps a key onto the root. Keys reaching outside the root,
// such as "../secret.txt" or absolute paths, are rejected. Keys arrive
// from HTTP parameters, so this is the only line of defense.
func (s *LocalStore) resolve(key string) (string, error) {
	name := filepath.FromSlash(key)
	if key == "" || !filepath.IsLocal(name) {
		return "", fmt.Errorf("invalid document key %q", key)
	}
	return filepath.Join(s.root, name), nil
}

func (s *LocalStore) Stat(ctx context.Context, key string) (*ObjectInfo, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &ObjectInfo{
		Key:     key,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

func (s *LocalStore) Read(ctx context.Context, key string) ([]byte, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}
