// Package staticfiles implements the collectstatic step: copying the
// static asset source directories into the single directory the web
// server is pointed at.
package staticfiles

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Result reports what one Collect run did.
type Result struct {
	Copied  int
	Skipped int
}

// Collect copies every file under each source directory into root,
// preserving relative paths. When the same relative path exists in more
// than one source, the first source wins and later copies are counted
// as skipped. Missing source directories are ignored.
func Collect(root string, sources []string) (*Result, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create static root: %w", err)
	}

	res := &Result{}
	seen := make(map[string]bool)

	for _, src := range sources {
		info, err := os.Stat(src)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("static source %s is not a directory", src)
		}

		err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(src, path)
			if err != nil {
				return err
			}
			if seen[rel] {
				res.Skipped++
				return nil
			}
			if err := copyFile(path, filepath.Join(root, rel)); err != nil {
				return err
			}
			seen[rel] = true
			res.Copied++
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
