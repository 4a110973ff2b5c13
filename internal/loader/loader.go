// Package loader supplies the default filesystem-backed collaborators
// internal/lexer and internal/builtins need but don't implement
// themselves: resolving a `load "path";` directive to source text, and
// reading a file for the read_file built-in. Both share the same
// boundary (a base directory each relative path resolves against),
// mirroring how the teacher's internal/units search-path resolver and
// this language's single `load` directive both ultimately bottom out in
// os.ReadFile.
package loader

import (
	"os"
	"path/filepath"
)

// FilesystemResolver resolves `load` directives and read_file calls
// relative to Dir (typically the directory containing the file being
// interpreted, or the working directory for a REPL session with no
// backing file).
type FilesystemResolver struct {
	Dir string
}

// New returns a FilesystemResolver rooted at dir.
func New(dir string) *FilesystemResolver {
	return &FilesystemResolver{Dir: dir}
}

func (r *FilesystemResolver) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.Dir, path)
}

// ResolveLoad implements lexer.SourceResolver: it reads the named file
// relative to Dir and returns its contents plus the resolved path (used
// to attribute diagnostics raised while lexing the spliced tokens).
func (r *FilesystemResolver) ResolveLoad(path string) (source string, resolvedName string, err error) {
	full := r.resolvePath(path)
	contents, err := os.ReadFile(full)
	if err != nil {
		return "", "", err
	}
	return string(contents), full, nil
}

// ReadFile implements builtins.FileReader over the same boundary
// ResolveLoad uses, so read_file and load agree on how a relative path
// is interpreted.
func (r *FilesystemResolver) ReadFile(path string) (string, error) {
	contents, err := os.ReadFile(r.resolvePath(path))
	if err != nil {
		return "", err
	}
	return string(contents), nil
}
