// Package pdf collects PDF files from command-line arguments: plain paths,
// directories, and the `dir/...` recursive form.
package pdf

import (
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"

	"github.com/docq/docq/internal/paths"
)

// File is a PDF read from disk.
type File struct {
	Path string
	Data []byte
}

// Collect expands the given arguments into PDF files. Directories contribute
// their .pdf entries; `dir/...` recurses. A plain argument that is not a PDF
// is an error, a non-PDF file inside a directory is skipped.
func Collect(args []string) ([]*File, error) {
	seen := map[string]struct{}{}
	var files []*File

	collect := func(filePath string, explicit bool) error {
		if _, ok := seen[filePath]; ok {
			return nil
		}
		seen[filePath] = struct{}{}

		if !isPDF(filePath) {
			if explicit {
				return errors.Errorf("%s is not a PDF", filePath)
			}
			return nil
		}
		data, err := os.ReadFile(filePath)
		if err != nil {
			return errors.Wrap(err, "reading file")
		}
		files = append(files, &File{Path: filePath, Data: data})
		return nil
	}

	for _, arg := range args {
		if err := walk(arg, collect); err != nil {
			return nil, errors.Wrapf(err, "collecting %s", arg)
		}
	}
	return files, nil
}

func walk(arg string, collect func(filePath string, explicit bool) error) error {
	arg, err := paths.Expand(arg)
	if err != nil {
		return err
	}

	// The "/..." suffix requests recursion.
	arg, recurse := strings.CutSuffix(arg, "/...")

	info, err := os.Stat(arg)
	if err != nil {
		return errors.Wrap(err, "getting os stats")
	}
	if !info.IsDir() {
		if recurse {
			return errors.New("cannot recurse on a file")
		}
		return collect(arg, true)
	}

	entries, err := os.ReadDir(arg)
	if err != nil {
		return errors.Wrap(err, "reading directory")
	}
	for _, entry := range entries {
		entryPath := path.Join(arg, entry.Name())
		if entry.IsDir() {
			if recurse {
				if err := walk(entryPath+"/...", collect); err != nil {
					return err
				}
			}
			continue
		}
		if err := collect(entryPath, false); err != nil {
			return err
		}
	}
	return nil
}

func isPDF(filePath string) bool {
	return strings.HasSuffix(strings.ToLower(filePath), ".pdf")
}
