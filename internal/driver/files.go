package driver

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListSourceFiles возвращает отсортированный список исходников в директории
// (рекурсивно). Скрытые и нечитаемые поддиректории пропускаются.
func ListSourceFiles(dir string, exts []string) ([]string, error) {
	files, _, err := walkSourceFiles(dir, exts)
	return files, err
}

// walkSourceFiles — ListSourceFiles плюс поддиректории, которые не удалось
// прочитать. Ошибка возвращается только для самого dir.
func walkSourceFiles(dir string, exts []string) (files []string, unreadable map[string]error, err error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			if unreadable == nil {
				unreadable = make(map[string]error)
			}
			unreadable[path] = err
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if hasExtension(path, exts) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, unreadable, nil
}

func hasExtension(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, want := range exts {
		if ext == want {
			return true
		}
	}
	return false
}

// IsDir reports whether path names an existing directory.
func IsDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}
