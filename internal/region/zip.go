package region

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// archiveTime is the fixed entry timestamp. Re-packaging unchanged content
// must produce byte-identical archives.
var archiveTime = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func newEntry(zw *zip.Writer, name string) (io.Writer, error) {
	return zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: archiveTime,
	})
}

func writeSingleFileZip(path, entryName string, data []byte) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer file.Close()

	zw := zip.NewWriter(file)
	w, err := newEntry(zw, entryName)
	if err != nil {
		return fmt.Errorf("create archive entry: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write archive entry: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish archive: %w", err)
	}
	return file.Close()
}

// Archive packages srcDir into a zip at archivePath. include filters entries
// by their slash-separated path relative to srcDir; a nil include admits
// everything. Returns the number of archived files.
func Archive(srcDir, archivePath string, include func(rel string) bool) (int, error) {
	file, err := os.Create(archivePath)
	if err != nil {
		return 0, fmt.Errorf("create archive: %w", err)
	}
	defer file.Close()

	zw := zip.NewWriter(file)
	count := 0

	err = filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if include != nil && !include(rel) {
			return nil
		}
		w, err := newEntry(zw, rel)
		if err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		if _, err := io.Copy(w, src); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("archive %s: %w", srcDir, err)
	}
	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("finish archive: %w", err)
	}
	return count, file.Close()
}

// ISOFromPath extracts the language code from an archive entry path of the
// form {canon}/{category}/{iso}/....
func ISOFromPath(entry string) string {
	parts := strings.Split(entry, "/")
	if len(parts) >= 3 {
		return parts[2]
	}
	return ""
}

// FilterZip streams the entries of the combined archive whose language is in
// isos into a region archive at dstPath. extra entries (for example a
// filtered summary) are written first and shadow same-named source entries.
// Returns the number of content entries copied.
func FilterZip(srcPath, dstPath string, isos map[string]struct{}, extra map[string][]byte) (int, error) {
	src, err := zip.OpenReader(srcPath)
	if err != nil {
		return 0, fmt.Errorf("open combined archive: %w", err)
	}
	defer src.Close()

	file, err := os.Create(dstPath)
	if err != nil {
		return 0, fmt.Errorf("create region archive: %w", err)
	}
	defer file.Close()
	zw := zip.NewWriter(file)

	extraNames := make([]string, 0, len(extra))
	for name := range extra {
		extraNames = append(extraNames, name)
	}
	sort.Strings(extraNames)
	for _, name := range extraNames {
		w, err := newEntry(zw, name)
		if err != nil {
			return 0, err
		}
		if _, err := w.Write(extra[name]); err != nil {
			return 0, err
		}
	}

	count := 0
	for _, entry := range src.File {
		if _, shadowed := extra[entry.Name]; shadowed {
			continue
		}
		iso := ISOFromPath(entry.Name)
		if iso == "" {
			continue
		}
		if _, ok := isos[iso]; !ok {
			continue
		}
		r, err := entry.Open()
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", entry.Name, err)
		}
		w, err := newEntry(zw, entry.Name)
		if err != nil {
			r.Close()
			return 0, err
		}
		if _, err := io.Copy(w, r); err != nil {
			r.Close()
			return 0, fmt.Errorf("copy %s: %w", entry.Name, err)
		}
		r.Close()
		count++
	}

	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("finish region archive: %w", err)
	}
	return count, file.Close()
}
