// Package zip bundles session images into a single downloadable archive.
package zip

import (
	"archive/zip"
	"bytes"
	"errors"
)

// Entry is one file inside the archive.
type Entry struct {
	Filename string
	Data     []byte
}

// Archive writes the entries into a zip archive. Entries without data are
// skipped; an archive with nothing to hold is an error.
func Archive(entries []Entry) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	written := 0
	for _, entry := range entries {
		if entry.Filename == "" || len(entry.Data) == 0 {
			continue
		}
		w, err := zw.Create(entry.Filename)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(entry.Data); err != nil {
			return nil, err
		}
		written++
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	if written == 0 {
		return nil, errors.New("zip: no entries to archive")
	}
	return buf.Bytes(), nil
}
