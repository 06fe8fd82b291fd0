package reports

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
)

// verifyCopy copies the archive stream from src to dst and checks that the
// result is a complete, readable ZIP, returning the number of entries found.
// Streamed archives carry entry sizes in trailing data descriptors, so the
// entries cannot be decoded mid-stream; the copy is spooled to a temporary
// file and walked with the random-access reader once all bytes are written.
// Reading every entry to the end exercises the per-entry CRC checks.
func verifyCopy(dst io.Writer, src io.Reader) (int, error) {
	spool, err := os.CreateTemp("", "report-*.zip")
	if err != nil {
		return 0, fmt.Errorf("create spool file: %w", err)
	}
	defer func() {
		spool.Close()
		os.Remove(spool.Name())
	}()

	size, err := io.Copy(io.MultiWriter(dst, spool), src)
	if err != nil {
		return 0, err
	}
	archive, err := zip.NewReader(spool, size)
	if err != nil {
		return 0, fmt.Errorf("open archive: %w", err)
	}
	entries := 0
	for _, entry := range archive.File {
		content, err := entry.Open()
		if err != nil {
			return entries, fmt.Errorf("open archive entry %s: %w", entry.Name, err)
		}
		if _, err := io.Copy(io.Discard, content); err != nil {
			content.Close()
			return entries, fmt.Errorf("read archive entry %s: %w", entry.Name, err)
		}
		if err := content.Close(); err != nil {
			return entries, fmt.Errorf("close archive entry %s: %w", entry.Name, err)
		}
		entries++
	}
	return entries, nil
}
