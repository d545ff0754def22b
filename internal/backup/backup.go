// Package backup writes and restores tar.gz archives of the GutWise SQLite
// database and its optional config file.
package backup

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver
)

// Backup writes a tar.gz archive holding the database at dbPath and, when it
// exists, the config file at configPath. The WAL is checkpointed first so the
// database file alone is consistent. It returns the archived entry names.
func Backup(ctx context.Context, dbPath, configPath, outputPath string) ([]string, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("database file not found: %w", err)
	}
	if err := checkpointWAL(ctx, dbPath); err != nil {
		return nil, fmt.Errorf("WAL checkpoint failed: %w", err)
	}

	files := []string{dbPath}
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			files = append(files, configPath)
		}
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}
	names, err := writeArchive(out, files)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(outputPath)
		return nil, err
	}
	return names, nil
}

// writeArchive streams files into a gzip-compressed tar on w, each under its
// base name.
func writeArchive(w io.Writer, files []string) ([]string, error) {
	gw := gzip.NewWriter(w)
	tw := tar.NewWriter(gw)

	names := make([]string, 0, len(files))
	for _, path := range files {
		name := filepath.Base(path)
		if err := addFileToTar(tw, path, name); err != nil {
			return nil, fmt.Errorf("adding %s to archive: %w", name, err)
		}
		names = append(names, name)
	}
	if err := tw.Close(); err != nil {
		return nil, fmt.Errorf("closing tar: %w", err)
	}
	if err := gw.Close(); err != nil {
		return nil, fmt.Errorf("closing gzip: %w", err)
	}
	return names, nil
}

// checkpointWAL folds the WAL into the main database file.
func checkpointWAL(ctx context.Context, dbPath string) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)")
	return err
}

// addFileToTar writes one file into tw under archiveName.
func addFileToTar(tw *tar.Writer, filePath, archiveName string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = archiveName

	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}

	_, err = io.Copy(tw, f)
	return err
}

// maxEntryBytes bounds a single extracted file.
const maxEntryBytes = 4 << 30

// ErrExists is returned by Restore when a target file exists and force is
// false.
var ErrExists = errors.New("file already exists")

// Restore extracts a Backup archive into dataDir. Existing files are only
// overwritten when force is true. Entries that are not regular files or that
// would escape dataDir are rejected.
func Restore(ctx context.Context, inputPath, dataDir string, force bool) ([]string, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer in.Close()

	gr, err := gzip.NewReader(in)
	if err != nil {
		return nil, fmt.Errorf("reading gzip: %w", err)
	}
	defer gr.Close()

	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	var restored []string
	tr := tar.NewReader(gr)
	for {
		if err := ctx.Err(); err != nil {
			return restored, err
		}
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return restored, fmt.Errorf("reading archive: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			return restored, fmt.Errorf("unsupported entry %q", hdr.Name)
		}

		name := filepath.Base(filepath.Clean(hdr.Name))
		if name != hdr.Name || strings.HasPrefix(name, ".") {
			return restored, fmt.Errorf("unsafe entry name %q", hdr.Name)
		}
		target := filepath.Join(dataDir, name)

		if !force {
			if _, err := os.Stat(target); err == nil {
				return restored, fmt.Errorf("%s: %w (use -force to overwrite)", target, ErrExists)
			}
		}
		if err := extractFile(tr, target, hdr.Size); err != nil {
			return restored, fmt.Errorf("extracting %q: %w", hdr.Name, err)
		}
		restored = append(restored, target)
	}
	return restored, nil
}

// extractFile writes exactly size bytes from r to target via a temp file.
func extractFile(r io.Reader, target string, size int64) error {
	if size > maxEntryBytes {
		return fmt.Errorf("entry too large (%d bytes)", size)
	}
	tmp, err := os.CreateTemp(filepath.Dir(target), ".restore-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.CopyN(tmp, r, size); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}
