// Package bundle packs the runtime libraries a build must ship into a single
// xz-compressed NAR archive, flattened under lib/.
package bundle

import (
	"bufio"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/ulikunitz/xz"
	"zombiezen.com/go/nix/nar"
)

// LibDir is the directory inside the archive holding every library
const LibDir = "lib"

// Write archives files into w. Files sharing a base name are stored once.
func Write(w io.Writer, files []string) error {
	byName := make(map[string]string, len(files))
	for _, f := range files {
		name := filepath.Base(f)
		if _, ok := byName[name]; !ok {
			byName[name] = f
		}
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	xzWriter, err := xz.NewWriter(w)
	if err != nil {
		return errors.Wrap(err, "creating xz writer")
	}

	narWriter := nar.NewWriter(xzWriter)
	if err := narWriter.WriteHeader(&nar.Header{Mode: fs.ModeDir | 0o755}); err != nil {
		return errors.Wrap(err, "writing root")
	}
	if err := narWriter.WriteHeader(&nar.Header{Path: LibDir, Mode: fs.ModeDir | 0o755}); err != nil {
		return errors.Wrapf(err, "writing %s", LibDir)
	}

	for _, name := range names {
		if err := writeFile(narWriter, path.Join(LibDir, name), byName[name]); err != nil {
			return err
		}
	}

	if err := narWriter.Close(); err != nil {
		return errors.Wrap(err, "closing archive")
	}
	if err := xzWriter.Close(); err != nil {
		return errors.Wrap(err, "closing xz stream")
	}
	return nil
}

// WriteFile archives files into a new file at dst
func WriteFile(dst string, files []string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Wrap(err, "creating bundle directory")
	}

	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrap(err, "creating bundle")
	}
	defer out.Close()

	bw := bufio.NewWriter(out)
	if err := Write(bw, files); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "writing bundle")
	}
	return out.Close()
}

func writeFile(nw *nar.Writer, archivePath, src string) error {
	f, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "opening %s", src)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return errors.Wrapf(err, "stat %s", src)
	}
	if !info.Mode().IsRegular() {
		return errors.Newf("%s is not a regular file", src)
	}

	hdr := &nar.Header{
		Path: archivePath,
		Size: info.Size(),
	}
	if info.Mode()&0o111 != 0 {
		hdr.Mode = 0o755
	}
	if err := nw.WriteHeader(hdr); err != nil {
		return errors.Wrapf(err, "writing header for %s", archivePath)
	}

	written, err := io.Copy(nw, f)
	if err != nil {
		return errors.Wrapf(err, "writing %s", archivePath)
	}
	if written != hdr.Size {
		return errors.Newf("size mismatch for %s", archivePath)
	}
	return nil
}

// Entry is one file stored in a bundle
type Entry struct {
	Path string
	Size int64
}

// List returns the regular files stored in a bundle read from r
func List(r io.Reader) ([]Entry, error) {
	xzReader, err := xz.NewReader(bufio.NewReader(r))
	if err != nil {
		return nil, errors.Wrap(err, "creating xz reader")
	}

	narReader := nar.NewReader(xzReader)

	var entries []Entry
	for {
		hdr, err := narReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading NAR entry")
		}
		if hdr.Mode.IsRegular() {
			entries = append(entries, Entry{Path: hdr.Path, Size: hdr.Size})
		}
	}

	return entries, nil
}
