package dictionary

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/example/go-lemmatize/internal/lemma"
)

type VerifyOptions struct {
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

// ErrNoLockManifest is returned by Verify when Dir holds no lock manifest.
var ErrNoLockManifest = errors.New("no lock manifest")

// Verify checks every file recorded in Dir's lock manifest: the file must
// exist, match its recorded sha256 and parse as a dictionary.
func Verify(opts VerifyOptions) error {
	if opts.Dir == "" {
		return errors.New("dictionary dir is required")
	}
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}

	lockPath := filepath.Join(opts.Dir, LockFileName)
	if _, err := os.Stat(lockPath); err != nil {
		return fmt.Errorf("%w at %s", ErrNoLockManifest, lockPath)
	}
	lock := readLockManifest(lockPath)
	if len(lock.Files) == 0 {
		return fmt.Errorf("lock manifest %s lists no files", lockPath)
	}

	names := make([]string, 0, len(lock.Files))
	for name := range lock.Files {
		names = append(names, name)
	}
	sort.Strings(names)

	var failures []string
	for _, name := range names {
		if err := verifyFile(filepath.Join(opts.Dir, name), lock.Files[name]); err != nil {
			_, _ = fmt.Fprintf(opts.Stderr, "FAIL %s: %v\n", name, err)
			failures = append(failures, name)
			continue
		}
		_, _ = fmt.Fprintf(opts.Stdout, "ok %s\n", name)
	}

	if len(failures) > 0 {
		return fmt.Errorf("dictionary verify failed for %d file(s): %v", len(failures), failures)
	}
	return nil
}

func verifyFile(path string, rec lockRecord) error {
	if !isSHA256Hex(rec.SHA256) {
		return fmt.Errorf("lock entry has no valid sha256")
	}
	actual, err := fileSHA256(path)
	if err != nil {
		return err
	}
	if actual != rec.SHA256 {
		return fmt.Errorf("checksum mismatch: expected %s got %s", rec.SHA256, actual)
	}
	if _, err := lemma.LoadFile(path); err != nil {
		return err
	}
	return nil
}
