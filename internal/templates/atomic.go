package templates

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	oerrors "github.com/easyrx/rxmvvm/internal/errors"
)

// writeFileAtomic streams fill into a temporary file next to path and
// renames it into place. If fill or any write fails, path is untouched and
// the temporary file is removed.
func writeFileAtomic(path string, fill func(w io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return permissionError(path, fmt.Errorf("creating temporary file: %w", err))
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = fill(tmp); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return permissionError(path, err)
	}
	return nil
}

// permissionError converts an fs.ErrPermission failure on path into an
// ErrPermission detail error and returns any other err unchanged.
func permissionError(path string, err error) error {
	if !errors.Is(err, fs.ErrPermission) {
		return err
	}
	return oerrors.NewPermissionError(
		fmt.Sprintf("cannot write %s", filepath.Base(path)),
		map[string]string{"Path": path, "Error": err.Error()},
		"Check that the target directory is writable.")
}
