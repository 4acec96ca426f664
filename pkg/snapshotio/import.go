package snapshotio

import (
	"encoding/json"
	"io"
	"os"

	"github.com/gridkit/infinigrid/pkg/errors"
	"github.com/gridkit/infinigrid/pkg/grid"
)

// ReadJSON decodes a snapshot envelope from r.
//
// ReadJSON returns an error if:
//   - The JSON is malformed
//   - The envelope was written by a newer format version
//   - The envelope carries no status
//
// The returned status is independent of r and can be passed to
// [grid.Grid.SetStatus]. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*grid.Status, error) {
	var data envelope
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "decode snapshot")
	}
	if data.FormatVersion > FormatVersion {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"snapshot format version %d is newer than supported version %d",
			data.FormatVersion, FormatVersion)
	}
	if data.Status == nil {
		return nil, errors.New(errors.ErrCodeInvalidSnapshot, "snapshot envelope has no status")
	}
	return data.Status, nil
}

// ImportJSON reads a JSON snapshot file at path.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. A missing file is reported as FILE_NOT_FOUND so callers can treat
// a first run without a saved snapshot as a non-error.
func ImportJSON(path string) (*grid.Status, error) {
	if err := errors.ValidateSnapshotPath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "snapshot %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
