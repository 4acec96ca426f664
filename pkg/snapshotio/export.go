package snapshotio

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/gridkit/infinigrid/pkg/errors"
	"github.com/gridkit/infinigrid/pkg/grid"
)

// FormatVersion is the current snapshot envelope version. Readers reject
// envelopes written by a newer format.
const FormatVersion = 1

type envelope struct {
	FormatVersion int          `json:"format_version"`
	SavedAt       time.Time    `json:"saved_at"`
	Status        *grid.Status `json:"status"`
}

// WriteJSON encodes a snapshot as JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(st *grid.Status, w io.Writer) error {
	if st == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil snapshot")
	}

	out := envelope{
		FormatVersion: FormatVersion,
		SavedAt:       time.Now().UTC(),
		Status:        st,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode snapshot")
	}
	return nil
}

// ExportJSON writes a snapshot to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(st *grid.Status, path string) error {
	if err := errors.ValidateSnapshotPath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(st, f)
}
