package snapshotio

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gridkit/infinigrid/pkg/errors"
	"github.com/gridkit/infinigrid/pkg/grid"
)

func sampleStatus() *grid.Status {
	return &grid.Status{
		Options: grid.Options{ColumnWidth: 100, Gutter: 10, Columns: 2, Capacity: 4},
		Items: []grid.ItemStatus{
			{Key: "item-1", GroupKey: "g1", Size: grid.Size{Width: 100, Height: 80}, Column: 0},
			{Key: "item-2", GroupKey: "g1", Size: grid.Size{Width: 100, Height: 60}, Column: 1},
		},
		Columns:      []float64{90, 70},
		Recycling:    false,
		ScrollOffset: 42,
		Placed:       2,
	}
}

func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(sampleStatus(), &buf); err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}

	st, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON error: %v", err)
	}
	if len(st.Items) != 2 || st.Items[0].Key != "item-1" {
		t.Errorf("items not preserved: %+v", st.Items)
	}
	if st.ScrollOffset != 42 {
		t.Errorf("expected scroll offset 42, got %v", st.ScrollOffset)
	}
	if st.Options.Capacity != 4 {
		t.Errorf("expected capacity 4, got %d", st.Options.Capacity)
	}
	if len(st.Columns) != 2 || st.Columns[0] != 90 {
		t.Errorf("columns not preserved: %v", st.Columns)
	}
}

func TestWriteJSONNilStatus(t *testing.T) {
	var buf bytes.Buffer
	err := WriteJSON(nil, &buf)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestReadJSONMalformed(t *testing.T) {
	_, err := ReadJSON(strings.NewReader("{not json"))
	if !errors.Is(err, errors.ErrCodeInvalidSnapshot) {
		t.Errorf("expected INVALID_SNAPSHOT, got %v", err)
	}
}

func TestReadJSONNewerVersion(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"format_version": 99, "status": {}}`))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("expected UNSUPPORTED, got %v", err)
	}
}

func TestReadJSONMissingStatus(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"format_version": 1}`))
	if !errors.Is(err, errors.ErrCodeInvalidSnapshot) {
		t.Errorf("expected INVALID_SNAPSHOT, got %v", err)
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")

	if err := ExportJSON(sampleStatus(), path); err != nil {
		t.Fatalf("ExportJSON error: %v", err)
	}
	st, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON error: %v", err)
	}
	if len(st.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(st.Items))
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("expected FILE_NOT_FOUND, got %v", err)
	}
}

func TestPathValidation(t *testing.T) {
	if err := ExportJSON(sampleStatus(), "../escape.json"); err == nil {
		t.Error("expected error for traversal path")
	}
	if _, err := ImportJSON(""); err == nil {
		t.Error("expected error for empty path")
	}
}
