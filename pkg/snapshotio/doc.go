// Package snapshotio provides JSON import and export for grid snapshots.
//
// # Overview
//
// This package serializes [grid.Status] values to and from a small JSON
// envelope. The format is designed for:
//
//   - Persisting the visible window across process restarts
//   - Handing a scroll position from one session to another
//   - Inspecting grid state with external tools
//
// # JSON Format
//
// The envelope has a format version, a timestamp, and the snapshot itself:
//
//	{
//	  "format_version": 1,
//	  "saved_at": "2026-08-30T12:00:00Z",
//	  "status": {
//	    "options": {...},
//	    "items": [...],
//	    "columns": [0, 110],
//	    "recycling": true,
//	    "scroll_offset": 250,
//	    "placed": 6
//	  }
//	}
//
// # Import
//
// Use [ImportJSON] to read a snapshot from a file path, or [ReadJSON] to
// read from any io.Reader. Both validate the envelope structure and the
// format version; semantic validation against a live grid's configuration
// happens in [grid.Grid.SetStatus] on restore.
//
// # Export
//
// Use [ExportJSON] to write a snapshot to a file, or [WriteJSON] to write
// to any io.Writer. Exports are indented for readability and include every
// field needed for a lossless round trip.
//
// [grid.Status]: github.com/gridkit/infinigrid/pkg/grid.Status
// [grid.Grid.SetStatus]: github.com/gridkit/infinigrid/pkg/grid.Grid.SetStatus
package snapshotio
