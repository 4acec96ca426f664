// Package feed produces and serves the card stream that the grid lays out.
//
// # Overview
//
// The feed is an unbounded, bidirectional sequence of pages. Each page is a
// batch of cards sharing one group key ("page-0", "page-1", ...), which is
// exactly the unit the grid evicts and restores atomically. Paging forward
// from the last visible group appends; paging backward from the first
// restores content that was evicted off the top.
//
// Three components cover the usual setups:
//
//   - Generator: deterministic in-process card source, used directly by the
//     demo and by the HTTP server. The same seed always yields the same
//     cards, so a page evicted from the window is reproduced bit-identical
//     when scrolled back to.
//   - Server: a small HTTP API over a Generator.
//   - Client: an HTTP consumer with response caching and retry, for demos
//     pointed at a remote feed.
package feed
