// Package devlog is the composition root of the devlog note keeper.
//
// It wires the domain service (pkg/core) to the filesystem store
// (pkg/adapters/fs) and exposes the search engine over it.
//
// A note is a Markdown file whose name carries its creation time and title,
// with a metadata block at the top:
//
//	---
//	date: 2024-01-02T03:04:05.123Z
//	project: demo
//	template: Bug
//	tags: [urgent, core]
//	---
//
//	stack overflow
//
// Usage:
//
//	svc, err := devlog.New("~/.devlog/logs", devlog.WithLogger(logger))
//
//	summaries, err := svc.ListSummaries(ctx)
//
//	ids, err := devlog.NewSearch(svc).Search(ctx, "overflow")
package devlog
