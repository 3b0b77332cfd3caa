package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/aretw0/devlog"
	"github.com/aretw0/devlog/pkg/compose"
	"github.com/aretw0/devlog/pkg/search"
)

var (
	projects  = []string{"ecommerce-platform", "task-management-app", "blog-cms", "api-gateway", "real-time-chat-app"}
	templates = []string{"Bug", "Feature", "Learning", "Work", "Research"}
	topics    = []string{
		"Fixed memory leak in component lifecycle",
		"Resolved race condition in async operations",
		"Implemented user authentication system",
		"Added real-time notifications",
		"Studied database design patterns",
		"Working on CI/CD pipelines",
		"Working on Kubernetes deployment",
	}
	tags = []string{"go", "docker", "postgresql", "redis", "testing", "security", "performance", "api"}
)

func pick[T any](items []T) T {
	return items[rand.IntN(len(items))]
}

func main() {
	count := flag.Int("count", 1000, "Number of notes to generate")
	query := flag.String("query", "race condition", "Text to search for")
	keep := flag.Bool("keep", false, "Keep the benchmark notes after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "devlog_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	service, err := devlog.New(benchDir, devlog.WithLogger(logger))
	if err != nil {
		panic(err)
	}
	ctx := context.Background()

	fmt.Printf("Generating %d notes in %s...\n", *count, benchDir)
	startGen := time.Now()
	base := time.Now().AddDate(-2, 0, 0)
	for i := 0; i < *count; i++ {
		// Spread notes over two years; the index keeps identifiers unique.
		at := base.Add(time.Duration(rand.Int64N(int64(2 * 365 * 24 * time.Hour))))
		template := pick(templates)
		note := devlog.Note{
			ID:   compose.NewID(at, fmt.Sprintf("%s %d", template, i)),
			Body: pick(topics),
		}
		note.Header.Date = at.UTC().Format(compose.DateLayout)
		note.Header.Project = pick(projects)
		note.Header.Template = template
		note.Header.Tags = []string{pick(tags), pick(tags)}

		if err := service.SaveNote(ctx, note); err != nil {
			panic(err)
		}
	}
	fmt.Printf("Generation took: %v\n", time.Since(startGen))

	startList := time.Now()
	summaries, err := service.ListSummaries(ctx)
	if err != nil {
		panic(err)
	}
	listDuration := time.Since(startList)

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d notes):\n", *count)
	fmt.Printf("  List: %v (Items: %d)\n", listDuration, len(summaries))

	for _, limit := range []int{1, 8, 0} {
		engine := devlog.NewSearch(service, search.WithLogger(logger), search.WithConcurrency(limit))
		start := time.Now()
		ids, err := engine.Search(ctx, *query)
		if err != nil {
			panic(err)
		}
		label := fmt.Sprintf("%d", limit)
		if limit == 0 {
			label = "unbounded"
		}
		fmt.Printf("  Search (concurrency %s): %v (Matches: %d)\n", label, time.Since(start), len(ids))
	}
	fmt.Printf("--------------------------------------------------\n")
}
