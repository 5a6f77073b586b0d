package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/versolabs/verso/internal/model"
)

// Expander runs one expansion request; satisfied by the orchestrator.
type Expander interface {
	Expand(ctx context.Context, req model.ExpandRequest) (*model.ExpansionResult, error)
}

// ExpandJob expands one article reference (id or URL).
type ExpandJob struct {
	Ref      string
	Expander Expander
}

// Execute runs the expansion for the job's reference.
func (j *ExpandJob) Execute(ctx context.Context) Result {
	req := model.DefaultExpandRequest()
	if strings.HasPrefix(j.Ref, "http://") || strings.HasPrefix(j.Ref, "https://") {
		req.ArticleURL = j.Ref
	} else {
		req.ArticleID = j.Ref
	}

	result, err := j.Expander.Expand(ctx, req)
	return &ExpandJobResult{Ref: j.Ref, Result: result, Error: err}
}

// ExpandJobResult is the outcome of one batch expansion.
type ExpandJobResult struct {
	Ref    string
	Result *model.ExpansionResult
	Error  error
}

// GetError returns the job error, if any.
func (r *ExpandJobResult) GetError() error {
	return r.Error
}

// BatchProcessor expands many article references concurrently.
type BatchProcessor struct {
	expander    Expander
	concurrency int
}

// NewBatchProcessor creates a batch processor with the given concurrency.
func NewBatchProcessor(expander Expander, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		expander:    expander,
		concurrency: concurrency,
	}
}

// ProcessRefs expands the given references concurrently.
func (b *BatchProcessor) ProcessRefs(ctx context.Context, refs []string) []*ExpandJobResult {
	if len(refs) == 0 {
		return []*ExpandJobResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, ref := range refs {
		pool.Submit(&ExpandJob{Ref: ref, Expander: b.expander})
	}

	results := pool.Wait()

	jobResults := make([]*ExpandJobResult, len(results))
	for i, result := range results {
		jobResults[i] = result.(*ExpandJobResult)
	}

	return jobResults
}

// ProcessFile reads references from a file (one per line) and expands them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*ExpandJobResult, error) {
	refs, err := ReadRefsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read refs: %w", err)
	}

	return b.ProcessRefs(ctx, refs), nil
}

// ReadRefsFromFile reads article references from a file, one per line,
// skipping blanks, comments, and duplicates.
func ReadRefsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var refs []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			refs = append(refs, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return refs, nil
}
