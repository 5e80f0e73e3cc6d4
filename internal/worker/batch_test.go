package worker

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/ppiankov/pagelint/internal/model"
)

type mockAuditor struct {
	ShouldError bool
}

func (m *mockAuditor) AuditURL(ctx context.Context, url string) (*model.Report, error) {
	time.Sleep(10 * time.Millisecond)
	if m.ShouldError {
		return nil, errors.New("audit error")
	}
	return &model.Report{PageURL: url}, nil
}

func TestBatchProcessor_ProcessURLs(t *testing.T) {
	processor := NewBatchProcessor(&mockAuditor{}, 2, 0, 0)

	urls := []string{"http://example.com", "http://example.org", "http://example.net"}
	results := processor.ProcessURLs(context.Background(), urls)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.URL, res.Error)
			continue
		}
		if res.Report == nil {
			t.Errorf("expected report for %s", res.URL)
		} else if res.Report.PageURL != res.URL {
			t.Errorf("report URL mismatch: %s vs %s", res.Report.PageURL, res.URL)
		}
	}
}

func TestBatchProcessor_ProcessURLs_Error(t *testing.T) {
	processor := NewBatchProcessor(&mockAuditor{ShouldError: true}, 2, 0, 0)

	results := processor.ProcessURLs(context.Background(), []string{"http://example.com"})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Error == nil {
		t.Error("expected error, got nil")
	}
	if results[0].Report != nil {
		t.Error("expected nil report on error")
	}
}

func TestBatchProcessor_ProcessURLs_Empty(t *testing.T) {
	processor := NewBatchProcessor(&mockAuditor{}, 2, 0, 0)

	results := processor.ProcessURLs(context.Background(), []string{})
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestBatchProcessor_RateLimited(t *testing.T) {
	// 1000 rps keeps the test fast while still exercising the limiter path.
	processor := NewBatchProcessor(&mockAuditor{}, 2, 1000, 5)

	results := processor.ProcessURLs(context.Background(), []string{
		"http://example.com/a", "http://example.com/b",
	})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error: %v", res.Error)
		}
	}
}

func TestReadURLsFromFile(t *testing.T) {
	content := "http://example.com\n# comment\nhttps://example.org\n   \nhttp://example.com\nhttp://example.net   \n"

	tmpfile, err := os.CreateTemp(t.TempDir(), "urls")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	if _, err := tmpfile.WriteString(content); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	_ = tmpfile.Close()

	urls, err := ReadURLsFromFile(tmpfile.Name())
	if err != nil {
		t.Fatalf("ReadURLsFromFile: %v", err)
	}

	want := []string{"http://example.com", "https://example.org", "http://example.net"}
	if len(urls) != len(want) {
		t.Fatalf("expected %d URLs, got %d: %v", len(want), len(urls), urls)
	}
	for i, u := range want {
		if urls[i] != u {
			t.Errorf("urls[%d] = %q, want %q", i, urls[i], u)
		}
	}
}

func TestReadURLsFromFile_Missing(t *testing.T) {
	if _, err := ReadURLsFromFile("/nonexistent/urls.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}
