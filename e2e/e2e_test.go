//go:build e2e

package e2e

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ytget/ytresolve"
)

func TestE2E_Resolve(t *testing.T) {
	if os.Getenv("YTRESOLVE_E2E") == "" {
		t.Skip("YTRESOLVE_E2E not set")
	}
	url := os.Getenv("YTRESOLVE_E2E_URL")
	if url == "" {
		url = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	res, err := ytresolve.New().Resolve(ctx, url)
	if err != nil {
		t.Fatalf("e2e resolve failed: %v", err)
	}
	if !strings.HasPrefix(res.URL, "https://") {
		t.Fatalf("expected https media url, got %q", res.URL)
	}
	if res.Title == nil || *res.Title == "" {
		t.Errorf("expected a title")
	}
}
