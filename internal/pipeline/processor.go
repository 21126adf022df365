package pipeline

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/AnyUserName/genkan/internal/asset"
	"github.com/AnyUserName/genkan/internal/diag"
	"github.com/AnyUserName/genkan/internal/qr"
)

// resolveAll resolves slots on a bounded pool. Results keep slot order.
func (p *Pipeline) resolveAll(ctx context.Context, slots []slot) []asset.Result {
	results := make([]asset.Result, len(slots))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, s := range slots {
		wg.Add(1)
		go func(idx int, s slot) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			if p.cfg.Verbose {
				fmt.Fprintf(os.Stderr, "[genkan] resolving: %s\n", s.Request.Subject)
			}
			results[idx] = p.resolver.Resolve(ctx, s.Request)
		}(i, s)
	}
	wg.Wait()
	return results
}

// generateQR returns the QR data URI for pageURL, or "" when none is
// configured or encoding fails.
func generateQR(pageURL *string, diags *diag.List) string {
	if pageURL == nil || *pageURL == "" {
		return ""
	}
	uri, err := qr.Generate(*pageURL)
	if err != nil {
		diags.Warn("meta.page_url", "QR code skipped", err)
		return ""
	}
	return uri
}
