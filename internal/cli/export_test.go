package cli

import (
	"context"
	"io"
	"time"

	"github.com/sky-flux/recall"
)

// RunWithWriter exposes run for testing
func RunWithWriter(ctx context.Context, args []string, w io.Writer) error {
	return run(ctx, args, w)
}

// PrintRecordForTest exposes printRecord for testing
func PrintRecordForTest(w io.Writer, rec recall.ReviewRecord, now time.Time) {
	printRecord(w, rec, now)
}
