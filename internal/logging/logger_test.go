package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/sky-flux/recall/internal/logging"
)

func TestLogger(t *testing.T) {
	t.Run("json masks secrets", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON, false)
		logger.Info("hello",
			slog.String("secret_key", "xxx"),
			slog.String("module_id", "01-calculus"),
		)

		gt.S(t, buf.String()).Contains("01-calculus").NotContains("xxx")
	})

	t.Run("console respects level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.New(&buf, slog.LevelWarn, logging.FormatConsole, false)
		logger.Info("hidden message")
		logger.Warn("visible message", logging.ErrAttr(goerr.New("boom", goerr.V("module_id", "m1"))))

		gt.S(t, buf.String()).Contains("visible message").NotContains("hidden message")
	})
}

func TestAutoFormat(t *testing.T) {
	var buf bytes.Buffer
	gt.Equal(t, logging.DetectFormat(&buf), logging.FormatJSON)

	logger := logging.New(&buf, slog.LevelInfo, logging.FormatAuto, false)
	logger.Info("piped", slog.String("module_id", "m1"))

	var entry map[string]any
	gt.NoError(t, json.Unmarshal(buf.Bytes(), &entry)).Required()
	gt.Equal(t, entry["msg"], any("piped"))
	gt.Equal(t, entry["module_id"], any("m1"))
	_, hasSource := entry["source"]
	gt.False(t, hasSource)
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelDebug, logging.FormatJSON, false)
	ctx := logging.With(context.Background(), logger)

	logging.From(ctx).Debug("from context")
	gt.S(t, buf.String()).Contains("from context")

	gt.V(t, logging.From(context.Background())).Equal(logging.Default())
}

func TestSetDefault(t *testing.T) {
	orig := logging.Default()
	defer logging.SetDefault(orig)

	var buf bytes.Buffer
	logging.SetDefault(logging.New(&buf, slog.LevelInfo, logging.FormatJSON, false))
	logging.Default().Info("replaced")
	gt.S(t, buf.String()).Contains("replaced")

	logging.Quiet()
	buf.Reset()
	logging.Default().Info("discarded")
	gt.V(t, buf.Len()).Equal(0)
}
