package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sky-flux/recall/review"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

func cmdExport(e *env) *cli.Command {
	var format, output string

	return &cli.Command{
		Name:  "export",
		Usage: "Export all review records",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "Output format [json|yaml]",
				Value:       "json",
				Destination: &format,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "Write to file instead of stdout",
				Destination: &output,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			snap, err := e.scheduler.Export(ctx)
			if err != nil {
				return err
			}
			data, err := encodeSnapshot(snap, format)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = c.Root().Writer.Write(data)
				return err
			}
			if err := os.WriteFile(filepath.Clean(output), data, 0600); err != nil {
				return goerr.Wrap(err, "failed to write export", goerr.V("path", output))
			}
			return nil
		},
	}
}

func cmdImport(e *env) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Replace all review records with an exported snapshot (.json, .yaml or .yml)",
		ArgsUsage: "<file>",
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := requireArgs(c, 1, "<file>"); err != nil {
				return err
			}
			path := c.Args().First()
			data, err := os.ReadFile(filepath.Clean(path))
			if err != nil {
				return goerr.Wrap(err, "failed to read snapshot", goerr.V("path", path))
			}

			snap, err := decodeSnapshot(data, formatOf(path))
			if err != nil {
				return goerr.Wrap(err, "failed to parse snapshot", goerr.V("path", path))
			}
			return e.scheduler.Import(ctx, snap)
		},
	}
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

func encodeSnapshot(snap review.Snapshot, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return nil, goerr.Wrap(err, "failed to encode snapshot")
		}
		return append(data, '\n'), nil

	case "yaml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return nil, goerr.Wrap(err, "failed to encode snapshot")
		}
		if err := enc.Close(); err != nil {
			return nil, goerr.Wrap(err, "failed to encode snapshot")
		}
		return buf.Bytes(), nil

	default:
		return nil, goerr.New("invalid export format", goerr.V("format", format))
	}
}

func decodeSnapshot(data []byte, format string) (review.Snapshot, error) {
	var snap review.Snapshot
	var err error
	if format == "yaml" {
		err = yaml.Unmarshal(data, &snap)
	} else {
		err = json.Unmarshal(data, &snap)
	}
	return snap, err
}
