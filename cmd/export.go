package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AliArsal1512/clarifai-app/internal/astdoc"
	"github.com/AliArsal1512/clarifai-app/internal/tui"
)

func exportCmd() *cobra.Command {
	var (
		output string
		format string
		expand []string
		mode   string
		theme  string
	)

	cmd := &cobra.Command{
		Use:   "export <document>",
		Short: "Render a document to PNG or text",
		Long: `Lay out a document and write it as an image or as plain text.

The format comes from --format, or from the output extension.

  astview export shop.json                     # shop.png
  astview export shop.json -o tree.txt
  astview export shop.json --expand Cart --expand Item --theme dark`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			kind, err := exportFormat(format, output)
			if err != nil {
				return err
			}
			if output == "" {
				base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				if output, err = cfg.GetSavePath(base + "." + kind); err != nil {
					return err
				}
			}

			doc, err := astdoc.Load(path)
			if err != nil {
				return err
			}
			d, text, err := newDiagram(mode, theme)
			if err != nil {
				return err
			}
			d.Load(doc)
			for _, name := range expand {
				if d.ExpandClass(name) == nil {
					return fmt.Errorf("class %q not found", name)
				}
			}

			switch kind {
			case "png":
				err = tui.ExportPNG(output, d, text.NewFace(cfg.Layout.FontSize), cfg.Export.Margin)
			default:
				err = tui.ExportText(output, d, tui.DefaultCellSize)
			}
			if err != nil {
				return err
			}
			logger.Info("document exported",
				slog.String("document", path),
				slog.String("output", output),
				slog.Int("nodes", d.Frame().Len()))
			Good.Fprintf(cmd.OutOrStdout(), "exported %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: png or txt")
	cmd.Flags().StringArrayVarP(&expand, "expand", "e", nil, "Expand a class by name (repeatable)")
	cmd.Flags().StringVar(&mode, "mode", "", "View mode: compressed or full")
	cmd.Flags().StringVar(&theme, "theme", "", "Theme: light or dark")
	return cmd
}

// exportFormat resolves the format flag against the output extension.
func exportFormat(format, output string) (string, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(output)) {
		case ".txt", ".text":
			return "txt", nil
		default:
			return "png", nil
		}
	}
	switch strings.ToLower(format) {
	case "png":
		return "png", nil
	case "txt", "text":
		return "txt", nil
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
}
