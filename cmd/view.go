package cmd

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/AliArsal1512/clarifai-app/internal/astdoc"
	"github.com/AliArsal1512/clarifai-app/internal/tui"
	"github.com/AliArsal1512/clarifai-app/internal/watch"
)

func viewCmd() *cobra.Command {
	var (
		mode    string
		theme   string
		watchIt bool
	)

	cmd := &cobra.Command{
		Use:   "view <document>",
		Short: "Open a document as an interactive diagram",
		Long: `Open an AST document (JSON or YAML) in the terminal.

Click or press enter on a node to expand or collapse it, click the * marker
to read its comment. Press ? for all keys.

  astview view shop.json
  astview view shop.yaml --mode full --theme dark
  astview view shop.json --watch   # reload when the file changes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			d, text, err := newDiagram(mode, theme)
			if err != nil {
				return err
			}

			model := tui.New(tui.Options{
				Config:  cfg,
				Diagram: d,
				Measure: text,
				Source:  path,
				Logger:  logger,
				Load:    func() (*astdoc.Document, error) { return astdoc.Load(path) },
			})
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

			if watchIt {
				ctx, cancel := context.WithCancel(cmd.Context())
				defer cancel()
				w, err := watch.New(path, func(doc *astdoc.Document, err error) {
					p.Send(tui.DocumentMsg{Doc: doc, Err: err})
				}, &watch.Options{Debounce: watch.DefaultOptions().Debounce, Logger: logger})
				if err != nil {
					return err
				}
				if err := w.Start(ctx); err != nil {
					return err
				}
				defer w.Stop()
				logger.Info("watching document", slog.String("path", w.Path()))
			}

			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "View mode: compressed or full")
	cmd.Flags().StringVar(&theme, "theme", "", "Theme: light or dark")
	cmd.Flags().BoolVarP(&watchIt, "watch", "w", false, "Reload the document when it changes")
	return cmd
}
