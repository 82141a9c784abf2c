package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AliArsal1512/clarifai-app/internal/astdoc"
)

func classesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classes <document>",
		Short: "List the class names a document can expand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := astdoc.Load(args[0])
			if err != nil {
				return err
			}
			names := astdoc.ClassNames(doc.Root)
			out := cmd.OutOrStdout()
			if len(names) == 0 {
				Subtle.Fprintln(out, "no classes")
				return nil
			}
			for _, name := range names {
				fmt.Fprintf(out, "  %s\n", Brand.Sprint(name))
			}
			Subtle.Fprintf(out, "\n%d classes, document %s\n", len(names), doc.ID)
			return nil
		},
	}
}
