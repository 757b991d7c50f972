package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petal-labs/albert-go/albert"
	"github.com/petal-labs/albert-go/core"
)

func (a *App) newEmbedCommand() *cobra.Command {
	var (
		model  string
		extras = newExtrasValue()
	)

	cmd := &cobra.Command{
		Use:   "embed <text>...",
		Short: "Compute embeddings for one or more texts",
		Long: `Compute embeddings for one or more texts. Text output prints one
line per input with the vector dimension and its first values; use --json
for the full platform response.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modelID, err := a.embeddingModel(model)
			if err != nil {
				return err
			}

			return a.withClient(func(c *albert.Client) error {
				res, err := c.CreateEmbeddings(cmd.Context(), args, modelID, extras.Extras())
				if err != nil {
					return err
				}
				if a.jsonOutput {
					return a.printResult(res)
				}

				var list core.EmbeddingList
				if err := res.Decode(&list); err != nil {
					return err
				}
				for i, v := range list.Vectors() {
					fmt.Fprintf(a.stdout, "%d\tdim=%d\t%s\n", i, len(v), preview(v, 4))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "embedding model (default is the profile embedding_model)")
	cmd.Flags().Var(extras, "set", "extra body field, repeatable (e.g. --set encoding_format=float)")
	return cmd
}

func preview(v []float32, n int) string {
	if len(v) < n {
		n = len(v)
	}
	parts := make([]string, 0, n+1)
	for _, f := range v[:n] {
		parts = append(parts, fmt.Sprintf("%.4f", f))
	}
	if len(v) > n {
		parts = append(parts, "...")
	}
	return "[" + strings.Join(parts, " ") + "]"
}
