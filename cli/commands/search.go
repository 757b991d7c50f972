package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petal-labs/albert-go/albert"
	"github.com/petal-labs/albert-go/core"
)

func (a *App) newSearchCommand() *cobra.Command {
	var (
		collections []int
		extras      = newExtrasValue()
	)

	cmd := &cobra.Command{
		Use:   "search <prompt>",
		Short: "Search collections for the chunks most relevant to a prompt",
		Long: `Search collections for the chunks most relevant to a prompt.

Example:
  albert search "congés annuels" --collection 3 --collection 4 --set k=5 --set method=hybrid`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(c *albert.Client) error {
				res, err := c.Search(cmd.Context(), args[0], collections, extras.Extras())
				if err != nil {
					return err
				}
				return a.printResult(res)
			})
		},
	}

	cmd.Flags().IntSliceVar(&collections, "collection", nil, "collection ID to search, repeatable")
	cmd.Flags().Var(extras, "set", "extra body field, repeatable (e.g. --set k=5)")
	return cmd
}

func (a *App) newRerankCommand() *cobra.Command {
	var model string

	cmd := &cobra.Command{
		Use:   "rerank <prompt> <text>...",
		Short: "Score texts against a prompt",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(c *albert.Client) error {
				res, err := c.Rerank(cmd.Context(), args[0], args[1:], model)
				if err != nil {
					return err
				}
				if a.jsonOutput {
					return a.printResult(res)
				}

				var list core.RerankList
				if err := res.Decode(&list); err != nil {
					return err
				}
				texts := args[1:]
				for _, r := range list.Ranked() {
					text := ""
					if r.Index >= 0 && r.Index < len(texts) {
						text = texts[r.Index]
					}
					fmt.Fprintf(a.stdout, "%.4f\t%d\t%s\n", r.Score, r.Index, text)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "reranking model (required)")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}
