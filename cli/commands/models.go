package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/petal-labs/albert-go/albert"
	"github.com/petal-labs/albert-go/core"
)

func (a *App) newModelsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List and inspect platform models",
	}

	var modelType string
	list := &cobra.Command{
		Use:   "list",
		Short: "List available models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(c *albert.Client) error {
				if a.jsonOutput && modelType == "" {
					res, err := c.ListModels(cmd.Context())
					if err != nil {
						return err
					}
					return a.printResult(res)
				}

				models, err := c.Models(cmd.Context())
				if err != nil {
					return err
				}
				data := models.Data
				if modelType != "" {
					data = models.ByType(core.ModelType(modelType))
				}
				if a.jsonOutput {
					return a.printJSON(data)
				}

				tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tTYPE\tOWNED BY")
				for _, m := range data {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", m.ID, m.Type, m.OwnedBy)
				}
				return tw.Flush()
			})
		},
	}
	list.Flags().StringVar(&modelType, "type", "", "only show models of this type (e.g. text-generation)")

	get := &cobra.Command{
		Use:   "get <model>",
		Short: "Show one model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(args[0]) == "" {
				return exitWithCode(ExitValidation, fmt.Errorf("model ID must not be empty"))
			}
			return a.withClient(func(c *albert.Client) error {
				res, err := c.GetModel(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return a.printResult(res)
			})
		},
	}

	ids := &cobra.Command{
		Use:   "ids",
		Short: "Print model identifiers, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(c *albert.Client) error {
				ids, err := c.ListModelIDs(cmd.Context())
				if err != nil {
					return err
				}
				if a.jsonOutput {
					return a.printJSON(ids)
				}
				for _, id := range ids {
					fmt.Fprintln(a.stdout, id)
				}
				return nil
			})
		},
	}

	cmd.AddCommand(list, get, ids)
	return cmd
}
