package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petal-labs/albert-go/albert"
	"github.com/petal-labs/albert-go/core"
)

// addPageFlags registers --limit and --offset on cmd.
func addPageFlags(cmd *cobra.Command, opts *albert.ListOptions) {
	cmd.Flags().IntVar(&opts.Limit, "limit", 10, "page size")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "number of items to skip")
}

func (a *App) newCollectionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collections",
		Aliases: []string{"collection"},
		Short:   "Manage document collections",
	}

	var description, visibility string
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(c *albert.Client) error {
				res, err := c.CreateCollection(cmd.Context(), args[0], description, visibility)
				if err != nil {
					return err
				}
				return a.printResult(res)
			})
		},
	}
	create.Flags().StringVar(&description, "description", "", "collection description")
	create.Flags().StringVar(&visibility, "visibility", albert.VisibilityPrivate, "private or public")

	var page albert.ListOptions
	list := &cobra.Command{
		Use:   "list",
		Short: "List collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(c *albert.Client) error {
				res, err := c.ListCollections(cmd.Context(), page)
				if err != nil {
					return err
				}
				return a.printResult(res)
			})
		},
	}
	addPageFlags(list, &page)

	get := &cobra.Command{
		Use:   "get <collection-id>",
		Short: "Show a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("collection", args[0])
			if err != nil {
				return err
			}
			return a.withClient(func(c *albert.Client) error {
				res, err := c.GetCollection(cmd.Context(), id)
				if err != nil {
					return err
				}
				return a.printResult(res)
			})
		},
	}

	var newName, newDescription, newVisibility string
	update := &cobra.Command{
		Use:   "update <collection-id>",
		Short: "Update a collection's name, description or visibility",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("collection", args[0])
			if err != nil {
				return err
			}
			fields := core.Extras{}
			if cmd.Flags().Changed("name") {
				fields["name"] = newName
			}
			if cmd.Flags().Changed("description") {
				fields["description"] = newDescription
			}
			if cmd.Flags().Changed("visibility") {
				fields["visibility"] = newVisibility
			}
			if len(fields) == 0 {
				return exitWithCode(ExitValidation, fmt.Errorf("nothing to update: pass --name, --description or --visibility"))
			}
			return a.withClient(func(c *albert.Client) error {
				if err := c.UpdateCollection(cmd.Context(), id, fields); err != nil {
					return err
				}
				a.printDone("Collection %d updated.", id)
				return nil
			})
		},
	}
	update.Flags().StringVar(&newName, "name", "", "new name")
	update.Flags().StringVar(&newDescription, "description", "", "new description")
	update.Flags().StringVar(&newVisibility, "visibility", "", "private or public")

	del := &cobra.Command{
		Use:   "delete <collection-id>",
		Short: "Delete a collection and its documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("collection", args[0])
			if err != nil {
				return err
			}
			return a.withClient(func(c *albert.Client) error {
				if err := c.DeleteCollection(cmd.Context(), id); err != nil {
					return err
				}
				a.printDone("Collection %d deleted.", id)
				return nil
			})
		},
	}

	cmd.AddCommand(create, list, get, update, del)
	return cmd
}
