package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/petal-labs/albert-go/albert"
)

func (a *App) newUsageCommand() *cobra.Command {
	var (
		opts   albert.UsageOptions
		extras = newExtrasValue()
	)

	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Show the account's usage records",
		Long: `Show the account's usage records, one page at a time.

Example:
  albert usage --limit 20 --set order_by=datetime --set order_direction=desc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Extra = extras.Extras()
			return a.withClient(func(c *albert.Client) error {
				res, err := c.Usage(cmd.Context(), opts)
				if err != nil {
					return err
				}
				return a.printResult(res)
			})
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 50, "page size")
	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number, starting at 1")
	cmd.Flags().Var(extras, "set", "extra query filter, repeatable (e.g. --set date_from=1735689600)")
	return cmd
}

func (a *App) newTokensCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tokens",
		Aliases: []string{"token"},
		Short:   "Manage platform API tokens",
	}

	var (
		user      int
		expiresIn time.Duration
	)
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an API token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var userPtr *int
			if cmd.Flags().Changed("user") {
				userPtr = &user
			}
			var expiresAt *int64
			if expiresIn > 0 {
				ts := time.Now().Add(expiresIn).Unix()
				expiresAt = &ts
			}
			return a.withClient(func(c *albert.Client) error {
				res, err := c.CreateToken(cmd.Context(), args[0], userPtr, expiresAt)
				if err != nil {
					return err
				}
				return a.printResult(res)
			})
		},
	}
	create.Flags().IntVar(&user, "user", 0, "create the token for this user (admin only)")
	create.Flags().DurationVar(&expiresIn, "expires-in", 0, "token lifetime (e.g. 720h); never expires when unset")

	var (
		page   albert.ListOptions
		extras = newExtrasValue()
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List API tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(c *albert.Client) error {
				res, err := c.ListTokens(cmd.Context(), page, extras.Extras())
				if err != nil {
					return err
				}
				return a.printResult(res)
			})
		},
	}
	addPageFlags(list, &page)
	list.Flags().Var(extras, "set", "extra query parameter, repeatable (e.g. --set order_direction=desc)")

	get := &cobra.Command{
		Use:   "get <token-id>",
		Short: "Show an API token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("token", args[0])
			if err != nil {
				return err
			}
			return a.withClient(func(c *albert.Client) error {
				res, err := c.GetToken(cmd.Context(), id)
				if err != nil {
					return err
				}
				return a.printResult(res)
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete <token-id>",
		Short: "Revoke an API token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("token", args[0])
			if err != nil {
				return err
			}
			return a.withClient(func(c *albert.Client) error {
				if err := c.DeleteToken(cmd.Context(), id); err != nil {
					return err
				}
				a.printDone("Token %d revoked.", id)
				return nil
			})
		},
	}

	cmd.AddCommand(create, list, get, del)
	return cmd
}

// endpointRow is the JSON form of one catalog entry.
type endpointRow struct {
	Name   string `json:"name"`
	Method string `json:"method"`
	Path   string `json:"path"`
	Body   string `json:"body"`
}

func (a *App) newEndpointsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "endpoints",
		Short: "List the platform operations this client knows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eps := albert.Endpoints()
			if a.jsonOutput {
				rows := make([]endpointRow, 0, len(eps))
				for _, ep := range eps {
					rows = append(rows, endpointRow{Name: ep.Name, Method: ep.Method, Path: ep.Path, Body: ep.Body.String()})
				}
				return a.printJSON(rows)
			}
			for _, ep := range eps {
				fmt.Fprintf(a.stdout, "%-22s %-6s %-40s %s\n", ep.Name, ep.Method, ep.Path, ep.Body)
			}
			return nil
		},
	}
}
