package commands

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/spf13/cobra"

	"github.com/petal-labs/albert-go/albert"
	"github.com/petal-labs/albert-go/core"
)

// uploadResult is the outcome of one document upload.
type uploadResult struct {
	Path  string `json:"path"`
	ID    any    `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
	err   error
}

// uploadDocuments uploads paths into a collection on a bounded worker pool.
// Results keep the order of paths.
func uploadDocuments(ctx context.Context, c *albert.Client, paths []string, collectionID int, extra core.Extras, workers int) ([]uploadResult, error) {
	if workers < 1 {
		workers = 1
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create upload pool: %w", err)
	}
	defer pool.Release()

	results := make([]uploadResult, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		results[i].Path = path
		wg.Add(1)
		task := func() {
			defer wg.Done()
			res, err := c.CreateDocument(ctx, path, collectionID, extra)
			results[i].err = err
			if err != nil {
				results[i].Error = err.Error()
				return
			}
			if id, ok := res.Field("id"); ok {
				results[i].ID = id
			}
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			results[i].err = err
			results[i].Error = err.Error()
		}
	}
	wg.Wait()

	errs := make([]error, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Path, r.err))
		}
	}
	return results, errors.Join(errs...)
}

func (a *App) newDocumentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "documents",
		Aliases: []string{"document", "docs"},
		Short:   "Manage documents in collections",
	}

	var (
		collection int
		workers    int
		extras     = newExtrasValue()
	)
	create := &cobra.Command{
		Use:   "create <pdf-file>...",
		Short: "Upload one or more PDF documents into a collection",
		Long: `Upload one or more PDF documents into a collection. Files are uploaded
concurrently on --workers workers; every file is attempted and failures are
reported together.

Example:
  albert documents create --collection 3 --set chunk_size=500 rapport.pdf annexe.pdf`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(c *albert.Client) error {
				results, err := uploadDocuments(cmd.Context(), c, args, collection, extras.Extras(), workers)
				if results == nil {
					return err
				}
				if a.jsonOutput {
					if perr := a.printJSON(results); perr != nil {
						return perr
					}
				} else {
					for _, r := range results {
						if r.err != nil {
							fmt.Fprintf(a.stdout, "%s\tfailed\t%s\n", r.Path, r.Error)
							continue
						}
						fmt.Fprintf(a.stdout, "%s\tdocument %v\n", r.Path, r.ID)
					}
				}
				return err
			})
		},
	}
	create.Flags().IntVar(&collection, "collection", 0, "target collection ID (required)")
	create.Flags().IntVar(&workers, "workers", 4, "number of concurrent uploads")
	create.Flags().Var(extras, "set", "extra form field, repeatable (e.g. --set chunk_size=500)")
	_ = create.MarkFlagRequired("collection")

	var (
		listCollection int
		page           albert.ListOptions
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := albert.DocumentListOptions{Limit: page.Limit, Offset: page.Offset}
			if cmd.Flags().Changed("collection") {
				opts.Collection = &listCollection
			}
			return a.withClient(func(c *albert.Client) error {
				res, err := c.ListDocuments(cmd.Context(), opts)
				if err != nil {
					return err
				}
				return a.printResult(res)
			})
		},
	}
	list.Flags().IntVar(&listCollection, "collection", 0, "only list documents of this collection")
	addPageFlags(list, &page)

	get := &cobra.Command{
		Use:   "get <document-id>",
		Short: "Show a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("document", args[0])
			if err != nil {
				return err
			}
			return a.withClient(func(c *albert.Client) error {
				res, err := c.GetDocument(cmd.Context(), id)
				if err != nil {
					return err
				}
				return a.printResult(res)
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete <document-id>",
		Short: "Delete a document and its chunks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("document", args[0])
			if err != nil {
				return err
			}
			return a.withClient(func(c *albert.Client) error {
				if err := c.DeleteDocument(cmd.Context(), id); err != nil {
					return err
				}
				a.printDone("Document %d deleted.", id)
				return nil
			})
		},
	}

	cmd.AddCommand(create, list, get, del)
	return cmd
}

func (a *App) newChunksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chunks",
		Short: "Inspect the chunks of a document",
	}

	var page albert.ListOptions
	list := &cobra.Command{
		Use:   "list <document-id>",
		Short: "List a document's chunks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("document", args[0])
			if err != nil {
				return err
			}
			return a.withClient(func(c *albert.Client) error {
				res, err := c.ListChunks(cmd.Context(), id, page)
				if err != nil {
					return err
				}
				return a.printResult(res)
			})
		},
	}
	addPageFlags(list, &page)

	get := &cobra.Command{
		Use:   "get <document-id> <chunk-id>",
		Short: "Show one chunk",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			docID, err := parseID("document", args[0])
			if err != nil {
				return err
			}
			chunkID, err := parseID("chunk", args[1])
			if err != nil {
				return err
			}
			return a.withClient(func(c *albert.Client) error {
				res, err := c.GetChunk(cmd.Context(), docID, chunkID)
				if err != nil {
					return err
				}
				return a.printResult(res)
			})
		},
	}

	cmd.AddCommand(list, get)
	return cmd
}
