package albert

import (
	"context"

	"github.com/petal-labs/albert-go/core"
	"github.com/petal-labs/albert-go/dispatch"
)

// UsageOptions paginates Usage.
type UsageOptions struct {
	// Limit defaults to 50 when zero.
	Limit int
	// Page is 1-based and defaults to 1 when zero.
	Page int
	// Extra holds further filters: order_by, order_direction, date_from, date_to.
	Extra core.Extras
}

// Usage returns one page of the account's usage records.
func (c *Client) Usage(ctx context.Context, opts UsageOptions) (*core.Result, error) {
	limit, page := opts.Limit, opts.Page
	if limit == 0 {
		limit = 50
	}
	if page == 0 {
		page = 1
	}
	q := withExtras(dispatch.Query{"limit": limit, "page": page}, opts.Extra)
	return c.d.Do(ctx, epUsage, dispatch.Call{Query: q})
}

// CreateToken creates an API token. user (admin only) and expiresAt (Unix
// seconds) are optional and left out when nil.
func (c *Client) CreateToken(ctx context.Context, name string, user *int, expiresAt *int64) (*core.Result, error) {
	body := core.NewPayload().
		Set("name", name).
		Set("user", user).
		Set("expires_at", expiresAt)
	return c.d.Do(ctx, epCreateToken, dispatch.Call{JSON: body})
}

// ListTokens returns one page of tokens. Extra holds order_by and
// order_direction.
func (c *Client) ListTokens(ctx context.Context, opts ListOptions, extra core.Extras) (*core.Result, error) {
	return c.d.Do(ctx, epListTokens, dispatch.Call{Query: withExtras(opts.query(), extra)})
}

// GetToken describes a token.
func (c *Client) GetToken(ctx context.Context, tokenID int) (*core.Result, error) {
	return c.d.Do(ctx, epGetToken, dispatch.Call{
		Path: dispatch.PathParams{paramToken: pathID(tokenID)},
	})
}

// DeleteToken revokes a token.
func (c *Client) DeleteToken(ctx context.Context, tokenID int) error {
	return c.doEmpty(ctx, epDeleteToken, dispatch.Call{
		Path: dispatch.PathParams{paramToken: pathID(tokenID)},
	})
}
