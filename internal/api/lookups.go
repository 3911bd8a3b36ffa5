package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/alexander-akhmetov/helpdesk/internal/draft"
)

// Choice is one selectable option of a form dropdown.
type Choice struct {
	ID   draft.ID
	Name string
}

func (c *Client) Categories(ctx context.Context) ([]Choice, error) {
	return c.choices(ctx, "/categories")
}

func (c *Client) Priorities(ctx context.Context) ([]Choice, error) {
	return c.choices(ctx, "/priorities")
}

// Pimpinan lists the unit heads a ticket can be addressed to.
func (c *Client) Pimpinan(ctx context.Context) ([]Choice, error) {
	return c.choices(ctx, "/users/pimpinan")
}

func (c *Client) choices(ctx context.Context, path string) ([]Choice, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	list := gjson.ParseBytes(body)
	if data := list.Get("data"); data.IsArray() {
		list = data
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("%s: expected a list", path)
	}
	var out []Choice
	list.ForEach(func(_, item gjson.Result) bool {
		name := firstString(item, "name", "nama", "label", "full_name")
		out = append(out, Choice{ID: draft.ID(item.Get("id").String()), Name: name})
		return true
	})
	return out, nil
}

// Lookups caches the dropdown options for one wizard session and resolves
// category names for the preview. It is not modified after loading.
type Lookups struct {
	Categories []Choice
	Priorities []Choice
	Pimpinan   []Choice
}

var _ draft.Catalog = (*Lookups)(nil)

// LoadLookups fetches all option lists concurrently.
func LoadLookups(ctx context.Context, c *Client) (*Lookups, error) {
	l := &Lookups{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		l.Categories, err = c.Categories(ctx)
		return err
	})
	g.Go(func() (err error) {
		l.Priorities, err = c.Priorities(ctx)
		return err
	})
	g.Go(func() (err error) {
		l.Pimpinan, err = c.Pimpinan(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load form options: %w", err)
	}
	return l, nil
}

func (l *Lookups) CategoryName(id draft.ID) (string, bool) {
	for _, c := range l.Categories {
		if c.ID == id {
			return c.Name, true
		}
	}
	return "", false
}
