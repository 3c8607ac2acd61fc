package orchestrator

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	contractx "github.com/storewise/recommender/agent/contract"
)

// FetchData loads the customer and the full catalog. The two reads are
// independent and issued concurrently.
func FetchData(ctx context.Context, st *GraphState, store contractx.DataStore) (*GraphState, error) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		customer, err := store.GetCustomerByID(gctx, st.CustomerID)
		if err != nil {
			return fmt.Errorf("fetch customer %s: %w", st.CustomerID, err)
		}
		st.Customer = customer
		return nil
	})

	g.Go(func() error {
		catalog, err := store.GetAllProducts(gctx)
		if err != nil {
			return fmt.Errorf("fetch catalog: %w", err)
		}
		st.Catalog = catalog
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(st.Catalog) == 0 {
		return nil, contractx.ErrNoProductData
	}
	return st, nil
}
