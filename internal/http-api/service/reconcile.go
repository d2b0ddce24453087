package service

import (
	"context"
	"math"

	"brickhub/internal/http-api/repository"
)

// reconcileQuantityChange keeps the minifigure ledger proportionally consistent
// with a set-quantity change. It must run inside the caller's transaction (the
// ledger argument is already transaction-bound), so a failure rolls back the
// collection change together with any partial ledger writes.
//
// Growing assumes the newly added copies are complete and accumulates
// quantity_per_set x added per figure. Shrinking scales every existing ledger
// row by new/old with round-to-nearest; shrinking to zero purges the rows. The
// rounding makes repeated grow/shrink cycles lossy. That is the intended
// policy: we scale the aggregate, we do not track which physical copy left.
func reconcileQuantityChange(ctx context.Context, catalog repository.CatalogRepository, ledger repository.MinifigLedgerRepository, userID, setNum string, oldQuantity, newQuantity int) error {
	if newQuantity == oldQuantity {
		return nil
	}

	figures, err := catalog.Composition(ctx, setNum)
	if err != nil {
		return err
	}
	if len(figures) == 0 {
		// No inventory data, nothing to reconcile
		return nil
	}

	if newQuantity > oldQuantity {
		added := newQuantity - oldQuantity
		for _, fig := range figures {
			if err := ledger.Accumulate(ctx, userID, setNum, fig.FigNum, fig.Quantity*added); err != nil {
				return err
			}
		}
		return nil
	}

	if newQuantity == 0 {
		return ledger.DeleteBySet(ctx, userID, setNum)
	}

	rows, err := ledger.ListBySet(ctx, userID, setNum)
	if err != nil {
		return err
	}
	for _, row := range rows {
		scaled := scaleOwned(row.QuantityOwned, oldQuantity, newQuantity)
		if scaled == row.QuantityOwned {
			continue
		}
		if scaled == 0 {
			if err := ledger.Delete(ctx, userID, setNum, row.FigNum); err != nil {
				return err
			}
			continue
		}
		if err := ledger.SetQuantity(ctx, userID, setNum, row.FigNum, scaled); err != nil {
			return err
		}
	}
	return nil
}

// scaleOwned multiplies an owned count by newQuantity/oldQuantity, rounding to
// the nearest integer.
func scaleOwned(owned, oldQuantity, newQuantity int) int {
	return int(math.Round(float64(owned) * float64(newQuantity) / float64(oldQuantity)))
}

// clamp bounds v into [0, max].
func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
