package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	applog "catalogd/internal/log"
	"catalogd/internal/repos"
)

// SyncService drives the periodic offer reconciliation. One instance
// per deployment; cycles never overlap.
type SyncService struct {
	Products *repos.ProductRepo
	Offers   *repos.OfferRepo
	Partner  OffersSource

	running atomic.Bool
}

func NewSyncService(products *repos.ProductRepo, offers *repos.OfferRepo, partner OffersSource) *SyncService {
	return &SyncService{Products: products, Offers: offers, Partner: partner}
}

// Run calls RunCycle on a fixed tick until ctx is cancelled. A tick
// that fires while the previous cycle is still going is skipped, not
// queued.
func (s *SyncService) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_ = s.RunCycle(ctx)
		}
	}
}

// RunCycle reconciles every product against the partner snapshot. A
// failure for one product is logged and does not stop the others; only
// a failure to list products aborts the cycle, and the next tick
// retries from scratch.
func (s *SyncService) RunCycle(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		applog.Warn(nil, "sync.cycle.skip", nil)
		return nil
	}
	defer s.running.Store(false)

	cycleID := uuid.NewString()
	ids, err := s.Products.ListIDs()
	if err != nil {
		applog.Error(nil, "sync.cycle.abort", err, map[string]any{"cycle_id": cycleID})
		return err
	}

	applog.Info(nil, "sync.cycle.start", map[string]any{"cycle_id": cycleID, "products": len(ids)})
	failed := 0
	for _, id := range ids {
		if err := s.syncProduct(ctx, id); err != nil {
			failed++
			applog.Error(nil, "sync.product.fail", err, map[string]any{"cycle_id": cycleID, "product_id": id})
		}
	}
	applog.Info(nil, "sync.cycle.done", map[string]any{"cycle_id": cycleID, "failed": failed})
	return nil
}

// syncProduct runs one product through the cycle: fetch, upsert, drop
// obsolete offers, then diff the snapshot against the re-read store and
// append the novel prices. Each store call commits on its own; the
// steps are individually idempotent, so a crash mid-product heals on
// the next tick.
func (s *SyncService) syncProduct(ctx context.Context, productID int64) error {
	fresh, err := s.Partner.FetchOffers(ctx, productID)
	if err != nil {
		return err
	}

	if err := s.Offers.Upsert(productID, fresh); err != nil {
		return err
	}

	foreignIDs := make([]int64, 0, len(fresh))
	for _, f := range fresh {
		foreignIDs = append(foreignIDs, f.ForeignID)
	}
	if err := s.Offers.DeleteNotIn(productID, foreignIDs); err != nil {
		return err
	}

	// The diff must see the upserted set, otherwise every fresh offer
	// reads as an orphan.
	stored, err := s.Offers.StoredForDiff(productID)
	if err != nil {
		return err
	}

	inserts, orphans := Diff(fresh, stored)
	for _, fid := range orphans {
		applog.Warn(nil, "sync.offer.orphan", map[string]any{"product_id": productID, "foreign_id": fid})
	}
	return s.Offers.InsertPrices(inserts, time.Now().UTC().Format(time.RFC3339))
}
