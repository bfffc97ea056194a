// Package importer submits canonical items to the catalog service and
// accumulates the run outcome.
package importer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport/catalog"
	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport/metrics"
	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport/models"
	"go.uber.org/zap"
)

// CatalogAPI is the subset of the catalog service the importer uses.
type CatalogAPI interface {
	Ping(ctx context.Context) error
	CreatePart(ctx context.Context, part catalog.PartRequest) (*catalog.Part, error)
	CreateStockMovement(ctx context.Context, mv catalog.StockMovementRequest) error
}

// Options configures an import run.
type Options struct {
	// PauseEvery inserts a pause after this many submissions. 0 disables it.
	PauseEvery int
	// PauseFor is the length of each pause.
	PauseFor time.Duration
	// ErrorMessageLimit bounds the length of stored error messages.
	ErrorMessageLimit int
	// SkipStock disables stock movements.
	SkipStock bool
}

// DefaultOptions returns default run options.
func DefaultOptions() Options {
	return Options{
		PauseEvery:        200,
		PauseFor:          500 * time.Millisecond,
		ErrorMessageLimit: 200,
	}
}

// Importer submits items to the catalog one at a time.
type Importer struct {
	catalog CatalogAPI
	logger  *zap.Logger
	metrics *metrics.Registry
	opts    Options
	sleep   func(ctx context.Context, d time.Duration) error
}

// New creates an Importer. A nil logger or registry is replaced by a
// no-op logger or a private registry.
func New(api CatalogAPI, logger *zap.Logger, reg *metrics.Registry, opts Options) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	if opts.ErrorMessageLimit <= 0 {
		opts.ErrorMessageLimit = DefaultOptions().ErrorMessageLimit
	}
	return &Importer{
		catalog: api,
		logger:  logger,
		metrics: reg,
		opts:    opts,
		sleep:   sleepContext,
	}
}

// pendingStock is a created part waiting for its opening stock movement.
type pendingStock struct {
	partID   string
	partNo   string
	quantity float64
}

// Run checks the catalog is reachable, submits every item serially and
// then records opening stock for created items. Only an unreachable
// catalog or a cancelled context returns an error; per-item failures are
// collected in the outcome.
func (im *Importer) Run(ctx context.Context, items []models.CanonicalItem) (*models.ImportOutcome, error) {
	outcome := &models.ImportOutcome{RunID: uuid.NewString()}
	log := im.logger.With(zap.String("run_id", outcome.RunID))

	if err := im.catalog.Ping(ctx); err != nil {
		log.Error("catalog reachability check failed", zap.Error(err))
		return nil, err
	}
	log.Info("import started", zap.Int("items", len(items)))

	var stock []pendingStock
	for i, item := range items {
		if i > 0 && im.opts.PauseEvery > 0 && i%im.opts.PauseEvery == 0 {
			log.Debug("pausing", zap.Int("submitted", i), zap.Duration("pause", im.opts.PauseFor))
			if err := im.sleep(ctx, im.opts.PauseFor); err != nil {
				return outcome, err
			}
		}

		res, part := im.submit(ctx, i+1, item, log)
		outcome.Record(res)

		if res.Status != models.StatusCreated {
			continue
		}
		if n := len(part.Models); n > 0 {
			outcome.ModelsImported += n
			outcome.PartsWithModels++
			im.metrics.ModelsImported.Add(float64(n))
		}
		if item.Quantity != nil && *item.Quantity > 0 && res.ID != "" {
			stock = append(stock, pendingStock{partID: res.ID, partNo: part.PartNo, quantity: *item.Quantity})
		}
	}

	if !im.opts.SkipStock {
		im.recordStock(ctx, stock, outcome, log)
	}

	im.metrics.LastRunUnixTime.SetToCurrentTime()
	log.Info("import finished",
		zap.Int("succeeded", outcome.Succeeded),
		zap.Int("duplicates", outcome.Duplicates),
		zap.Int("failed", outcome.Failed),
		zap.Int("models_imported", outcome.ModelsImported),
		zap.Int("stock_movements", outcome.StockMovements),
	)
	return outcome, nil
}

// submit creates one part and classifies the response.
func (im *Importer) submit(ctx context.Context, index int, item models.CanonicalItem, log *zap.Logger) (models.ItemResult, catalog.PartRequest) {
	req := BuildPartRequest(item)
	res := models.ItemResult{Index: index, PartNo: req.PartNo}

	created, err := im.catalog.CreatePart(ctx, req)
	switch {
	case err == nil:
		res.Status = models.StatusCreated
		if created != nil {
			res.ID = created.ID
		}
		im.metrics.PartsCreated.Inc()

	case catalog.IsDuplicate(err):
		res.Status = models.StatusDuplicate
		res.Message = im.truncate(err.Error())
		im.metrics.PartsDuplicate.Inc()
		log.Debug("duplicate part", zap.Int("item", index), zap.String("part_no", req.PartNo))

	default:
		res.Status = models.StatusError
		res.Message = im.truncate(fmt.Sprintf("Item %d (%s): %v", index, req.PartNo, err))
		im.metrics.PartsFailed.Inc()
		log.Warn("part creation failed",
			zap.Int("item", index),
			zap.String("part_no", req.PartNo),
			zap.String("sheet", item.Sheet),
			zap.Int("row", item.Row),
			zap.Error(err),
		)
	}
	return res, req
}

// recordStock posts opening stock movements. If the first attempt shows
// the endpoint is missing, the remaining movements are skipped.
func (im *Importer) recordStock(ctx context.Context, stock []pendingStock, outcome *models.ImportOutcome, log *zap.Logger) {
	for i, s := range stock {
		err := im.catalog.CreateStockMovement(ctx, catalog.StockMovementRequest{
			PartID:   s.partID,
			Type:     "in",
			Quantity: s.quantity,
			Notes:    "Initial stock from import - Part: " + s.partNo,
		})
		if err == nil {
			outcome.StockMovements++
			im.metrics.StockMovements.Inc()
			continue
		}

		if i == 0 && stockUnavailable(err) {
			outcome.StockUnavailable = true
			log.Warn("stock movement endpoint unavailable, skipping opening stock",
				zap.Int("pending", len(stock)),
				zap.Error(err),
			)
			return
		}
		outcome.StockFailed++
		im.metrics.StockFailed.Inc()
		log.Warn("stock movement failed", zap.String("part_no", s.partNo), zap.Error(err))
	}
}

// stockUnavailable reports whether a stock movement error means the
// endpoint itself is missing or unreachable.
func stockUnavailable(err error) bool {
	var apiErr *catalog.APIError
	if !errors.As(err, &apiErr) {
		return true
	}
	switch apiErr.StatusCode {
	case http.StatusNotFound, http.StatusMethodNotAllowed, http.StatusNotImplemented:
		return true
	}
	return false
}

// truncate bounds a message to the configured length.
func (im *Importer) truncate(msg string) string {
	limit := im.opts.ErrorMessageLimit
	if len(msg) <= limit {
		return msg
	}
	if r := []rune(msg); len(r) > limit {
		return string(r[:limit])
	}
	return msg
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
