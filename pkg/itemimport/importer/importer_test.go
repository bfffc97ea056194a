package importer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport"
	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport/catalog"
	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport/metrics"
	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// fakeCatalog is an in-memory catalog enforcing part number uniqueness.
type fakeCatalog struct {
	mu        sync.Mutex
	pingErr   error
	failParts map[string]error
	stockErr  error
	parts     map[string]catalog.PartRequest
	requests  []catalog.PartRequest
	movements []catalog.StockMovementRequest
	stockHits int
	nextID    int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		failParts: make(map[string]error),
		parts:     make(map[string]catalog.PartRequest),
	}
}

func (f *fakeCatalog) Ping(context.Context) error { return f.pingErr }

func (f *fakeCatalog) CreatePart(_ context.Context, part catalog.PartRequest) (*catalog.Part, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, part)
	if err := f.failParts[part.PartNo]; err != nil {
		return nil, err
	}
	if _, ok := f.parts[part.PartNo]; ok {
		return nil, &catalog.APIError{StatusCode: http.StatusBadRequest, Body: "Unique constraint failed on the fields: (`partNo`)"}
	}
	f.parts[part.PartNo] = part
	f.nextID++
	return &catalog.Part{ID: fmt.Sprintf("id-%d", f.nextID), PartNo: part.PartNo}, nil
}

func (f *fakeCatalog) CreateStockMovement(_ context.Context, mv catalog.StockMovementRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.stockHits++
	if f.stockErr != nil {
		return f.stockErr
	}
	f.movements = append(f.movements, mv)
	return nil
}

func ptr(v float64) *float64 { return &v }

func sampleItems() []models.CanonicalItem {
	return []models.CanonicalItem{
		{
			PartNo: "A-1", MasterPartNo: "A-1", Origin: "PRC", Grade: "a",
			Quantity: ptr(5),
			Models:   []models.ModelFitment{{Name: "140G", QtyUsed: 2}, {Name: "D6R", QtyUsed: 1}},
		},
		{PartNo: "A-2", MasterPartNo: "A-2"},
		{PartNo: "A-3", MasterPartNo: "A-3", Sheet: "Stock", Row: 9},
		{PartNo: "A-4", MasterPartNo: "A-4", Quantity: ptr(0)},
	}
}

func TestRunCountsOutcomes(t *testing.T) {
	api := newFakeCatalog()
	api.parts["A-2"] = catalog.PartRequest{PartNo: "A-2"}
	api.failParts["A-3"] = &catalog.APIError{StatusCode: http.StatusInternalServerError, Body: "boom"}

	reg := metrics.NewRegistry()
	im := New(api, nil, reg, DefaultOptions())

	outcome, err := im.Run(context.Background(), sampleItems())
	require.NoError(t, err)

	assert.NotEmpty(t, outcome.RunID)
	assert.Equal(t, 4, outcome.Processed)
	assert.Equal(t, 2, outcome.Succeeded)
	assert.Equal(t, 1, outcome.Duplicates)
	assert.Equal(t, 1, outcome.Failed)
	assert.Equal(t, outcome.Processed, outcome.Succeeded+outcome.Duplicates+outcome.Failed)
	assert.Equal(t, 2, outcome.ModelsImported)
	assert.Equal(t, 1, outcome.PartsWithModels)
	assert.Equal(t, []string{"Item 3 (A-3): 500 - boom"}, outcome.Errors)

	require.Len(t, outcome.Results, 4)
	assert.Equal(t, models.StatusDuplicate, outcome.Results[1].Status)
	assert.Equal(t, "id-1", outcome.Results[0].ID)

	// Only A-1 carries a positive quantity.
	assert.Equal(t, 1, outcome.StockMovements)
	require.Len(t, api.movements, 1)
	assert.Equal(t, catalog.StockMovementRequest{
		PartID:   "id-1",
		Type:     "in",
		Quantity: 5,
		Notes:    "Initial stock from import - Part: A-1",
	}, api.movements[0])

	assert.Equal(t, 2.0, testutil.ToFloat64(reg.PartsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.PartsDuplicate))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.PartsFailed))
	assert.Equal(t, 2.0, testutil.ToFloat64(reg.ModelsImported))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.StockMovements))
	assert.Positive(t, testutil.ToFloat64(reg.LastRunUnixTime))
}

func TestRunIsIdempotent(t *testing.T) {
	api := newFakeCatalog()
	im := New(api, nil, nil, DefaultOptions())
	items := sampleItems()

	first, err := im.Run(context.Background(), items)
	require.NoError(t, err)
	assert.Equal(t, len(items), first.Succeeded)

	second, err := im.Run(context.Background(), items)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Succeeded)
	assert.Equal(t, len(items), second.Duplicates)
	assert.Equal(t, 0, second.Failed)
	assert.Equal(t, 0, second.StockMovements)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestRunPausesBetweenBatches(t *testing.T) {
	api := newFakeCatalog()
	opts := DefaultOptions()
	opts.PauseEvery = 2
	opts.PauseFor = 3 * time.Second
	im := New(api, nil, nil, opts)

	var pauses []time.Duration
	var submittedAtPause []int
	im.sleep = func(_ context.Context, d time.Duration) error {
		pauses = append(pauses, d)
		submittedAtPause = append(submittedAtPause, len(api.requests))
		return nil
	}

	items := make([]models.CanonicalItem, 5)
	for i := range items {
		items[i] = models.CanonicalItem{PartNo: fmt.Sprintf("P-%d", i+1)}
	}

	outcome, err := im.Run(context.Background(), items)
	require.NoError(t, err)
	assert.Equal(t, 5, outcome.Succeeded)
	assert.Equal(t, []time.Duration{3 * time.Second, 3 * time.Second}, pauses)
	assert.Equal(t, []int{2, 4}, submittedAtPause)
}

func TestRunStopsWhenContextCancelledDuringPause(t *testing.T) {
	api := newFakeCatalog()
	opts := DefaultOptions()
	opts.PauseEvery = 1
	opts.PauseFor = time.Hour
	im := New(api, nil, nil, opts)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome, err := im.Run(ctx, []models.CanonicalItem{{PartNo: "P-1"}, {PartNo: "P-2"}})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, outcome)
	assert.Equal(t, 1, outcome.Processed)
}

func TestRunAbortsWhenCatalogUnreachable(t *testing.T) {
	api := newFakeCatalog()
	api.pingErr = fmt.Errorf("%w at http://localhost:3001/api: connection refused", catalog.ErrUnreachable)

	outcome, err := New(api, nil, nil, DefaultOptions()).Run(context.Background(), sampleItems())
	assert.ErrorIs(t, err, catalog.ErrUnreachable)
	assert.Nil(t, outcome)
	assert.Empty(t, api.requests)
}

func TestRunStockEndpointUnavailable(t *testing.T) {
	api := newFakeCatalog()
	api.stockErr = &catalog.APIError{StatusCode: http.StatusNotFound, Body: "Cannot POST /api/inventory/stock-movements"}

	items := []models.CanonicalItem{
		{PartNo: "S-1", Quantity: ptr(3)},
		{PartNo: "S-2", Quantity: ptr(4)},
	}
	outcome, err := New(api, nil, nil, DefaultOptions()).Run(context.Background(), items)
	require.NoError(t, err)

	assert.True(t, outcome.StockUnavailable)
	assert.Equal(t, 0, outcome.StockMovements)
	assert.Equal(t, 0, outcome.StockFailed)
	assert.Equal(t, 1, api.stockHits)
	assert.Equal(t, 2, outcome.Succeeded)
}

func TestRunStockFailuresAreCounted(t *testing.T) {
	api := newFakeCatalog()
	api.stockErr = &catalog.APIError{StatusCode: http.StatusBadRequest, Body: "invalid quantity"}

	items := []models.CanonicalItem{
		{PartNo: "S-1", Quantity: ptr(3)},
		{PartNo: "S-2", Quantity: ptr(4)},
	}
	outcome, err := New(api, nil, nil, DefaultOptions()).Run(context.Background(), items)
	require.NoError(t, err)

	assert.False(t, outcome.StockUnavailable)
	assert.Equal(t, 2, outcome.StockFailed)
	assert.Equal(t, 2, api.stockHits)
}

func TestRunSkipStock(t *testing.T) {
	api := newFakeCatalog()
	opts := DefaultOptions()
	opts.SkipStock = true

	outcome, err := New(api, nil, nil, opts).Run(context.Background(), []models.CanonicalItem{{PartNo: "S-1", Quantity: ptr(3)}})
	require.NoError(t, err)
	assert.Equal(t, 0, api.stockHits)
	assert.Equal(t, 0, outcome.StockMovements)
}

func TestRunTruncatesErrorMessages(t *testing.T) {
	api := newFakeCatalog()
	api.failParts["LONG-1"] = errors.New("connection reset by peer while writing request body")

	opts := DefaultOptions()
	opts.ErrorMessageLimit = 20
	outcome, err := New(api, nil, nil, opts).Run(context.Background(), []models.CanonicalItem{{PartNo: "LONG-1"}})
	require.NoError(t, err)

	require.Len(t, outcome.Errors, 1)
	assert.Equal(t, "Item 1 (LONG-1): con", outcome.Errors[0])
}

func TestImportWorkbookEndToEnd(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]interface{}{
		{"CTC Parts Stock List"},
		{"Printed from legacy system"},
		{"Part No", "SS Part No", "Origin", "Description", "Grade", "Models", "Cons.Qty"},
		{"TEST001", "TEST001A", "PRC", "Brake Pad", "A", "140G", "2"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(t.TempDir(), "stock.xlsx")
	require.NoError(t, f.SaveAs(path))

	wb, err := itemimport.Extract(path, itemimport.DefaultOptions())
	require.NoError(t, err)

	api := newFakeCatalog()
	outcome, err := New(api, nil, nil, DefaultOptions()).Run(context.Background(), wb.Items())
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Succeeded)

	require.Len(t, api.requests, 1)
	req := api.requests[0]
	assert.Equal(t, "TEST001", req.MasterPartNo)
	assert.Equal(t, "TEST001A", req.PartNo)
	assert.Equal(t, "china", req.Origin)
	assert.Equal(t, "A", req.Grade)
	assert.Equal(t, "Brake Pad", req.Description)
	assert.Equal(t, []models.ModelFitment{{Name: "140G", QtyUsed: 2}}, req.Models)
}
