package itemimport

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport/models"
	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport/parser"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Extract recovers canonical items from every sheet of an Excel file.
func Extract(path string, opts Options) (*models.WorkbookData, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	return ExtractFile(f, filepath.Base(path), opts)
}

// ExtractReader recovers canonical items from a workbook stream.
func ExtractReader(r io.Reader, bookName string, opts Options) (*models.WorkbookData, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	return ExtractFile(f, bookName, opts)
}

// ExtractFile recovers canonical items from an open workbook.
// Sheets that cannot be read are logged and reported in SheetData.Error.
func ExtractFile(f *excelize.File, bookName string, opts Options) (*models.WorkbookData, error) {
	opts = opts.withDefaults()
	log := opts.logger().With(zap.String("book", bookName))

	wb := &models.WorkbookData{BookName: bookName}
	ordinal := 0

	for _, sheetName := range f.GetSheetList() {
		if !opts.includesSheet(sheetName) {
			continue
		}

		ws, err := parser.LoadWorksheet(f, sheetName)
		if err != nil {
			extErr := NewExtractionError(sheetName, "cells", err)
			log.Warn("skipping unreadable sheet", zap.Error(extErr))
			wb.Sheets = append(wb.Sheets, models.SheetData{Name: sheetName, Error: extErr.Error()})
			continue
		}

		if ws.RowCount() < opts.MinSheetRows {
			log.Debug("skipping short sheet", zap.String("sheet", sheetName), zap.Int("rows", ws.RowCount()))
			continue
		}

		sheet := ExtractSheet(ws, opts, &ordinal)
		log.Info("sheet extracted",
			zap.String("sheet", sheetName),
			zap.Int("header_row", sheet.HeaderRow),
			zap.Bool("header_found", sheet.HeaderFound),
			zap.Int("items", len(sheet.Items)),
			zap.Int("skipped", sheet.Skipped),
			zap.Bool("fallback", sheet.UsedFallback),
		)
		wb.Sheets = append(wb.Sheets, sheet)
	}

	return wb, nil
}

// ExtractSheet runs the header, assembly and canonicalization steps over
// one worksheet, falling back to positional reading when they yield
// nothing. ordinal numbers items across sheets and is advanced in place.
func ExtractSheet(ws *models.Worksheet, opts Options, ordinal *int) models.SheetData {
	opts = opts.withDefaults()

	header := parser.LocateHeader(ws, opts.Header)
	assembly := parser.AssembleItems(ws, header)

	sheet := models.SheetData{
		Name:        ws.Name,
		HeaderRow:   header.Row,
		HeaderFound: header.Found,
		Headers:     make(map[string]string, len(header.Labels)),
		Skipped:     assembly.Skipped,
	}
	for col, label := range header.Labels {
		sheet.Headers[strconv.Itoa(col)] = label
	}

	raws := assembly.Items
	if opts.ShouldUseFallback() && parser.ShouldFallback(ws, len(raws), opts.Fallback) {
		raws = parser.ReadPositional(ws, header.Row, opts.Fallback)
		sheet.UsedFallback = true
	}

	for _, raw := range raws {
		*ordinal++
		sheet.Items = append(sheet.Items, parser.Canonicalize(ws.Name, raw, *ordinal))
	}

	return sheet
}
