package service

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/repository"
	"finance-tracker/internal/storage"
)

const (
	historySheet = "History"
	xlsxMIME     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// HistoryExporter publishes a user's transaction history as a spreadsheet and
// returns a temporary download link.
type HistoryExporter interface {
	Export(ctx context.Context, userID int64) (string, error)
}

// ExportConfig locates exported workbooks.
type ExportConfig struct {
	Bucket    string
	KeyPrefix string
	LinkTTL   time.Duration
	Logger    *logrus.Logger
}

type historyExporter struct {
	store   repository.Store
	storage storage.Service
	cfg     ExportConfig
	logger  *logrus.Logger
}

func NewHistoryExporter(store repository.Store, objects storage.Service, cfg ExportConfig) HistoryExporter {
	if cfg.LinkTTL <= 0 {
		cfg.LinkTTL = 15 * time.Minute
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}
	return &historyExporter{
		store:   store,
		storage: objects,
		cfg:     cfg,
		logger:  logger,
	}
}

func (e *historyExporter) Export(ctx context.Context, userID int64) (string, error) {
	txs, err := e.store.Transactions().ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}

	workbook, err := BuildHistoryWorkbook(txs)
	if err != nil {
		return "", err
	}
	defer workbook.Close()

	buf, err := workbook.WriteToBuffer()
	if err != nil {
		return "", fmt.Errorf("write workbook: %w", err)
	}

	key := path.Join(strings.Trim(e.cfg.KeyPrefix, "/"), strconv.FormatInt(userID, 10),
		fmt.Sprintf("history-%s.xlsx", uuid.NewString()))
	location, err := e.storage.Upload(ctx, storage.Object{
		Bucket:      e.cfg.Bucket,
		Key:         key,
		ContentType: xlsxMIME,
		Body:        buf,
	})
	if err != nil {
		return "", err
	}
	e.logger.WithFields(logrus.Fields{"user_id": userID, "rows": len(txs)}).Infof("exported history to %s", location)

	return e.storage.GetObjectURL(ctx, e.cfg.Bucket, key, e.cfg.LinkTTL)
}

// BuildHistoryWorkbook lays out one row per transaction under a header row.
func BuildHistoryWorkbook(txs []domain.Transaction) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", historySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	header := []any{"Symbol", "Shares", "Price", "Transacted"}
	if err := f.SetSheetRow(historySheet, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, tx := range txs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []any{tx.Symbol, tx.Shares, tx.Price.StringFixed(2), tx.TransactedAt.Format("2006-01-02 15:04:05")}
		if err := f.SetSheetRow(historySheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return f, nil
}
