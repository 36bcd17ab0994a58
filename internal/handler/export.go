package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"taskify/internal/auth"
	"taskify/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler writes a board's cards as CSV or XLSX.
type ExportHandler struct {
	DB    *gorm.DB
	Authz *auth.Authorizer
}

func NewExportHandler(db *gorm.DB, authz *auth.Authorizer) *ExportHandler {
	return &ExportHandler{DB: db, Authz: authz}
}

var exportHeaders = []string{"List", "List Position", "Card Position", "Title", "Description", "Labels", "Created At"}

func exportRows(board *models.Board) [][]string {
	var rows [][]string
	for _, l := range board.Lists {
		for _, card := range l.Cards {
			names := make([]string, 0, len(card.Labels))
			for _, lb := range card.Labels {
				names = append(names, lb.Name)
			}
			rows = append(rows, []string{
				l.Title,
				fmt.Sprint(l.Position),
				fmt.Sprint(card.Position),
				card.Title,
				card.Description,
				strings.Join(names, ", "),
				card.CreatedAt.UTC().Format(time.RFC3339),
			})
		}
	}
	return rows
}

// ExportBoard answers ?format=csv (default) or ?format=xlsx.
func (h *ExportHandler) ExportBoard(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "boardId", "Board")
	if !ok {
		return
	}

	format := strings.ToLower(c.DefaultQuery("format", "csv"))
	if format != "csv" && format != "xlsx" {
		badRequest(c, "format must be csv or xlsx")
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Authz.Board(ctx, id, boardID); err != nil {
		ownershipError(c, err, "Board")
		return
	}

	var board models.Board
	if err := h.DB.WithContext(ctx).
		Preload("Lists", orderByPosition).
		Preload("Lists.Cards", orderByPosition).
		Preload("Lists.Cards.Labels", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		First(&board, boardID).Error; err != nil {
		serverError(c, err, "Failed to export board")
		return
	}

	rows := exportRows(&board)
	filename := fmt.Sprintf("board_%d_%s.%s", board.ID, time.Now().Format("20060102"), format)

	if format == "xlsx" {
		h.writeXLSX(c, filename, rows)
		return
	}
	h.writeCSV(c, filename, rows)
}

func (h *ExportHandler) writeCSV(c *gin.Context, filename string, rows [][]string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write(exportHeaders)
	_ = w.WriteAll(rows)
	if err := w.Error(); err != nil {
		_ = c.Error(err)
	}
}

const exportSheet = "Cards"

// setRow writes values into row (1-based) starting at column A.
func setRow(f *excelize.File, row int, values []string) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(exportSheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}

// buildWorkbook lays out the header and rows on the Cards sheet.
func buildWorkbook(rows [][]string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := setRow(f, 1, exportHeaders); err != nil {
		f.Close()
		return nil, err
	}
	for r, row := range rows {
		if err := setRow(f, r+2, row); err != nil {
			f.Close()
			return nil, err
		}
	}

	widths := []struct {
		col   string
		width float64
	}{{"A", 20}, {"D", 30}, {"E", 40}, {"F", 20}, {"G", 22}}
	for _, w := range widths {
		if err := f.SetColWidth(exportSheet, w.col, w.col, w.width); err != nil {
			f.Close()
			return nil, fmt.Errorf("set width of %s: %w", w.col, err)
		}
	}
	return f, nil
}

func (h *ExportHandler) writeXLSX(c *gin.Context, filename string, rows [][]string) {
	f, err := buildWorkbook(rows)
	if err != nil {
		serverError(c, err, "Failed to export board")
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}
