package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"blog-backend/internal/domains/article"
)

const exportSheet = "Articles"

var exportHeaders = []string{"ID", "Title", "Category", "Author", "Santa", "Tags", "Created At", "Updated At"}

func (s *articleService) ExportExcel(ctx context.Context) ([]byte, error) {
	articles, err := s.repo.ListForExport(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeArticlesSheet(f, articles); err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func writeArticlesSheet(f *excelize.File, articles []article.Article) error {
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		headers[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &headers); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastCell, err := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(exportSheet, "A1", lastCell, headerStyle); err != nil {
		return err
	}

	for i := range articles {
		a := &articles[i]

		santa := ""
		if a.Santa != nil {
			santa = a.Santa.UserName
		}

		values := []interface{}{
			a.ID,
			a.Title,
			a.CategoryName,
			a.Author.UserName,
			santa,
			a.TagString(),
			a.CreatedAt.Format("2006-01-02 15:04:05"),
			a.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return err
		}
	}

	return nil
}
