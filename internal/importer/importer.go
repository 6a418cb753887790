package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"russo-backend/internal/domain"
	"github.com/shopspring/decimal"
)

type ProductWriter interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
}

// CSVImporter reads catalog export rows and inserts products. Expected
// headers: name, description, price, category, subcategory, gender, stock,
// images (pipe-separated URLs).
type CSVImporter struct {
	reader       *csv.Reader
	products     ProductWriter
	assetBaseURL string
}

func New(r io.Reader, products ProductWriter, assetBaseURL string) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:       csvr,
		products:     products,
		assetBaseURL: strings.TrimRight(assetBaseURL, "/"),
	}
}

// Run parses CSV rows and inserts one product per row, returning the number
// imported.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return 0, errors.New("missing required header: name")
	}
	if _, ok := index["price"]; !ok {
		return 0, errors.New("missing required header: price")
	}

	imported := 0
	for row := 2; ; row++ {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", row, err)
		}

		p, err := i.parseRow(index, record)
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", row, err)
		}
		if p == nil {
			continue
		}
		if _, err := i.products.Create(ctx, *p); err != nil {
			return imported, fmt.Errorf("row %d: insert %q: %w", row, p.Name, err)
		}
		imported++
	}
	return imported, nil
}

func (i *CSVImporter) parseRow(index map[string]int, record []string) (*domain.Product, error) {
	field := func(name string) string {
		idx, ok := index[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	name := field("name")
	if name == "" {
		return nil, nil
	}

	price, err := decimal.NewFromString(field("price"))
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", field("price"), err)
	}

	stock := 0
	if raw := field("stock"); raw != "" {
		if stock, err = strconv.Atoi(raw); err != nil {
			return nil, fmt.Errorf("parse stock %q: %w", raw, err)
		}
	}

	var images []string
	for _, u := range strings.Split(field("images"), "|") {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if i.assetBaseURL != "" && !strings.HasPrefix(u, "http") {
			u = i.assetBaseURL + "/" + strings.TrimLeft(u, "/")
		}
		images = append(images, u)
	}

	return &domain.Product{
		Name:        name,
		Description: field("description"),
		Price:       price,
		Category:    field("category"),
		Subcategory: field("subcategory"),
		Gender:      field("gender"),
		Images:      images,
		Stock:       stock,
	}, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}
