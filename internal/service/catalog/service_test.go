package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"testing"

	"storefront-api/internal/domain"
)

type stubCMS struct {
	data     string
	err      error
	lastVars map[string]interface{}
}

func (s *stubCMS) Query(_ context.Context, _ string, variables map[string]interface{}, out interface{}) error {
	s.lastVars = variables
	if s.err != nil {
		return s.err
	}
	return json.Unmarshal([]byte(s.data), out)
}

func testService(cms *stubCMS) *Service {
	return &Service{cms: cms, logger: log.New(io.Discard, "", 0)}
}

func TestProductsMapsNodesAndCursor(t *testing.T) {
	stub := &stubCMS{data: `{
		"products": {
			"pageInfo": {"endCursor": "YXJyYXk6MTI=", "hasNextPage": true},
			"nodes": [
				{"databaseId": 101, "slug": "mug", "name": "Mug", "sku": "MUG-1", "price": "9,50 €", "image": {"sourceUrl": "https://cdn.example.com/mug.jpg", "altText": "A mug"}},
				{"databaseId": 202, "slug": "plate", "name": "Plate", "price": "11.00"}
			]
		}
	}`}
	svc := testService(stub)

	page, err := svc.Products(context.Background(), 12, "prev-cursor")
	if err != nil {
		t.Fatalf("Products: %v", err)
	}
	if !page.HasNextPage || page.EndCursor != "YXJyYXk6MTI=" {
		t.Fatalf("cursor not passed through: %+v", page)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	if page.Items[0].PriceCents != 950 || page.Items[0].ImageURL == "" {
		t.Fatalf("unexpected first item %+v", page.Items[0])
	}
	if page.Items[1].PriceCents != 1100 {
		t.Fatalf("unexpected second item %+v", page.Items[1])
	}
	if stub.lastVars["after"] != "prev-cursor" {
		t.Fatalf("after cursor not forwarded: %+v", stub.lastVars)
	}
}

func TestProductsClampsPageSize(t *testing.T) {
	stub := &stubCMS{data: `{"products":{"pageInfo":{},"nodes":[]}}`}
	svc := testService(stub)

	if _, err := svc.Products(context.Background(), 0, ""); err != nil {
		t.Fatalf("Products: %v", err)
	}
	if stub.lastVars["first"] != defaultPageSize {
		t.Fatalf("expected default page size, got %v", stub.lastVars["first"])
	}

	if _, err := svc.Products(context.Background(), 500, ""); err != nil {
		t.Fatalf("Products: %v", err)
	}
	if stub.lastVars["first"] != maxPageSize {
		t.Fatalf("expected clamped page size, got %v", stub.lastVars["first"])
	}
}

func TestProductsUnparsablePriceDefaultsToZero(t *testing.T) {
	stub := &stubCMS{data: `{"products":{"pageInfo":{},"nodes":[{"databaseId":1,"slug":"odd","name":"Odd","price":"call us"}]}}`}
	svc := testService(stub)

	page, err := svc.Products(context.Background(), 12, "")
	if err != nil {
		t.Fatalf("Products: %v", err)
	}
	if page.Items[0].PriceCents != 0 {
		t.Fatalf("expected zero price fallback, got %d", page.Items[0].PriceCents)
	}
}

func TestProductBySlug(t *testing.T) {
	stub := &stubCMS{data: `{
		"product": {
			"databaseId": 101,
			"slug": "mug",
			"name": "Mug",
			"price": "9,50 €",
			"description": "<p>A fine mug.</p>",
			"galleryImages": {"nodes": [{"sourceUrl": "https://cdn.example.com/mug-2.jpg"}]}
		}
	}`}
	svc := testService(stub)

	detail, err := svc.ProductBySlug(context.Background(), "mug")
	if err != nil {
		t.Fatalf("ProductBySlug: %v", err)
	}
	if detail.PriceCents != 950 || detail.Description == "" || len(detail.GalleryImageURLs) != 1 {
		t.Fatalf("unexpected detail %+v", detail)
	}
}

func TestProductBySlugNotFound(t *testing.T) {
	stub := &stubCMS{data: `{"product": null}`}
	svc := testService(stub)
	_, err := svc.ProductBySlug(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProductBySlugCMSError(t *testing.T) {
	stub := &stubCMS{err: errors.New("cms down")}
	svc := testService(stub)
	if _, err := svc.ProductBySlug(context.Background(), "mug"); err == nil {
		t.Fatalf("expected error")
	}
}
