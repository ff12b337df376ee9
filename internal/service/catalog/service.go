package catalog

import (
	"context"
	"errors"
	"log"
	"strings"

	"storefront-api/internal/cms"
	"storefront-api/internal/domain"
)

// Service proxies catalog reads to the CMS and normalizes the result for the
// storefront pages: display prices become integer cents, pagination cursors
// pass through untouched.
type Service struct {
	cms    cmsClient
	logger *log.Logger
}

type cmsClient interface {
	Query(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error
}

func New(client *cms.Client, logger *log.Logger) *Service {
	return &Service{cms: client, logger: logger}
}

const defaultPageSize = 12
const maxPageSize = 50

const productListQuery = `
query Products($first: Int!, $after: String) {
  products(first: $first, after: $after) {
    pageInfo {
      endCursor
      hasNextPage
    }
    nodes {
      databaseId
      slug
      name
      sku
      price
      image {
        sourceUrl
        altText
      }
    }
  }
}`

const productBySlugQuery = `
query Product($slug: ID!) {
  product(id: $slug, idType: SLUG) {
    databaseId
    slug
    name
    sku
    price
    description
    image {
      sourceUrl
      altText
    }
    galleryImages {
      nodes {
        sourceUrl
      }
    }
  }
}`

type productNode struct {
	DatabaseID  int64  `json:"databaseId"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	SKU         string `json:"sku"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Image       *struct {
		SourceURL string `json:"sourceUrl"`
		AltText   string `json:"altText"`
	} `json:"image"`
	GalleryImages *struct {
		Nodes []struct {
			SourceURL string `json:"sourceUrl"`
		} `json:"nodes"`
	} `json:"galleryImages"`
}

// Products returns one page of the product listing. first is clamped to
// [1, 50]; after is the opaque CMS cursor from the previous page.
func (s *Service) Products(ctx context.Context, first int, after string) (*domain.ProductPage, error) {
	if first < 1 {
		first = defaultPageSize
	}
	if first > maxPageSize {
		first = maxPageSize
	}

	variables := map[string]interface{}{"first": first}
	if after != "" {
		variables["after"] = after
	}

	var out struct {
		Products struct {
			PageInfo struct {
				EndCursor   string `json:"endCursor"`
				HasNextPage bool   `json:"hasNextPage"`
			} `json:"pageInfo"`
			Nodes []productNode `json:"nodes"`
		} `json:"products"`
	}
	if err := s.cms.Query(ctx, productListQuery, variables, &out); err != nil {
		return nil, err
	}

	page := &domain.ProductPage{
		Items:       make([]domain.ProductSummary, 0, len(out.Products.Nodes)),
		EndCursor:   out.Products.PageInfo.EndCursor,
		HasNextPage: out.Products.PageInfo.HasNextPage,
	}
	for _, node := range out.Products.Nodes {
		page.Items = append(page.Items, s.summaryFromNode(node))
	}
	return page, nil
}

// ProductBySlug returns one product, or domain.ErrNotFound when the CMS has
// no product for the slug.
func (s *Service) ProductBySlug(ctx context.Context, slug string) (*domain.ProductDetail, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, errors.New("slug required")
	}

	var out struct {
		Product *productNode `json:"product"`
	}
	if err := s.cms.Query(ctx, productBySlugQuery, map[string]interface{}{"slug": slug}, &out); err != nil {
		return nil, err
	}
	if out.Product == nil {
		return nil, domain.ErrNotFound
	}

	detail := &domain.ProductDetail{
		ProductSummary: s.summaryFromNode(*out.Product),
		Description:    out.Product.Description,
	}
	if out.Product.GalleryImages != nil {
		for _, img := range out.Product.GalleryImages.Nodes {
			if img.SourceURL != "" {
				detail.GalleryImageURLs = append(detail.GalleryImageURLs, img.SourceURL)
			}
		}
	}
	return detail, nil
}

func (s *Service) summaryFromNode(node productNode) domain.ProductSummary {
	summary := domain.ProductSummary{
		ID:   node.DatabaseID,
		Slug: node.Slug,
		Name: node.Name,
		SKU:  node.SKU,
	}
	if node.Image != nil {
		summary.ImageURL = node.Image.SourceURL
		summary.ImageAlt = node.Image.AltText
	}
	if node.Price != "" {
		cents, err := cms.ParsePriceCents(node.Price)
		if err != nil {
			s.logger.Printf("product %s: %v", node.Slug, err)
		} else {
			summary.PriceCents = cents
		}
	}
	return summary
}
