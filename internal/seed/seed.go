// Package seed fills an empty store with the default shop name, the
// standard categories and a handful of sample products. Running it again
// only adds what is missing.
package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/settings"
)

type Catalog interface {
	ListCategories(ctx context.Context) ([]catalog.Category, error)
	CreateCategory(ctx context.Context, name string) (catalog.Category, error)
	CountProducts(ctx context.Context) (int, error)
	CreateProduct(ctx context.Context, in catalog.ProductInput) (catalog.Product, error)
}

type Settings interface {
	Get(ctx context.Context, key, def string) (string, error)
	Set(ctx context.Context, key, value string) error
}

const DefaultShopName = "ThreadLine"

var Categories = []string{"Jackets", "Sweaters", "Trousers", "Shirts", "Dresses", "Jeans", "Boots"}

type sampleProduct struct {
	name        string
	description string
	price       string
	category    string
	sizes       []string
	imageIDs    []string
}

var sampleProducts = []sampleProduct{
	{"Leather Jacket", "A timeless black leather jacket, perfect for any occasion.", "149.99", "Jackets",
		[]string{"S", "M", "L", "XL"}, []string{"product-1-1", "product-1-2", "product-1-3"}},
	{"Wool Sweater", "A cozy cream-colored wool sweater to keep you warm.", "89.99", "Sweaters",
		[]string{"S", "M", "L"}, []string{"product-2-1", "product-2-2", "product-2-3"}},
	{"Denim Jacket", "A classic blue denim jacket for a stylish, casual look.", "119.99", "Jackets",
		[]string{"M", "L", "XL"}, []string{"product-3-1", "product-3-2"}},
	{"Linen Trousers", "Light and airy beige linen trousers for a comfortable day out.", "79.99", "Trousers",
		[]string{"S", "M", "L"}, []string{"product-4-1", "product-4-2"}},
	{"Crewneck Sweatshirt", "A comfortable and stylish heather grey crewneck sweatshirt.", "69.99", "Sweaters",
		[]string{"S", "M", "L", "XL"}, []string{"product-5-1", "product-5-2"}},
	{"Button-Down Shirt", "A crisp white button-down shirt, a wardrobe essential.", "59.99", "Shirts",
		[]string{"S", "M", "L", "XL"}, []string{"product-6-1", "product-6-2"}},
	{"Floral Sundress", "A beautiful floral sundress, perfect for sunny days.", "99.99", "Dresses",
		[]string{"S", "M", "L"}, []string{"product-7-1", "product-7-2"}},
	{"High-Waisted Jeans", "Classic high-waisted blue jeans for a flattering fit.", "89.99", "Jeans",
		[]string{"26", "28", "30", "32"}, []string{"product-8-1", "product-8-2"}},
	{"Leather Boots", "Stylish and durable brown leather boots.", "129.99", "Boots",
		[]string{"7", "8", "9", "10", "11"}, []string{"product-9-1", "product-9-2"}},
}

func placeholderImage(id string) string {
	return "https://picsum.photos/seed/" + id + "/600/800"
}

// Result counts what a run created.
type Result struct {
	ShopNameSet       bool
	CategoriesCreated int
	ProductsCreated   int
}

func Run(ctx context.Context, cat Catalog, set Settings, logger zerolog.Logger) (Result, error) {
	var res Result

	name, err := set.Get(ctx, settings.KeyShopName, "")
	if err != nil {
		return res, fmt.Errorf("read shop name: %w", err)
	}
	if name == "" {
		if err := set.Set(ctx, settings.KeyShopName, DefaultShopName); err != nil {
			return res, fmt.Errorf("set shop name: %w", err)
		}
		res.ShopNameSet = true
	}

	existing, err := cat.ListCategories(ctx)
	if err != nil {
		return res, fmt.Errorf("list categories: %w", err)
	}
	byName := make(map[string]catalog.Category, len(existing))
	for _, c := range existing {
		byName[strings.ToLower(c.Name)] = c
	}
	for _, n := range Categories {
		if _, ok := byName[strings.ToLower(n)]; ok {
			continue
		}
		c, err := cat.CreateCategory(ctx, n)
		if err != nil {
			return res, fmt.Errorf("create category %s: %w", n, err)
		}
		byName[strings.ToLower(n)] = c
		res.CategoriesCreated++
	}

	count, err := cat.CountProducts(ctx)
	if err != nil {
		return res, fmt.Errorf("count products: %w", err)
	}
	if count == 0 {
		for _, p := range sampleProducts {
			images := make([]string, 0, len(p.imageIDs))
			for _, id := range p.imageIDs {
				images = append(images, placeholderImage(id))
			}
			_, err := cat.CreateProduct(ctx, catalog.ProductInput{
				Name:        p.name,
				Description: p.description,
				Price:       decimal.RequireFromString(p.price),
				CategoryID:  byName[strings.ToLower(p.category)].ID,
				Sizes:       p.sizes,
				Images:      images,
			})
			if err != nil {
				return res, fmt.Errorf("create product %s: %w", p.name, err)
			}
			res.ProductsCreated++
		}
	}

	logger.Info().
		Bool("shop_name_set", res.ShopNameSet).
		Int("categories_created", res.CategoriesCreated).
		Int("products_created", res.ProductsCreated).
		Msg("seed finished")
	return res, nil
}
