package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/selimv/vitrine/internal/models"
	"github.com/selimv/vitrine/internal/view"
)

// List browses the catalog: optional search query and category filter, then
// a paginated view. With no query the catalog is shown in a shuffled order,
// so the first page is not always the same products.
func (a *App) List(ctx context.Context) error {
	products, err := a.products.GetAll(ctx)
	if err != nil {
		return err
	}

	query, err := GetSimpleText(a.reader, "Search (empty for all)", os.Stdout)
	if err != nil {
		return err
	}
	category, err := GetSimpleText(a.reader, "Category (empty for all)", os.Stdout)
	if err != nil {
		return err
	}

	var filters view.Filters
	if category != "" {
		filters.Categories = []string{category}
	}

	if query == "" {
		products = view.Shuffle(products)
	}
	matched := view.Filter(products, query, filters)
	if len(matched) == 0 {
		fmt.Println("No products found.")
		return nil
	}

	return a.browse(matched)
}

// Mine lists the products sold by the logged-in user.
func (a *App) Mine(ctx context.Context) error {
	session := a.session.Current()
	if session == nil {
		return nil
	}

	products, err := a.products.GetAll(ctx)
	if err != nil {
		return err
	}

	var mine []models.Product
	for _, p := range products {
		if p.Vendor == session.User.Name {
			mine = append(mine, p)
		}
	}
	if len(mine) == 0 {
		fmt.Println("You have no products yet.")
		return nil
	}

	return a.browse(mine)
}

// browse pages through products with a simple n/p/<number>/q pager.
func (a *App) browse(products []models.Product) error {
	pageSize := a.config.PageSize
	totalPages := view.TotalPages(len(products), pageSize)
	page := 1

	for {
		for _, p := range view.Page(products, page, pageSize) {
			fmt.Printf("  [%s] %-30s %8.2f  stock:%-4d %s / %s\n",
				p.ID, p.Name, p.Price, p.Stock, p.Category, p.Vendor)
		}
		fmt.Printf("Page %s (%d products)\n", pageStrip(totalPages, page), len(products))
		if totalPages <= 1 {
			return nil
		}

		answer, err := GetSimpleText(a.reader, "n(ext) / p(rev) / page number / q(uit)", os.Stdout)
		if err != nil {
			return err
		}
		switch answer {
		case "n":
			if page < totalPages {
				page++
			}
		case "p":
			if page > 1 {
				page--
			}
		case "q", "":
			return nil
		default:
			if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= totalPages {
				page = n
			}
		}
	}
}

// pageStrip renders the pagination range, e.g. "1 … [5] … 10".
func pageStrip(totalPages, current int) string {
	parts := make([]string, 0, totalPages)
	for _, p := range view.PageRange(totalPages, 1, current) {
		switch {
		case p == view.Dots:
			parts = append(parts, "…")
		case p == current:
			parts = append(parts, fmt.Sprintf("[%d]", p))
		default:
			parts = append(parts, strconv.Itoa(p))
		}
	}
	return strings.Join(parts, " ")
}

// Show prints one product in full.
func (a *App) Show(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Product id", os.Stdout)
	if err != nil {
		return err
	}

	product, err := a.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		fmt.Println("Product not found.")
		return nil
	}

	printProduct(product)
	return nil
}

// Add prompts for product fields and creates the product under the current
// user's vendor name.
func (a *App) Add(ctx context.Context) error {
	session := a.session.Current()
	if session == nil {
		return nil
	}

	var draft models.ProductDraft
	var err error
	if draft.Name, err = GetSimpleText(a.reader, "Name", os.Stdout); err != nil {
		return err
	}
	if draft.Description, err = GetSimpleText(a.reader, "Description", os.Stdout); err != nil {
		return err
	}
	if draft.Price, err = GetFloat(a.reader, "Price", os.Stdout); err != nil {
		return err
	}
	if draft.Stock, err = GetInt(a.reader, "Stock", os.Stdout); err != nil {
		return err
	}
	if draft.Category, err = GetSimpleText(a.reader, "Category", os.Stdout); err != nil {
		return err
	}
	if draft.Image, err = GetSimpleText(a.reader, "Image URL", os.Stdout); err != nil {
		return err
	}
	draft.Vendor = session.User.Name

	product, err := a.products.Add(ctx, draft)
	if err != nil {
		return err
	}

	fmt.Printf("Added product %s.\n", product.ID)
	return nil
}

// Update edits selected fields of a product; empty answers keep the current
// value.
func (a *App) Update(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Product id", os.Stdout)
	if err != nil {
		return err
	}

	var patch models.ProductPatch
	if name, ok, err := GetOptionalText(a.reader, "Name", os.Stdout); err != nil {
		return err
	} else if ok {
		patch.Name = &name
	}
	if desc, ok, err := GetOptionalText(a.reader, "Description", os.Stdout); err != nil {
		return err
	} else if ok {
		patch.Description = &desc
	}
	if s, ok, err := GetOptionalText(a.reader, "Price", os.Stdout); err != nil {
		return err
	} else if ok {
		price, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		patch.Price = &price
	}
	if s, ok, err := GetOptionalText(a.reader, "Stock", os.Stdout); err != nil {
		return err
	} else if ok {
		stock, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		patch.Stock = &stock
	}
	if category, ok, err := GetOptionalText(a.reader, "Category", os.Stdout); err != nil {
		return err
	} else if ok {
		patch.Category = &category
	}
	if image, ok, err := GetOptionalText(a.reader, "Image URL", os.Stdout); err != nil {
		return err
	} else if ok {
		patch.Image = &image
	}

	product, err := a.products.Update(ctx, id, patch)
	if err != nil {
		return err
	}

	fmt.Printf("Updated product %s.\n", product.ID)
	return nil
}

// Delete removes a product by id after confirmation.
func (a *App) Delete(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Product id", os.Stdout)
	if err != nil {
		return err
	}

	answer, err := GetSimpleText(a.reader, fmt.Sprintf("Delete product %s? (y/n)", id), os.Stdout)
	if err != nil {
		return err
	}
	if answer != "y" {
		fmt.Println("Aborted.")
		return nil
	}

	if err := a.products.Delete(ctx, id); err != nil {
		return err
	}

	fmt.Println("Deleted.")
	return nil
}

func printProduct(p *models.Product) {
	fmt.Printf("ID:          %s\n", p.ID)
	fmt.Printf("Name:        %s\n", p.Name)
	fmt.Printf("Description: %s\n", p.Description)
	fmt.Printf("Price:       %.2f\n", p.Price)
	fmt.Printf("Stock:       %d\n", p.Stock)
	fmt.Printf("Category:    %s\n", p.Category)
	fmt.Printf("Vendor:      %s\n", p.Vendor)
	fmt.Printf("Image:       %s\n", p.Image)
}
