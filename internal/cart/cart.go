// Package cart holds the shopping cart aggregate. A Cart is a value: every
// operation returns the next cart and leaves the receiver untouched, so a
// store can run read-modify-write cycles without sharing mutable state.
package cart

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/apperr"
)

// MaxLineQuantity caps the units of one product and size in a cart.
const MaxLineQuantity = 99

var (
	ErrInvalidQuantity = fmt.Errorf("%w: quantity must be between 1 and %d", apperr.ErrInvalid, MaxLineQuantity)
	ErrSizeRequired    = fmt.Errorf("%w: size is required", apperr.ErrInvalid)
	ErrProductRequired = fmt.Errorf("%w: product is required", apperr.ErrInvalid)
)

var newLineID = uuid.NewString

// ProductSnapshot is the product data copied into a cart line when it is
// added. Later catalog edits do not reach it.
type ProductSnapshot struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image,omitempty"`
}

type Line struct {
	ID       string          `json:"id"`
	Product  ProductSnapshot `json:"product"`
	Size     string          `json:"size"`
	Quantity int             `json:"quantity"`
}

func (l Line) Total() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Cart struct {
	Lines []Line `json:"lines"`
}

// ValidateLine checks the caller-supplied part of a line.
func ValidateLine(size string, quantity int) error {
	if quantity <= 0 || quantity > MaxLineQuantity {
		return ErrInvalidQuantity
	}
	if strings.TrimSpace(size) == "" {
		return ErrSizeRequired
	}
	return nil
}

// Add puts quantity units of product in the given size into the cart. A line
// with the same product and size has its quantity increased instead, as long
// as the merged quantity stays within MaxLineQuantity.
func (c Cart) Add(product ProductSnapshot, size string, quantity int) (Cart, error) {
	if product.ProductID == "" {
		return c, ErrProductRequired
	}
	if err := ValidateLine(size, quantity); err != nil {
		return c, err
	}
	size = strings.TrimSpace(size)

	lines := c.copyLines(1)
	for i := range lines {
		if lines[i].Product.ProductID == product.ProductID && lines[i].Size == size {
			if lines[i].Quantity > MaxLineQuantity-quantity {
				return c, ErrInvalidQuantity
			}
			lines[i].Quantity += quantity
			return Cart{Lines: lines}, nil
		}
	}
	lines = append(lines, Line{
		ID:       newLineID(),
		Product:  product,
		Size:     size,
		Quantity: quantity,
	})
	return Cart{Lines: lines}, nil
}

// UpdateQuantity sets the quantity of a line. A quantity of zero or less
// removes the line; an unknown line id changes nothing.
func (c Cart) UpdateQuantity(lineID string, quantity int) (Cart, error) {
	if quantity <= 0 {
		return c.Remove(lineID), nil
	}
	if quantity > MaxLineQuantity {
		return c, ErrInvalidQuantity
	}
	lines := c.copyLines(0)
	for i := range lines {
		if lines[i].ID == lineID {
			lines[i].Quantity = quantity
		}
	}
	return Cart{Lines: lines}, nil
}

// Without takes the given lines out of the cart by line id. A line whose
// quantity grew since the snapshot keeps the difference; lines added later
// are left alone.
func (c Cart) Without(ordered []Line) Cart {
	taken := make(map[string]int, len(ordered))
	for _, l := range ordered {
		taken[l.ID] += l.Quantity
	}
	lines := make([]Line, 0, len(c.Lines))
	for _, l := range c.Lines {
		if q, ok := taken[l.ID]; ok {
			l.Quantity -= q
			if l.Quantity <= 0 {
				continue
			}
		}
		lines = append(lines, l)
	}
	return Cart{Lines: lines}
}

func (c Cart) Remove(lineID string) Cart {
	lines := make([]Line, 0, len(c.Lines))
	for _, l := range c.Lines {
		if l.ID != lineID {
			lines = append(lines, l)
		}
	}
	return Cart{Lines: lines}
}

func (c Cart) Clear() Cart {
	return Cart{Lines: []Line{}}
}

func (c Cart) Line(lineID string) (Line, bool) {
	for _, l := range c.Lines {
		if l.ID == lineID {
			return l, true
		}
	}
	return Line{}, false
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// ItemCount is the number of units across all lines.
func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.Lines {
		sum = sum.Add(l.Total())
	}
	return sum
}

func (c Cart) copyLines(extra int) []Line {
	lines := make([]Line, len(c.Lines), len(c.Lines)+extra)
	copy(lines, c.Lines)
	return lines
}
