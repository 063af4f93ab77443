package cart

import (
	"sync"

	"github.com/Javohirbek070/toliq-shop-reimagined/internal/product"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/utils"
)

// Item is the catalog view the cart consumes when a product is added.
// Price is the amount the storefront displays for the product, so a
// discounted item enters the cart at its discounted price.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Image       string `json:"image"`
}

// ItemFromProduct builds the cart view of a catalog product, applying the
// displayed (discounted) price.
func ItemFromProduct(p *product.Product) Item {
	return Item{
		ID:          p.ID,
		Name:        p.Name,
		Description: utils.PtrString(p.Description),
		Price:       p.EffectivePrice(),
		Image:       utils.PtrString(p.Image),
	}
}

// Line is one catalog item's presence in the cart. Name, description, price
// and image are snapshots taken when the item was first added; later catalog
// changes do not touch an open cart.
type Line struct {
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Image       string `json:"image"`
	Quantity    int    `json:"quantity"`
}

// Subtotal is the snapshot price times quantity for this line.
func (l Line) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

// Cart holds the ordered cart lines for one storefront session. Lines keep
// insertion order for display. There is at most one line per product id:
// adding an already-present item increments its quantity instead.
//
// The cart is the single writer for its lines; readers always derive the
// total and item count fresh, never from a cached value.
type Cart struct {
	mu    sync.Mutex
	lines []*Line
}

func New() *Cart {
	return &Cart{}
}

// Add merges the item into the cart. An existing line keeps its original
// snapshot and only gains quantity; a new item is appended with quantity 1.
func (c *Cart) Add(item Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if line := c.find(item.ID); line != nil {
		line.Quantity++
		return
	}

	c.lines = append(c.lines, &Line{
		ProductID:   item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Image:       item.Image,
		Quantity:    1,
	})
}

// UpdateQuantity sets the line's quantity exactly. A target below 1 removes
// the line. Unknown product ids are a no-op.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity < 1 {
		c.Remove(productID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if line := c.find(productID); line != nil {
		line.Quantity = quantity
	}
}

// Remove deletes the line for the product if present; no-op otherwise.
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, line := range c.lines {
		if line.ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Total is the sum of snapshot price times quantity over all lines.
func (c *Cart) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int64
	for _, line := range c.lines {
		total += line.Subtotal()
	}
	return total
}

// ItemCount is the sum of all line quantities, used for the cart badge.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Clear empties the cart after a successful checkout or on request.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.lines) == 0
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, *line)
	}
	return out
}

// find expects c.mu to be held.
func (c *Cart) find(productID string) *Line {
	for _, line := range c.lines {
		if line.ProductID == productID {
			return line
		}
	}
	return nil
}
