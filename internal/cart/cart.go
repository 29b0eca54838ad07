// Package cart holds shopper carts. Lines are keyed by product, size and color.
package cart

import (
	"errors"
	"time"
)

var (
	ErrInsufficientStock = errors.New("not enough stock for this item")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrLineNotFound      = errors.New("item is not in the cart")
)

// Key identifies a cart line. An empty Size or Color is a value of its own.
type Key struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// Line is a product variant and quantity held in the cart
type Line struct {
	Key
	Quantity int `json:"quantity"`
}

// Cart is the shopper's current selection
type Cart struct {
	ID        string    `json:"id"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// New returns an empty cart with the given id
func New(id string) *Cart {
	return &Cart{ID: id, Lines: []Line{}}
}

func (c *Cart) index(key Key) int {
	for i, l := range c.Lines {
		if l.Key == key {
			return i
		}
	}
	return -1
}

// Quantity returns how many of key are in the cart
func (c *Cart) Quantity(key Key) int {
	if i := c.index(key); i >= 0 {
		return c.Lines[i].Quantity
	}
	return 0
}

// Add puts qty more of key in the cart, never beyond stock when stock is tracked.
// It returns how many were actually added. Adding a key already present grows
// that line instead of creating a second one.
func (c *Cart) Add(key Key, qty int, stock *int) (int, error) {
	if qty <= 0 {
		return 0, ErrInvalidQuantity
	}

	i := c.index(key)
	current := 0
	if i >= 0 {
		current = c.Lines[i].Quantity
	}

	target := current + qty
	if stock != nil {
		if current >= *stock {
			return 0, ErrInsufficientStock
		}
		if target > *stock {
			target = *stock
		}
	}

	if i >= 0 {
		c.Lines[i].Quantity = target
	} else {
		c.Lines = append(c.Lines, Line{Key: key, Quantity: target})
	}
	return target - current, nil
}

// UpdateQuantity sets the quantity of an existing line, clamped to stock.
// A quantity of zero or less removes the line.
func (c *Cart) UpdateQuantity(key Key, qty int, stock *int) error {
	i := c.index(key)
	if i < 0 {
		return ErrLineNotFound
	}
	if qty <= 0 {
		c.Remove(key)
		return nil
	}
	if stock != nil && qty > *stock {
		qty = *stock
	}
	if qty <= 0 {
		c.Remove(key)
		return nil
	}
	c.Lines[i].Quantity = qty
	return nil
}

// Remove drops the line for key, if any
func (c *Cart) Remove(key Key) {
	if i := c.index(key); i >= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	}
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Lines = []Line{}
}

// TotalItems is the sum of all line quantities
func (c *Cart) TotalItems() int {
	total := 0
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}

// Empty reports whether the cart has no lines
func (c *Cart) Empty() bool {
	return len(c.Lines) == 0
}
