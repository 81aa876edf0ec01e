package catalog

import "encoding/json"

// Item is a catalog entry as served upstream.
type Item struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       float64         `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image,omitempty"`
	Rating      json.RawMessage `json:"rating,omitempty"`
}

// Product is the projection returned to callers; the image is dropped.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       float64         `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Rating      json.RawMessage `json:"rating"`
}

var emptyRating = json.RawMessage(`{}`)

func (it Item) project() Product {
	rating := it.Rating
	if len(rating) == 0 {
		rating = emptyRating
	}
	return Product{
		ID:          it.ID,
		Title:       it.Title,
		Price:       it.Price,
		Description: it.Description,
		Category:    it.Category,
		Rating:      rating,
	}
}

// Result is the outcome of a successful search. An empty Products slice is a
// valid answer, not a failure.
type Result struct {
	Query    string
	Products []Product
}

func (r Result) NoMatch() bool { return len(r.Products) == 0 }
