package order

import "fmt"

type Item struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
} // @name order.Item

func NewItem(id, name string, price float64, productID string, quantity int) (Item, error) {
	item := Item{ID: id, Name: name, Price: price, ProductID: productID, Quantity: quantity}

	return item, item.Validate()
}

func (i Item) Validate() error {
	switch {
	case i.ID == "":
		return fmt.Errorf("%w: item id is required", ErrInvalidOrder)
	case i.ProductID == "":
		return fmt.Errorf("%w: item product id is required", ErrInvalidOrder)
	case i.Quantity <= 0:
		return fmt.Errorf("%w: item quantity must be greater than zero", ErrInvalidOrder)
	case i.Price < 0:
		return fmt.Errorf("%w: item price must not be negative", ErrInvalidOrder)
	}

	return nil
}

func (i Item) Total() float64 {
	return i.Price * float64(i.Quantity)
}
