package customer

import (
	"errors"
	"fmt"
)

var ErrInvalidAddress = errors.New("invalid address")

type Address struct {
	Street string `json:"street"`
	Number int    `json:"number"`
	Zip    string `json:"zip"`
	City   string `json:"city"`
} // @name customer.Address

func NewAddress(street string, number int, zip, city string) (Address, error) {
	a := Address{Street: street, Number: number, Zip: zip, City: city}

	return a, a.Validate()
}

func (a Address) Validate() error {
	switch {
	case a.Street == "":
		return fmt.Errorf("%w: street is required", ErrInvalidAddress)
	case a.Number <= 0:
		return fmt.Errorf("%w: number must be greater than zero", ErrInvalidAddress)
	case a.Zip == "":
		return fmt.Errorf("%w: zip is required", ErrInvalidAddress)
	case a.City == "":
		return fmt.Errorf("%w: city is required", ErrInvalidAddress)
	}

	return nil
}

func (a Address) String() string {
	return fmt.Sprintf("%s, %d, %s %s", a.Street, a.Number, a.Zip, a.City)
}
