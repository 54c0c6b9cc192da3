package validation

import (
	"context"
	"sync"

	"github.com/go-playground/mold/v4"
	"github.com/go-playground/mold/v4/modifiers"
	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	conform  *mold.Transformer
	once     sync.Once
)

func setup() {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		conform = modifiers.New()
	})
}

func Validate() *validator.Validate {
	setup()

	return validate
}

func Conform() *mold.Transformer {
	setup()

	return conform
}

// Struct applies `mod` tags to v and then checks its `validate` tags.
// v must be a pointer.
func Struct(v interface{}) error {
	setup()

	if err := conform.Struct(context.Background(), v); err != nil {
		return err
	}

	return validate.Struct(v)
}
