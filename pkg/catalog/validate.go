package catalog

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/HerbHall/renewhub/pkg/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func productValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateProduct checks a single product against its field constraints.
func ValidateProduct(p models.Product) error {
	if err := productValidator().Struct(p); err != nil {
		return fmt.Errorf("product %d: %w", p.ID, err)
	}
	return nil
}

// ValidateProducts checks every product and rejects duplicate IDs.
func ValidateProducts(products []models.Product) error {
	seen := make(map[int]struct{}, len(products))
	for i := range products {
		if err := ValidateProduct(products[i]); err != nil {
			return err
		}
		if _, dup := seen[products[i].ID]; dup {
			return fmt.Errorf("product %d: duplicate id", products[i].ID)
		}
		seen[products[i].ID] = struct{}{}
	}
	return nil
}
