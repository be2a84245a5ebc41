package products

import (
	"fmt"
	"strings"

	"github.com/solstice-erp/solstice-erp/internal/shared"
)

func (s *Service) validate(p Product) error {
	if strings.TrimSpace(p.Code) == "" {
		return fmt.Errorf("%w: product code is required", shared.ErrValidation)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", shared.ErrValidation)
	}
	if p.UnitPrice < 0 {
		return fmt.Errorf("%w: unit price must not be negative", shared.ErrValidation)
	}
	return nil
}
