package handler

import (
	"github.com/sweetshop/inventory-api/internal/core/domain"
)

// sweetRequest carries the writable fields for create and full-replacement
// update. Negative price or quantity is rejected at the boundary.
type sweetRequest struct {
	Name     string  `json:"name"     validate:"required"`
	Category string  `json:"category"`
	Price    float64 `json:"price"    validate:"gte=0"`
	Quantity int64   `json:"quantity" validate:"gte=0"`
}

// quantityRequest is the body of restock and purchase calls. Positivity is
// enforced by the inventory service so the error taxonomy stays in one place.
type quantityRequest struct {
	Quantity int64 `json:"quantity"`
}

type sweetResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}

func toSweetResponse(s *domain.Sweet) sweetResponse {
	return sweetResponse{
		ID:       s.ID,
		Name:     s.Name,
		Category: s.Category,
		Price:    s.Price,
		Quantity: s.Quantity,
	}
}

func toSweetResponses(sweets []*domain.Sweet) []sweetResponse {
	out := make([]sweetResponse, 0, len(sweets))
	for _, s := range sweets {
		out = append(out, toSweetResponse(s))
	}
	return out
}
