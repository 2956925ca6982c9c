package service

import (
	"context"

	"backend/internal/insight"
	"backend/internal/repository"
)

// StatisticsService computes catalog-wide insight statistics over the stored
// products, the same calculation the insights microservice performs on a
// request payload but run against the database instead.
type StatisticsService interface {
	GetStatistics(ctx context.Context) (insight.Response, error)
}

type statisticsService struct {
	productRepo repository.ProductRepository
}

func NewStatisticsService(productRepo repository.ProductRepository) StatisticsService {
	return &statisticsService{productRepo: productRepo}
}

func (s *statisticsService) GetStatistics(ctx context.Context) (insight.Response, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return insight.Response{}, err
	}

	inputs := make([]insight.ProductInput, 0, len(products))
	for i := range products {
		p := &products[i]
		input := insight.ProductInput{
			Name:  p.Name,
			Price: p.Price.InexactFloat64(),
			Stock: float64(p.Stock),
		}
		if p.Rating != nil {
			r := float64(*p.Rating)
			input.Rating = &r
		}
		inputs = append(inputs, input)
	}

	return insight.Calculate(inputs), nil
}
