package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DTOs
type CreateProductRequest struct {
	Name     string `json:"name" binding:"required"`
	Price    string `json:"price" binding:"required"`
	Stock    int    `json:"stock" binding:"min=0"`
	URL      string `json:"url"`
	Rating   *int   `json:"rating" binding:"omitempty,min=0,max=5"`
	ImageURL string `json:"image_url"`
}

type UpdateProductRequest struct {
	Name     string `json:"name" binding:"required"`
	Price    string `json:"price" binding:"required"`
	Stock    int    `json:"stock" binding:"min=0"`
	URL      string `json:"url"`
	Rating   *int   `json:"rating" binding:"omitempty,min=0,max=5"`
	ImageURL string `json:"image_url"`
}

type ProductResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        string  `json:"price"`
	Stock        int     `json:"stock"`
	URL          string  `json:"url"`
	Rating       *int    `json:"rating"`
	ImageURL     string  `json:"image_url"`
	SourceURL    string  `json:"source_url"`
	LastSyncedAt *string `json:"last_synced_at"`
	LastUpdated  string  `json:"last_updated"`
}

var ErrProductNotFound = errors.New("product not found")

type ProductService interface {
	GetProducts(ctx context.Context, page, limit int, search string) ([]ProductResponse, int64, error)
	GetProduct(ctx context.Context, id string) (ProductResponse, error)
	CreateProduct(ctx context.Context, userID string, req CreateProductRequest) (ProductResponse, error)
	UpdateProduct(ctx context.Context, userID string, id string, req UpdateProductRequest) (ProductResponse, error)
	DeleteProduct(ctx context.Context, userID string, id string) error
}

type productService struct {
	productRepo repository.ProductRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
}

func NewProductService(
	productRepo repository.ProductRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) ProductService {
	return &productService{
		productRepo: productRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
	}
}

func mapProduct(p *model.Product) ProductResponse {
	res := ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Price:       p.Price.StringFixed(2),
		Stock:       p.Stock,
		URL:         p.URL,
		Rating:      p.Rating,
		ImageURL:    p.ImageURL,
		SourceURL:   p.SourceURL,
		LastUpdated: p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if p.LastSyncedAt != nil {
		synced := p.LastSyncedAt.Format("2006-01-02T15:04:05Z07:00")
		res.LastSyncedAt = &synced
	}
	return res
}

func (s *productService) GetProducts(ctx context.Context, page, limit int, search string) ([]ProductResponse, int64, error) {
	products, total, err := s.productRepo.List(ctx, page, limit, search)
	if err != nil {
		return nil, 0, err
	}

	res := make([]ProductResponse, 0, len(products))
	for i := range products {
		res = append(res, mapProduct(&products[i]))
	}

	return res, total, nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (ProductResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ProductResponse{}, ErrProductNotFound
	}

	product, err := s.productRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductResponse{}, ErrProductNotFound
		}
		return ProductResponse{}, err
	}

	return mapProduct(product), nil
}

func (s *productService) CreateProduct(ctx context.Context, userID string, req CreateProductRequest) (ProductResponse, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return ProductResponse{}, errors.New("invalid price format")
	}
	if price.IsNegative() {
		return ProductResponse{}, errors.New("price must not be negative")
	}

	if _, err := s.productRepo.FindByName(ctx, req.Name); err == nil {
		return ProductResponse{}, errors.New("product name already exists")
	}

	product := model.Product{
		Name:     req.Name,
		Price:    price,
		Stock:    req.Stock,
		URL:      req.URL,
		Rating:   req.Rating,
		ImageURL: req.ImageURL,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.productRepo.Create(txCtx, &product); err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		return s.writeAudit(txCtx, userID, model.ActionCreateProduct, &product, req)
	})
	if err != nil {
		return ProductResponse{}, err
	}

	return mapProduct(&product), nil
}

func (s *productService) UpdateProduct(ctx context.Context, userID string, id string, req UpdateProductRequest) (ProductResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ProductResponse{}, ErrProductNotFound
	}

	product, err := s.productRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductResponse{}, ErrProductNotFound
		}
		return ProductResponse{}, err
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return ProductResponse{}, errors.New("invalid price format")
	}
	if price.IsNegative() {
		return ProductResponse{}, errors.New("price must not be negative")
	}

	product.Name = req.Name
	product.Price = price
	product.Stock = req.Stock
	product.URL = req.URL
	product.Rating = req.Rating
	product.ImageURL = req.ImageURL

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.productRepo.Update(txCtx, product); err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		return s.writeAudit(txCtx, userID, model.ActionUpdateProduct, product, req)
	})
	if err != nil {
		return ProductResponse{}, err
	}

	return mapProduct(product), nil
}

func (s *productService) DeleteProduct(ctx context.Context, userID string, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrProductNotFound
	}

	product, err := s.productRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.productRepo.Delete(txCtx, uid); err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return s.writeAudit(txCtx, userID, model.ActionDeleteProduct, product, nil)
	})
}

func (s *productService) writeAudit(ctx context.Context, userID, action string, product *model.Product, payload interface{}) error {
	var uid *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		uid = &parsed
	}

	details, _ := json.Marshal(payload)
	entry := &model.AuditLog{
		UserID:     uid,
		Action:     action,
		EntityID:   product.ID.String(),
		EntityName: product.Name,
		Details:    string(details),
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}
