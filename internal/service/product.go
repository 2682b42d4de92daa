package service

import (
	"context"

	"github.com/minimall/minimall/internal/api/dto"
	"github.com/minimall/minimall/internal/domain/product"
	"github.com/minimall/minimall/internal/types"
)

// ProductService creates and reads products and their SKUs
type ProductService interface {
	CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error)
}

type productService struct {
	ServiceParams
}

func NewProductService(params ServiceParams) ProductService {
	return &productService{ServiceParams: params}
}

func (s *productService) CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := req.ToProduct(ctx)
	skus := make([]*product.SKU, 0, len(req.SKUs))

	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.ProductRepo.Create(ctx, p); err != nil {
			return err
		}

		for _, skuReq := range req.SKUs {
			sku := &product.SKU{
				ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SKU),
				ProductID:     p.ID,
				Spec:          skuReq.Spec,
				PriceOverride: skuReq.PriceOverride,
				BaseModel:     types.GetDefaultBaseModel(ctx),
			}
			if err := s.ProductRepo.CreateSKU(ctx, sku); err != nil {
				return err
			}
			skus = append(skus, sku)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("created product",
		"product_id", p.ID,
		"skus", len(skus),
	)
	return &dto.ProductResponse{Product: p, SKUs: skus}, nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := s.ProductRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	skus, err := s.ProductRepo.ListSKUs(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ProductResponse{Product: p, SKUs: skus}, nil
}
