package services

import (
	"context"
	"errors"

	"mango-backend/internal/models"
	"mango-backend/internal/repositories"
)

type PackageSizeService struct {
	Repo *repositories.PackageSizeRepository
}

func NewPackageSizeService(repo *repositories.PackageSizeRepository) *PackageSizeService {
	return &PackageSizeService{Repo: repo}
}

func (s *PackageSizeService) CreatePackageSize(ctx context.Context, req *models.CreatePackageSizeRequest) (*models.PackageSize, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	if req.PiecesPerBox < 1 {
		return nil, errors.New("pieces per box must be at least 1")
	}

	pkg := &models.PackageSize{
		Name:          req.Name,
		PiecesPerBox:  req.PiecesPerBox,
		TransportCost: req.TransportCost,
		IsActive:      true,
	}
	if err := s.Repo.Create(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

func (s *PackageSizeService) GetPackageSize(ctx context.Context, id int) (*models.PackageSize, error) {
	return s.Repo.Get(ctx, id)
}

func (s *PackageSizeService) ListPackageSizes(ctx context.Context, activeOnly bool) ([]*models.PackageSize, error) {
	return s.Repo.List(ctx, activeOnly)
}

func (s *PackageSizeService) UpdatePackageSize(ctx context.Context, id int, req *models.UpdatePackageSizeRequest) (*models.PackageSize, error) {
	pkg, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, errors.New("package size not found")
	}
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	if req.PiecesPerBox < 1 {
		return nil, errors.New("pieces per box must be at least 1")
	}

	pkg.Name = req.Name
	pkg.PiecesPerBox = req.PiecesPerBox
	pkg.TransportCost = req.TransportCost
	if req.IsActive != nil {
		pkg.IsActive = *req.IsActive
	}
	if err := s.Repo.Update(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// DeletePackageSize deactivates rather than removes: item rows keep
// their foreign key, the size just stops appearing in pickers.
func (s *PackageSizeService) DeletePackageSize(ctx context.Context, id int) error {
	pkg, err := s.Repo.Get(ctx, id)
	if err != nil {
		return errors.New("package size not found")
	}
	pkg.IsActive = false
	return s.Repo.Update(ctx, pkg)
}
