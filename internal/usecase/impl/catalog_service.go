package impl

import (
	"context"
	"log/slog"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultPageSize        = 12
	defaultBestsellerLimit = 8
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	productRepo     repository.ProductRepository
	commentRepo     repository.CommentRepository
	favoriteRepo    repository.FavoriteRepository
	cache           service.CatalogCache
	pageSize        int
	bestsellerLimit int
	logger          *slog.Logger
}

// CatalogServiceParams holds dependencies for catalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	ProductRepo  repository.ProductRepository
	CommentRepo  repository.CommentRepository
	FavoriteRepo repository.FavoriteRepository
	Cache        service.CatalogCache
	Config       *config.Config
	Logger       *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	pageSize := defaultPageSize
	bestsellerLimit := defaultBestsellerLimit
	if params.Config != nil && params.Config.Catalog != nil {
		if params.Config.Catalog.PageSize > 0 {
			pageSize = params.Config.Catalog.PageSize
		}
		if params.Config.Catalog.BestsellerLimit > 0 {
			bestsellerLimit = params.Config.Catalog.BestsellerLimit
		}
	}

	return &catalogService{
		productRepo:     params.ProductRepo,
		commentRepo:     params.CommentRepo,
		favoriteRepo:    params.FavoriteRepo,
		cache:           params.Cache,
		pageSize:        pageSize,
		bestsellerLimit: bestsellerLimit,
		logger:          params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListProducts returns a filtered, sorted page of the catalog.
func (srv *catalogService) ListProducts(ctx context.Context, input usecase.ListProductsInput) (*usecase.ProductPage, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}

	products, total, err := srv.productRepo.List(ctx, repository.ProductFilter{
		SizeSlug:     input.SizeSlug,
		MaterialSlug: input.MaterialSlug,
		DiscountOnly: input.DiscountOnly,
		Sort:         input.Sort,
		Page:         page,
		PerPage:      srv.pageSize,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(srv.pageSize) - 1) / int64(srv.pageSize))

	return &usecase.ProductPage{
		Products:   products,
		Total:      total,
		Page:       page,
		PerPage:    srv.pageSize,
		TotalPages: totalPages,
	}, nil
}

// GetProduct returns the product for a slug together with its comments.
func (srv *catalogService) GetProduct(ctx context.Context, slug string) (*entity.Product, []*entity.Comment, error) {
	product, err := srv.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, nil, domainerrors.ErrProductNotFound
		}

		return nil, nil, err
	}

	comments, err := srv.commentRepo.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, nil, err
	}

	return product, comments, nil
}

// Bestsellers returns the most-purchased products, served cache-aside.
// Cache failures fall back to the database and are only logged.
func (srv *catalogService) Bestsellers(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.cache.GetBestsellers(ctx, srv.bestsellerLimit)
	if err == nil {
		return products, nil
	}
	if !errors.Is(err, service.ErrCacheMiss) {
		srv.log(ctx).Warn("bestseller cache read failed", slog.String("error", err.Error()))
	}

	products, err = srv.productRepo.Bestsellers(ctx, srv.bestsellerLimit)
	if err != nil {
		return nil, err
	}

	if err := srv.cache.SetBestsellers(ctx, srv.bestsellerLimit, products); err != nil {
		srv.log(ctx).Warn("bestseller cache write failed", slog.String("error", err.Error()))
	}

	return products, nil
}

// AddComment creates a comment on an existing product.
func (srv *catalogService) AddComment(ctx context.Context, input usecase.AddCommentInput) (*entity.Comment, error) {
	if _, err := srv.productRepo.FindByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, err
	}

	comment := &entity.Comment{
		ProductID: input.ProductID,
		UserID:    input.UserID,
		Text:      input.Text,
	}
	if err := srv.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// DeleteComment removes a comment. Only the author may delete it.
func (srv *catalogService) DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error {
	comment, err := srv.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return domainerrors.ErrCommentNotFound
		}

		return err
	}

	if comment.UserID != userID {
		return domainerrors.ErrForbidden.WrapMessage("only the author may delete a comment")
	}

	return srv.commentRepo.Delete(ctx, commentID)
}

// ToggleFavorite flips the favorite state of a (user, product) pair.
func (srv *catalogService) ToggleFavorite(ctx context.Context, userID, productID uuid.UUID) (*usecase.ToggleFavoriteOutput, error) {
	_, err := srv.favoriteRepo.Find(ctx, userID, productID)
	if err == nil {
		if err := srv.favoriteRepo.Delete(ctx, userID, productID); err != nil {
			return nil, err
		}

		return &usecase.ToggleFavoriteOutput{Favorited: false}, nil
	}
	if !errors.Is(err, repository.ErrFavoriteNotFound) {
		return nil, err
	}

	if _, err := srv.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, err
	}

	favorite := &entity.Favorite{UserID: userID, ProductID: productID}
	if err := srv.favoriteRepo.Create(ctx, favorite); err != nil {
		return nil, err
	}

	return &usecase.ToggleFavoriteOutput{Favorited: true}, nil
}

// ListFavorites returns the user's favorites, newest first.
func (srv *catalogService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]*entity.Favorite, error) {
	return srv.favoriteRepo.ListByUser(ctx, userID)
}
