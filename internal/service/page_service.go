package service

import (
	"alcyxob/fitness-bot/internal/repository"
	"alcyxob/fitness-bot/internal/storage"
	"context"
	"errors"
	"strings"
	"time"
)

var ErrPageNotFound = errors.New("page not found")

// Page is the static content of a named screen.
type Page struct {
	Media       string
	Description string
}

// PageService reads banner content by page name.
type PageService interface {
	GetPage(ctx context.Context, name string) (Page, error)
}

type pageService struct {
	bannerRepo repository.BannerRepository
	media      storage.MediaStorage // nil when banners only carry absolute URLs
	urlExpiry  time.Duration
}

// NewPageService creates a new instance of pageService. media may be nil.
func NewPageService(bannerRepo repository.BannerRepository, media storage.MediaStorage, urlExpiry time.Duration) PageService {
	return &pageService{
		bannerRepo: bannerRepo,
		media:      media,
		urlExpiry:  urlExpiry,
	}
}

func (s *pageService) GetPage(ctx context.Context, name string) (Page, error) {
	banner, err := s.bannerRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Page{}, ErrPageNotFound
		}
		return Page{}, err
	}

	page := Page{Media: banner.Image, Description: banner.Description}
	if page.Media != "" && !isAbsoluteURL(page.Media) && s.media != nil {
		url, err := s.media.GeneratePresignedDownloadURL(ctx, page.Media, s.urlExpiry)
		if err != nil {
			return Page{}, err
		}
		page.Media = url
	}
	return page, nil
}

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
