package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"adstudio/internal/domain"
	"adstudio/internal/infra"
)

// Collection keys in the blob store.
const (
	KeyAds       = "ad-creator-generated-ads"
	KeyFolders   = "ad-creator-folders"
	KeySettings  = "ad-creator-settings"
	KeyTemplates = "ad-creator-user-templates"
	KeyClients   = "ad-creator-clients"
)

// ErrBuiltInTemplate is returned when a built-in template would be modified.
var ErrBuiltInTemplate = errors.New("built-in templates are read-only")

// Options configures a Gateway.
type Options struct {
	Store  domain.BlobStore
	Logger *infra.Logger
	Now    func() time.Time
	NewID  func() string
}

// Gateway is the single entry point to the persisted catalog. Every write
// reads the whole collection, changes it in memory and writes it back.
type Gateway struct {
	store  domain.BlobStore
	logger infra.Logger
	now    func() time.Time
	newID  func() string

	mu sync.Mutex
}

func New(opts Options) (*Gateway, error) {
	if opts.Store == nil {
		return nil, errors.New("catalog: store is required")
	}
	g := &Gateway{
		store:  opts.Store,
		logger: infra.LoggerOrNop(opts.Logger),
		now:    opts.Now,
		newID:  opts.NewID,
	}
	if g.now == nil {
		g.now = time.Now
	}
	if g.newID == nil {
		g.newID = uuid.NewString
	}
	return g, nil
}

// SaveAd inserts an ad without an id or fully replaces the stored ad sharing
// its id. Every transient image is inlined first; the caller's ad is left
// untouched and the stored copy is returned.
func (g *Gateway) SaveAd(ctx context.Context, ad *domain.ComposableAd) (*domain.ComposableAd, error) {
	if ad == nil {
		return nil, errors.New("catalog: ad is required")
	}
	saved := cloneAd(ad)
	if err := domain.InlineAll(saved.ImageRefs()); err != nil {
		return nil, err
	}
	if strings.TrimSpace(saved.Name) == "" {
		saved.Name = saved.Request.AdName
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	ads, err := loadCollection[domain.ComposableAd](ctx, g, KeyAds)
	if err != nil {
		return nil, err
	}
	if saved.ID == "" {
		saved.ID = g.newID()
		saved.CreatedAt = g.now().UTC()
		ads = append(ads, *saved)
	} else {
		idx := indexOf(ads, func(a domain.ComposableAd) bool { return a.ID == saved.ID })
		if saved.CreatedAt.IsZero() {
			if idx >= 0 {
				saved.CreatedAt = ads[idx].CreatedAt
			} else {
				saved.CreatedAt = g.now().UTC()
			}
		}
		if idx >= 0 {
			ads[idx] = *saved
		} else {
			ads = append(ads, *saved)
		}
	}
	if err := saveCollection(ctx, g, KeyAds, ads); err != nil {
		return nil, err
	}
	g.logger.Debug().Str("ad_id", saved.ID).Int("backgrounds", len(saved.Backgrounds)).Msg("catalog: ad saved")
	return saved, nil
}

// LoadAd returns the stored ad or domain.ErrNotFound.
func (g *Gateway) LoadAd(ctx context.Context, id string) (*domain.ComposableAd, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ads, err := loadCollection[domain.ComposableAd](ctx, g, KeyAds)
	if err != nil {
		return nil, err
	}
	idx := indexOf(ads, func(a domain.ComposableAd) bool { return a.ID == id })
	if idx < 0 {
		return nil, fmt.Errorf("ad %s: %w", id, domain.ErrNotFound)
	}
	return &ads[idx], nil
}

// DeleteAd removes an ad. Deleting an absent id writes nothing.
func (g *Gateway) DeleteAd(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	ads, err := loadCollection[domain.ComposableAd](ctx, g, KeyAds)
	if err != nil {
		return err
	}
	idx := indexOf(ads, func(a domain.ComposableAd) bool { return a.ID == id })
	if idx < 0 {
		return nil
	}
	ads = append(ads[:idx], ads[idx+1:]...)
	return saveCollection(ctx, g, KeyAds, ads)
}

// ListAds returns the ads matching filter, newest first.
func (g *Gateway) ListAds(ctx context.Context, filter domain.AdFilter) ([]domain.ComposableAd, error) {
	g.mu.Lock()
	ads, err := loadCollection[domain.ComposableAd](ctx, g, KeyAds)
	g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := ads[:0]
	for _, ad := range ads {
		switch {
		case filter.Unassigned && ad.FolderID != "":
			continue
		case filter.FolderID != "" && ad.FolderID != filter.FolderID:
			continue
		}
		out = append(out, ad)
	}
	SortNewestFirst(out)
	return out, nil
}

// SortNewestFirst orders ads by creation time, newest first.
func SortNewestFirst(ads []domain.ComposableAd) {
	sort.SliceStable(ads, func(i, j int) bool {
		return ads[i].CreatedAt.After(ads[j].CreatedAt)
	})
}

// RenameAd changes the display name of a stored ad.
func (g *Gateway) RenameAd(ctx context.Context, id, name string) (*domain.ComposableAd, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &domain.ValidationError{Phase: domain.PhaseStrategy, Field: "name", Message: "Please enter an Ad Name."}
	}
	return g.updateAd(ctx, id, func(ad *domain.ComposableAd) error {
		ad.Name = name
		return nil
	})
}

// AssignFolder moves an ad into a folder. An empty folderID unassigns it.
func (g *Gateway) AssignFolder(ctx context.Context, id, folderID string) (*domain.ComposableAd, error) {
	return g.updateAd(ctx, id, func(ad *domain.ComposableAd) error {
		if folderID != "" {
			folders, err := loadCollection[domain.Folder](ctx, g, KeyFolders)
			if err != nil {
				return err
			}
			if indexOf(folders, func(f domain.Folder) bool { return f.ID == folderID }) < 0 {
				return fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
			}
		}
		ad.FolderID = folderID
		return nil
	})
}

func (g *Gateway) updateAd(ctx context.Context, id string, mutate func(*domain.ComposableAd) error) (*domain.ComposableAd, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ads, err := loadCollection[domain.ComposableAd](ctx, g, KeyAds)
	if err != nil {
		return nil, err
	}
	idx := indexOf(ads, func(a domain.ComposableAd) bool { return a.ID == id })
	if idx < 0 {
		return nil, fmt.Errorf("ad %s: %w", id, domain.ErrNotFound)
	}
	if err := mutate(&ads[idx]); err != nil {
		return nil, err
	}
	if err := saveCollection(ctx, g, KeyAds, ads); err != nil {
		return nil, err
	}
	return &ads[idx], nil
}

// SaveFolder creates a folder without an id or renames the one sharing it.
func (g *Gateway) SaveFolder(ctx context.Context, folder domain.Folder) (domain.Folder, error) {
	folder.Name = strings.TrimSpace(folder.Name)
	if folder.Name == "" {
		return domain.Folder{}, &domain.ValidationError{Field: "name", Message: "Please enter a folder name."}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	folders, err := loadCollection[domain.Folder](ctx, g, KeyFolders)
	if err != nil {
		return domain.Folder{}, err
	}
	if folder.ID == "" {
		folder.ID = g.newID()
	}
	folders = upsert(folders, folder, func(f domain.Folder) bool { return f.ID == folder.ID })
	if err := saveCollection(ctx, g, KeyFolders, folders); err != nil {
		return domain.Folder{}, err
	}
	return folder, nil
}

// ListFolders returns every folder in creation order.
func (g *Gateway) ListFolders(ctx context.Context) ([]domain.Folder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return loadCollection[domain.Folder](ctx, g, KeyFolders)
}

// DeleteFolder removes a folder and unassigns every ad it held. The ads
// themselves are kept. Deleting an absent id writes nothing.
func (g *Gateway) DeleteFolder(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	folders, err := loadCollection[domain.Folder](ctx, g, KeyFolders)
	if err != nil {
		return err
	}
	idx := indexOf(folders, func(f domain.Folder) bool { return f.ID == id })
	if idx < 0 {
		return nil
	}
	ads, err := loadCollection[domain.ComposableAd](ctx, g, KeyAds)
	if err != nil {
		return err
	}
	moved := 0
	for i := range ads {
		if ads[i].FolderID == id {
			ads[i].FolderID = ""
			moved++
		}
	}
	if moved > 0 {
		if err := saveCollection(ctx, g, KeyAds, ads); err != nil {
			return err
		}
	}
	folders = append(folders[:idx], folders[idx+1:]...)
	if err := saveCollection(ctx, g, KeyFolders, folders); err != nil {
		return err
	}
	g.logger.Debug().Str("folder_id", id).Int("unassigned", moved).Msg("catalog: folder deleted")
	return nil
}

// GetSettings merges the stored record over the defaults.
func (g *Gateway) GetSettings(ctx context.Context) (domain.Settings, error) {
	raw, err := g.store.Get(ctx, KeySettings)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.Settings{}, err
	}
	s, err := domain.MergeSettings(raw)
	if err != nil {
		g.logger.Warn().Err(err).Msg("catalog: stored settings unreadable, using defaults")
		return domain.DefaultSettings(), nil
	}
	return s, nil
}

// SetSettings overwrites the whole stored record with p. Fields absent from
// p read back as defaults; nothing from the previous record survives.
func (g *Gateway) SetSettings(ctx context.Context, p domain.SettingsPatch) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return g.store.Put(ctx, KeySettings, raw)
}

func cloneAd(ad *domain.ComposableAd) *domain.ComposableAd {
	out := *ad
	out.Request = ad.Request.Clone()
	out.Backgrounds = append([]domain.Background(nil), ad.Backgrounds...)
	out.Elements = append([]domain.Element(nil), ad.Elements...)
	return &out
}

func loadCollection[T any](ctx context.Context, g *Gateway, key string) ([]T, error) {
	raw, err := g.store.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		g.logger.Error().Err(err).Str("key", key).Msg("catalog: collection unreadable")
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrStorageUnavailable, key, err)
	}
	return items, nil
}

func saveCollection[T any](ctx context.Context, g *Gateway, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return g.store.Put(ctx, key, raw)
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}
	return -1
}

func upsert[T any](items []T, item T, match func(T) bool) []T {
	if idx := indexOf(items, match); idx >= 0 {
		items[idx] = item
		return items
	}
	return append(items, item)
}

var (
	_ domain.AdRepository       = (*Gateway)(nil)
	_ domain.FolderRepository   = (*Gateway)(nil)
	_ domain.SettingsRepository = (*Gateway)(nil)
)
