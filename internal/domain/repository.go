package domain

import "context"

// BlobStore is a string-keyed byte store. Get returns ErrNotFound for an
// absent key and Delete of an absent key is not an error.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// AdFilter narrows ListAds. The zero value lists every ad.
type AdFilter struct {
	FolderID   string
	Unassigned bool
}

// AdRepository persists composable ads.
type AdRepository interface {
	SaveAd(ctx context.Context, ad *ComposableAd) (*ComposableAd, error)
	LoadAd(ctx context.Context, id string) (*ComposableAd, error)
	DeleteAd(ctx context.Context, id string) error
	ListAds(ctx context.Context, filter AdFilter) ([]ComposableAd, error)
	RenameAd(ctx context.Context, id, name string) (*ComposableAd, error)
	AssignFolder(ctx context.Context, id, folderID string) (*ComposableAd, error)
}

// FolderRepository persists folders.
type FolderRepository interface {
	SaveFolder(ctx context.Context, folder Folder) (Folder, error)
	ListFolders(ctx context.Context) ([]Folder, error)
	DeleteFolder(ctx context.Context, id string) error
}

// TemplateRepository persists user templates. Built-in templates are listed
// alongside but never stored.
type TemplateRepository interface {
	SaveTemplate(ctx context.Context, t Template) (Template, error)
	GetTemplate(ctx context.Context, id string) (Template, error)
	ListTemplates(ctx context.Context) ([]Template, error)
	DeleteTemplate(ctx context.Context, id string) error
}

// ClientRepository persists brand profiles.
type ClientRepository interface {
	SaveClient(ctx context.Context, c Client) (Client, error)
	GetClient(ctx context.Context, id string) (Client, error)
	ListClients(ctx context.Context) ([]Client, error)
	DeleteClient(ctx context.Context, id string) error
}

// SettingsRepository persists the single settings record.
type SettingsRepository interface {
	GetSettings(ctx context.Context) (Settings, error)
	SetSettings(ctx context.Context, p SettingsPatch) error
}
