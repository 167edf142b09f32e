package catalog

import (
	"context"
	"fmt"
	"strings"

	"adstudio/internal/domain"
)

// SaveClient creates or replaces a brand profile. The logo is inlined.
func (g *Gateway) SaveClient(ctx context.Context, c domain.Client) (domain.Client, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return domain.Client{}, &domain.ValidationError{Field: "name", Message: "Please enter a client name."}
	}
	if err := domain.InlineAll([]**domain.ImageRef{&c.Logo}); err != nil {
		return domain.Client{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	clients, err := loadCollection[domain.Client](ctx, g, KeyClients)
	if err != nil {
		return domain.Client{}, err
	}
	if c.ID == "" {
		c.ID = g.newID()
	}
	clients = upsert(clients, c, func(x domain.Client) bool { return x.ID == c.ID })
	if err := saveCollection(ctx, g, KeyClients, clients); err != nil {
		return domain.Client{}, err
	}
	return c, nil
}

func (g *Gateway) GetClient(ctx context.Context, id string) (domain.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	clients, err := loadCollection[domain.Client](ctx, g, KeyClients)
	if err != nil {
		return domain.Client{}, err
	}
	idx := indexOf(clients, func(x domain.Client) bool { return x.ID == id })
	if idx < 0 {
		return domain.Client{}, fmt.Errorf("client %s: %w", id, domain.ErrNotFound)
	}
	return clients[idx], nil
}

func (g *Gateway) ListClients(ctx context.Context) ([]domain.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return loadCollection[domain.Client](ctx, g, KeyClients)
}

// DeleteClient removes a profile. Requests already seeded from it keep
// their values.
func (g *Gateway) DeleteClient(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	clients, err := loadCollection[domain.Client](ctx, g, KeyClients)
	if err != nil {
		return err
	}
	idx := indexOf(clients, func(x domain.Client) bool { return x.ID == id })
	if idx < 0 {
		return nil
	}
	clients = append(clients[:idx], clients[idx+1:]...)
	return saveCollection(ctx, g, KeyClients, clients)
}

var _ domain.ClientRepository = (*Gateway)(nil)
