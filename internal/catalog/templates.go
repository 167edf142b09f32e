package catalog

import (
	"context"
	"fmt"
	"strings"

	"adstudio/internal/domain"
)

// SaveTemplate stores a user template, inlining its images. Built-in ids
// are refused.
func (g *Gateway) SaveTemplate(ctx context.Context, t domain.Template) (domain.Template, error) {
	if _, ok := domain.FindBuiltInTemplate(t.ID); ok || t.BuiltIn {
		return domain.Template{}, ErrBuiltInTemplate
	}
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return domain.Template{}, &domain.ValidationError{Field: "name", Message: "Please enter a template name."}
	}
	t.Request = t.Request.Clone()
	if err := domain.InlineAll(t.Request.ImageRefs()); err != nil {
		return domain.Template{}, err
	}
	if t.PreviewImage == "" {
		t.PreviewImage = t.Request.TemplateStyleImage.DataURL()
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	templates, err := loadCollection[domain.Template](ctx, g, KeyTemplates)
	if err != nil {
		return domain.Template{}, err
	}
	if t.ID == "" {
		t.ID = g.newID()
	}
	templates = upsert(templates, t, func(x domain.Template) bool { return x.ID == t.ID })
	if err := saveCollection(ctx, g, KeyTemplates, templates); err != nil {
		return domain.Template{}, err
	}
	return t, nil
}

// GetTemplate resolves built-in templates first, then user templates.
func (g *Gateway) GetTemplate(ctx context.Context, id string) (domain.Template, error) {
	if t, ok := domain.FindBuiltInTemplate(id); ok {
		return t, nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	templates, err := loadCollection[domain.Template](ctx, g, KeyTemplates)
	if err != nil {
		return domain.Template{}, err
	}
	idx := indexOf(templates, func(x domain.Template) bool { return x.ID == id })
	if idx < 0 {
		return domain.Template{}, fmt.Errorf("template %s: %w", id, domain.ErrNotFound)
	}
	return templates[idx], nil
}

// ListTemplates returns the built-in gallery followed by user templates.
func (g *Gateway) ListTemplates(ctx context.Context) ([]domain.Template, error) {
	g.mu.Lock()
	user, err := loadCollection[domain.Template](ctx, g, KeyTemplates)
	g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Template, 0, len(domain.BuiltInTemplates)+len(user))
	out = append(out, domain.BuiltInTemplates...)
	return append(out, user...), nil
}

// DeleteTemplate removes a user template. Absent ids are ignored.
func (g *Gateway) DeleteTemplate(ctx context.Context, id string) error {
	if _, ok := domain.FindBuiltInTemplate(id); ok {
		return ErrBuiltInTemplate
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	templates, err := loadCollection[domain.Template](ctx, g, KeyTemplates)
	if err != nil {
		return err
	}
	idx := indexOf(templates, func(x domain.Template) bool { return x.ID == id })
	if idx < 0 {
		return nil
	}
	templates = append(templates[:idx], templates[idx+1:]...)
	return saveCollection(ctx, g, KeyTemplates, templates)
}

var _ domain.TemplateRepository = (*Gateway)(nil)
