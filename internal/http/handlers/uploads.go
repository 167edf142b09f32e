package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"adstudio/internal/domain"
)

const multipartMemory = 8 << 20

// maxFormBytes bounds a whole request: every image slot at the asset ceiling
// plus the JSON document.
func (a *App) maxFormBytes() int64 {
	return 5*a.MaxAssetBytes + (1 << 20)
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && strings.HasPrefix(mediaType, "multipart/")
}

// decodeBody reads v from a JSON body, or from the JSON form field named
// field of a multipart body. Multipart files are returned by form field name
// as transient images.
func (a *App) decodeBody(w http.ResponseWriter, r *http.Request, field string, v any) (map[string]*domain.ImageRef, error) {
	r.Body = http.MaxBytesReader(w, r.Body, a.maxFormBytes())
	if !isMultipart(r) {
		if err := json.NewDecoder(r.Body).Decode(v); err != nil {
			return nil, bodyError(err)
		}
		return nil, nil
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, bodyError(err)
	}
	raw := r.FormValue(field)
	if strings.TrimSpace(raw) == "" {
		return nil, &domain.ValidationError{Field: field, Message: fmt.Sprintf("Missing %q form field.", field)}
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return nil, bodyError(err)
	}

	files := map[string]*domain.ImageRef{}
	for name, headers := range r.MultipartForm.File {
		if len(headers) == 0 {
			continue
		}
		ref := transientFromHeader(headers[0])
		if err := ref.CheckSize(a.MaxAssetBytes); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		files[name] = ref
	}
	return files, nil
}

func transientFromHeader(fh *multipart.FileHeader) *domain.ImageRef {
	return domain.TransientRef(domain.NewTransientImage(fh.Filename, fh.Header.Get("Content-Type"), fh.Size, func() (io.ReadCloser, error) {
		return fh.Open()
	}))
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: request body exceeds %d bytes", domain.ErrAssetTooLarge, tooLarge.Limit)
	}
	return &domain.ValidationError{Message: "Invalid request payload."}
}

// attachRequestImages places uploaded files into the matching request slots
// and enforces the size ceiling on every slot.
func (a *App) attachRequestImages(req *domain.CompositionRequest, files map[string]*domain.ImageRef) error {
	slots := map[string]**domain.ImageRef{
		"backgroundImage":    &req.BackgroundImage,
		"productImage":       &req.ProductImage,
		"templateStyleImage": &req.TemplateStyleImage,
		"logoImage":          &req.LogoImage,
	}
	for name, ref := range files {
		if slot, ok := slots[name]; ok {
			*slot = ref
		}
	}
	for name, slot := range slots {
		if err := (*slot).CheckSize(a.MaxAssetBytes); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
