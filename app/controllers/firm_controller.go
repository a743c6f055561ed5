package controllers

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shashiranjanraj/suby/app/services"
	"github.com/shashiranjanraj/suby/pkg/auth"
	"github.com/shashiranjanraj/suby/pkg/bind"
	"github.com/shashiranjanraj/suby/pkg/response"
	"github.com/shashiranjanraj/suby/pkg/storage"
)

// maxUploadBytes caps multipart uploads (form fields plus image).
const maxUploadBytes = 8 << 20 // 8 MB

// FirmController serves firm creation, lookup, deletion, and the stored
// image route.
type FirmController struct {
	firms *services.FirmService
}

func NewFirmController(firms *services.FirmService) *FirmController {
	return &FirmController{firms: firms}
}

// Add handles POST /firm/add-firm. Requires auth; the owning vendor is
// taken from the verified credential, never from the request body.
func (c *FirmController) Add(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := auth.VendorIDFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication token required")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	in := services.AddFirmInput{
		FirmName: r.FormValue("firmName"),
		Area:     r.FormValue("area"),
		Category: bind.StringList(r.FormValue("category")),
		Region:   bind.StringList(r.FormValue("region")),
		Offer:    r.FormValue("offer"),
	}

	image, err := saveUpload(r, "image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	in.Image = image

	result, err := c.firms.AddFirm(r.Context(), vendorID, in)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	services.InvalidateListCache()
	response.Success(w, result)
}

// Get handles GET /firm/{id}.
func (c *FirmController) Get(w http.ResponseWriter, r *http.Request) {
	view, err := c.firms.GetFirm(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, map[string]interface{}{"firm": view})
}

// Delete handles DELETE /firm/{id}. Requires auth.
func (c *FirmController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.firms.DeleteFirm(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.FromError(w, r, err)
		return
	}
	services.InvalidateListCache()
	response.Message(w, "Firm deleted successfully")
}

// ServeImage handles GET /firm/uploads/{imageName}, streaming the stored
// object through the storage disk.
func (c *FirmController) ServeImage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "imageName")
	// uploads are flat; reject anything that looks like a path
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		response.NotFound(w, "Image not found")
		return
	}

	rc, err := storage.GetStream(name)
	if err != nil {
		response.NotFound(w, "Image not found")
		return
	}
	defer rc.Close()

	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = io.Copy(w, rc)
}

// saveUpload stores the optional file field under a fresh uuid-based name
// and returns the stored name, or "" when the field is absent.
func saveUpload(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))
	if err := storage.PutStream(name, file); err != nil {
		return "", err
	}
	return name, nil
}
