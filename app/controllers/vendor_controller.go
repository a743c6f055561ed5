package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/suby/app/services"
	"github.com/shashiranjanraj/suby/pkg/bind"
	"github.com/shashiranjanraj/suby/pkg/response"
)

// VendorController serves registration, login, and the vendor read side.
type VendorController struct {
	auth    *services.AuthService
	vendors *services.VendorService
}

func NewVendorController(auth *services.AuthService, vendors *services.VendorService) *VendorController {
	return &VendorController{auth: auth, vendors: vendors}
}

// Register handles POST /vendor/register.
func (c *VendorController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.auth.Register(r.Context(), in); err != nil {
		response.FromError(w, r, err)
		return
	}

	services.InvalidateListCache()
	response.Created(w, "Vendor registered successfully", nil)
}

// Login handles POST /vendor/login.
func (c *VendorController) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := c.auth.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"token":    result.Token,
		"vendorId": result.Vendor.ID.Hex(),
		"vendor":   result.Vendor,
	})
}

// All handles GET /vendor/all-vendors.
func (c *VendorController) All(w http.ResponseWriter, r *http.Request) {
	views, err := c.vendors.All(r.Context())
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, map[string]interface{}{"vendors": views})
}

// Get handles GET /vendor/{id}.
func (c *VendorController) Get(w http.ResponseWriter, r *http.Request) {
	view, err := c.vendors.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, map[string]interface{}{"vendor": view})
}

// Delete handles DELETE /vendor/{id}.
func (c *VendorController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.vendors.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Message(w, "Vendor deleted successfully")
}
