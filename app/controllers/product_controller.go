package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/suby/app/services"
	"github.com/shashiranjanraj/suby/pkg/bind"
	"github.com/shashiranjanraj/suby/pkg/response"
)

// ProductController serves the product child collection of a firm.
type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// Add handles POST /product/add-product/{firmId}. Requires auth.
func (c *ProductController) Add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	bestSeller, _ := strconv.ParseBool(r.FormValue("bestSeller"))

	in := services.AddProductInput{
		ProductName: r.FormValue("productName"),
		Price:       price,
		Category:    bind.StringList(r.FormValue("category")),
		BestSeller:  bestSeller,
		Description: r.FormValue("description"),
	}

	image, err := saveUpload(r, "image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	in.Image = image

	product, err := c.products.Add(r.Context(), chi.URLParam(r, "firmId"), in)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	// Vendor views nest product lists, so the cached listing is stale now.
	services.InvalidateListCache()
	response.Success(w, map[string]interface{}{"product": product})
}

// ByFirm handles GET /products/{firmId}.
func (c *ProductController) ByFirm(w http.ResponseWriter, r *http.Request) {
	products, err := c.products.ByFirm(r.Context(), chi.URLParam(r, "firmId"))
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, map[string]interface{}{"products": products})
}

// Delete handles DELETE /product/{id}. Requires auth.
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.products.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.FromError(w, r, err)
		return
	}
	services.InvalidateListCache()
	response.Message(w, "Product deleted successfully")
}
