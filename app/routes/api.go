package routes

import (
	"net/http"

	"github.com/shashiranjanraj/suby/app/controllers"
	"github.com/shashiranjanraj/suby/pkg/metrics"
	"github.com/shashiranjanraj/suby/pkg/response"
	"github.com/shashiranjanraj/suby/pkg/router"
)

// Controllers bundles the wired controller set for route registration.
type Controllers struct {
	Vendor  *controllers.VendorController
	Firm    *controllers.FirmController
	Product *controllers.ProductController
}

// RegisterAPI mounts the application routes. authed is the credential
// verification middleware applied to mutating firm/product routes.
func RegisterAPI(r *router.Router, c Controllers, authed router.Middleware) {
	r.Get("/", "home", func(w http.ResponseWriter, _ *http.Request) {
		response.Message(w, "Welcome to SUBY")
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	vendor := r.Group("/vendor")
	vendor.Post("/register", "vendor.register", c.Vendor.Register)
	vendor.Post("/login", "vendor.login", c.Vendor.Login)
	vendor.Get("/all-vendors", "vendor.all", c.Vendor.All)
	vendor.Get("/{id}", "vendor.get", c.Vendor.Get)
	vendor.Delete("/{id}", "vendor.delete", c.Vendor.Delete)

	firm := r.Group("/firm")
	firm.Get("/uploads/{imageName}", "firm.image", c.Firm.ServeImage)
	firm.Get("/{id}", "firm.get", c.Firm.Get)
	firm.Post("/add-firm", "firm.add", c.Firm.Add, authed)
	firm.Delete("/{id}", "firm.delete", c.Firm.Delete, authed)

	r.Get("/products/{firmId}", "product.byFirm", c.Product.ByFirm)

	product := r.Group("/product")
	product.Post("/add-product/{firmId}", "product.add", c.Product.Add, authed)
	product.Delete("/{id}", "product.delete", c.Product.Delete, authed)
}
