package auth

import "context"

// ctxKey is the unexported key for the authenticated vendor id.
type ctxKey struct{}

// WithVendorID stores the resolved vendor id in ctx.
func WithVendorID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// VendorIDFromCtx returns the vendor id attached by the auth middleware.
// The second return is false on unauthenticated requests.
func VendorIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}
