// Package http exposes the read-only resource API on a chi router.
//
// Routes mount under the configured base path (default /iwp/v1):
//   - One resource per REST-visible content kind: /{base}, /{base}/{id}, /{base}/{slug}
//   - Menus: /menus, /menus/{id}, /menus/{location}
//
// Numeric path segments always resolve as ids.
package http
