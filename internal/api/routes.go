// routes.go - Route registration per boot mode
package api

import (
	"github.com/labstack/echo/v4"

	"github.com/lassejon/tempnode/internal/web"
)

// RegisterConnected registers the station-mode routes: the live dashboard,
// the log download and the live channel.
func RegisterConnected(e *echo.Echo, h *Handler, hub *Hub) error {
	e.GET("/", h.HandleDashboard)
	e.GET("/download", h.HandleDownload)
	e.GET("/ws", hub.HandleWebSocket)
	return web.RegisterStaticRoutes(e)
}

// RegisterFallback registers the access-point-mode routes: the provisioning
// form and its submission endpoint.
func RegisterFallback(e *echo.Echo, h *Handler) error {
	e.GET("/", h.HandleProvisionPage)
	e.POST("/", h.HandleProvision)
	return web.RegisterStaticRoutes(e)
}
