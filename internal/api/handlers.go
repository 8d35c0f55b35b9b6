// handlers.go - HTTP handlers for the dashboard, provisioning and download
package api

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lassejon/tempnode/internal/creds"
	"github.com/lassejon/tempnode/internal/netlink"
	"github.com/lassejon/tempnode/internal/web"
)

// Handler serves the node's HTTP surface.
type Handler struct {
	store        creds.Store
	logPath      string
	restarter    netlink.Restarter
	restartDelay time.Duration
}

// NewHandler creates a Handler.
func NewHandler(store creds.Store, logPath string, restarter netlink.Restarter, restartDelay time.Duration) *Handler {
	return &Handler{
		store:        store,
		logPath:      logPath,
		restarter:    restarter,
		restartDelay: restartDelay,
	}
}

// HandleDashboard serves the live-dashboard page.
func (h *Handler) HandleDashboard(c echo.Context) error {
	return servePage(c, "index.html")
}

// HandleProvisionPage serves the network provisioning form.
func (h *Handler) HandleProvisionPage(c echo.Context) error {
	return servePage(c, "wifimanager.html")
}

// HandleProvision persists the submitted credential fields and schedules the
// device restart. Fields absent from the submission are left unchanged; the
// restart happens unconditionally so any new setting takes effect.
func (h *Handler) HandleProvision(c echo.Context) error {
	params, err := c.FormParams()
	if err != nil {
		return NewBadRequestError("invalid form submission", err)
	}

	for _, field := range creds.Fields {
		values, ok := params[string(field)]
		if !ok || len(values) == 0 {
			continue
		}
		if err := h.store.Save(field, values[0]); err != nil {
			// Storage errors degrade: report, keep processing the rest.
			fmt.Printf("[Provision] Failed to save %s: %v\n", field, err)
			continue
		}
		fmt.Printf("[Provision] %s set to: %s\n", field, values[0])
	}

	ip := c.FormValue(string(creds.FieldIP))
	msg := fmt.Sprintf("Done. The device will restart; connect to your router and go to IP address: %s", ip)

	time.AfterFunc(h.restartDelay, h.restarter.Restart)

	return c.String(http.StatusOK, msg)
}

// HandleDownload serves the telemetry log as a CSV download, or a plain-text
// 404 when no log file exists yet.
func (h *Handler) HandleDownload(c echo.Context) error {
	f, err := os.Open(h.logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return c.String(http.StatusNotFound, "File not found")
		}
		return NewInternalError("failed to open log file", err)
	}
	defer f.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="data.csv"`)
	return c.Stream(http.StatusOK, "text/csv", f)
}

func servePage(c echo.Context, name string) error {
	content, err := web.Page(name)
	if err != nil {
		return NewInternalError("failed to load page "+name, err)
	}
	return c.HTMLBlob(http.StatusOK, content)
}
