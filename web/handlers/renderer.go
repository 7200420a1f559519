package handlers

import (
	"html/template"
	"net/http"
	"time"

	ds "github.com/starfederation/datastar-go/datastar"

	"salesanalysis/models"
)

type Renderer interface {
	Templates() *template.Template
	Handlers() map[string]func(w http.ResponseWriter, r *http.Request)
	// Mount creates a new view with a fresh counter.
	Mount() (*models.View, error)
	Unmount(viewID string)
	View(viewID string) (*models.View, bool)
	Data(view *models.View) (map[string]interface{}, error)
	// OnChange patches a client so it shows the view's current state.
	OnChange(sse *ds.ServerSentEventGenerator, view *models.View) error
	// Sweep unmounts views that have had no update stream for maxAge, counted from mount or from the last detach.
	Sweep(now time.Time, maxAge time.Duration) int
}
