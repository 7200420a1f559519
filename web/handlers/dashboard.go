package handlers

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	ds "github.com/starfederation/datastar-go/datastar"

	"salesanalysis/events"
	"salesanalysis/models"
	"salesanalysis/plot"
	"salesanalysis/store"
	"salesanalysis/web"
)

// SalesAnalysis renders the sales analysis page: a line chart, the +/- controls, a bar chart and a pie chart, all
// fed by the counter of the view they belong to.
type SalesAnalysis struct {
	templates *template.Template
	plotter   *plot.Plotter
	eventHub  *events.EventHub
	logger    *slog.Logger

	mu    sync.Mutex
	views map[string]*models.View // viewID -> view
	now   func() time.Time
}

type chartView struct {
	ID      string
	Snippet template.HTML
}

type viewState struct {
	ID      string
	Counter int
}

func NewSalesAnalysis(plotter *plot.Plotter, eventHub *events.EventHub, logger *slog.Logger) (*SalesAnalysis, error) {
	templates, err := template.New("").ParseFS(web.Templates, web.DASHBOARD_TEMPLATES)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &SalesAnalysis{
		templates: templates,
		plotter:   plotter,
		eventHub:  eventHub,
		logger:    logger,
		views:     make(map[string]*models.View),
		now:       time.Now,
	}, nil
}

func (d *SalesAnalysis) Templates() *template.Template {
	return d.templates
}

func (d *SalesAnalysis) Handlers() map[string]func(w http.ResponseWriter, r *http.Request) {
	return map[string]func(w http.ResponseWriter, r *http.Request){
		"POST /increment": d.IncrementHandler,
		"POST /decrement": d.DecrementHandler,
	}
}

func (d *SalesAnalysis) Mount() (*models.View, error) {
	id, err := newViewID()
	if err != nil {
		return nil, err
	}

	view := models.NewView(id, d.now())

	d.mu.Lock()
	d.views[id] = view
	d.mu.Unlock()

	d.logger.Debug("mounted view", "view", id)
	return view, nil
}

func (d *SalesAnalysis) Unmount(viewID string) {
	d.mu.Lock()
	_, ok := d.views[viewID]
	delete(d.views, viewID)
	d.mu.Unlock()

	if ok {
		d.logger.Debug("unmounted view", "view", viewID)
	}
}

func (d *SalesAnalysis) View(viewID string) (*models.View, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	view, ok := d.views[viewID]
	return view, ok
}

func (d *SalesAnalysis) Sweep(now time.Time, maxAge time.Duration) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	swept := 0
	for id, view := range d.views {
		idle, ok := view.IdleSince()
		if !ok || now.Sub(idle) < maxAge {
			continue
		}
		delete(d.views, id)
		swept++
	}
	if swept > 0 {
		d.logger.Debug("swept abandoned views", "count", swept, "remaining", len(d.views))
	}
	return swept
}

// Data builds everything the index template needs to render the view as it currently stands.
func (d *SalesAnalysis) Data(view *models.View) (map[string]interface{}, error) {
	value := view.Value()

	charts := make(map[string]chartView, 3)
	for _, dataset := range store.Datasets(value) {
		chart, err := d.plotter.New(dataset, store.SharedOptions)
		if err != nil {
			return nil, err
		}
		id := plot.ChartID(dataset.Kind)
		charts[id] = chartView{ID: id, Snippet: plot.Snippet(chart)}
	}

	signals, err := viewSignals(view.ID())
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"title":   store.VIEW_LABEL,
		"label":   store.VIEW_LABEL,
		"assets":  d.plotter.Assets(),
		"signals": signals,
		"view":    viewState{ID: view.ID(), Counter: value},
		"charts":  charts,
	}, nil
}

// OnChange recomputes the three datasets from the view's counter and pushes them to the mounted charts.
func (d *SalesAnalysis) OnChange(sse *ds.ServerSentEventGenerator, view *models.View) error {
	value := view.Value()

	writer := strings.Builder{}
	if err := d.templates.ExecuteTemplate(&writer, "view.state", viewState{ID: view.ID(), Counter: value}); err != nil {
		d.logger.Error("couldn't execute view.state template", "view", view.ID(), "error", err)
	}
	if writer.String() != "" {
		if err := sse.PatchElements(writer.String()); err != nil {
			return err
		}
	}

	for _, dataset := range store.Datasets(value) {
		chart, err := d.plotter.New(dataset, store.SharedOptions)
		if err != nil {
			return err
		}
		if err := sse.ExecuteScript(plot.UpdateScript(chart, plot.ChartID(dataset.Kind))); err != nil {
			return err
		}
	}

	return nil
}

// IncrementHandler is called when the client clicks "+".
func (d *SalesAnalysis) IncrementHandler(w http.ResponseWriter, r *http.Request) {
	d.mutate(w, r, (*models.View).Increment)
}

// DecrementHandler is called when the client clicks "-".
func (d *SalesAnalysis) DecrementHandler(w http.ResponseWriter, r *http.Request) {
	d.mutate(w, r, (*models.View).Decrement)
}

func (d *SalesAnalysis) mutate(w http.ResponseWriter, r *http.Request, op func(*models.View) int) {
	viewID, err := readViewID(r)
	if err != nil {
		d.logger.Warn("bad counter request", "path", r.URL.Path, "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	view, ok := d.View(viewID)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	value := op(view)
	d.logger.Debug("counter changed", "view", viewID, "value", value)

	// The view's update stream picks this up and re-renders the charts.
	d.eventHub.Broadcast(&events.Event{ViewID: viewID, Value: value})

	w.WriteHeader(http.StatusNoContent)
}
