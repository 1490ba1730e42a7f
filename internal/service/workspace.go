package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"seogen/internal/catalog"
	"seogen/internal/domain"
	"seogen/internal/port"
)

// WorkspaceState is the state of every lane plus the active tab.
type WorkspaceState struct {
	Active domain.Vertical `json:"active"`
	Lanes  []LaneState     `json:"lanes"`
}

// Workspace groups the four lanes and tracks which tab is shown.
type Workspace struct {
	tabs         []Tab
	byVertical   map[domain.Vertical]Tab
	advice       *Lane[domain.AdviceSeed, domain.AdviceArticle]
	prober       port.ConnectionProber
	defaultTheme string
	logger       *zap.Logger
	now          func() time.Time

	mu     sync.RWMutex
	active domain.Vertical
}

// NewWorkspace creates a Workspace over the four lanes, in navigation order.
func NewWorkspace(
	offres *Lane[domain.JobBasic, domain.JobOffer],
	entreprises *Lane[domain.CompanyBasic, domain.Company],
	ecoles *Lane[domain.SchoolBasic, domain.School],
	conseils *Lane[domain.AdviceSeed, domain.AdviceArticle],
	prober port.ConnectionProber,
	defaultTheme string,
	logger *zap.Logger,
) *Workspace {
	tabs := []Tab{offres, entreprises, ecoles, conseils}
	byVertical := make(map[domain.Vertical]Tab, len(tabs))
	for _, t := range tabs {
		byVertical[t.Vertical()] = t
	}
	if strings.TrimSpace(defaultTheme) == "" {
		defaultTheme = catalog.DefaultTheme
	}
	return &Workspace{
		tabs:         tabs,
		byVertical:   byVertical,
		advice:       conseils,
		prober:       prober,
		defaultTheme: defaultTheme,
		logger:       logger.Named("workspace"),
		now:          time.Now,
		active:       domain.VerticalOffres,
	}
}

// Active returns the vertical of the tab currently shown.
func (w *Workspace) Active() domain.Vertical {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.active
}

// Tabs returns every tab in navigation order.
func (w *Workspace) Tabs() []Tab {
	return w.tabs
}

// Tab returns the tab of a vertical.
func (w *Workspace) Tab(v domain.Vertical) (Tab, error) {
	t, ok := w.byVertical[v]
	if !ok {
		return nil, domain.ErrUnknownVertical
	}
	return t, nil
}

// Switch makes v the active tab and resets every lane to idle. Batches still
// running keep going but no longer update their lane.
func (w *Workspace) Switch(v domain.Vertical) error {
	if _, err := w.Tab(v); err != nil {
		return err
	}
	w.mu.Lock()
	w.active = v
	w.mu.Unlock()

	for _, t := range w.tabs {
		t.Reset()
	}
	w.logger.Debug("tab switched", zap.String("active", string(v)))
	return nil
}

// ReloadAll loads every vertical from the store concurrently.
func (w *Workspace) ReloadAll(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, t := range w.tabs {
		g.Go(func() error {
			t.Reload(gctx)
			return nil
		})
	}
	return g.Wait()
}

// TestConnection probes the record store.
func (w *Workspace) TestConnection(ctx context.Context) bool {
	return w.prober.TestConnection(ctx)
}

// State returns the state of every lane.
func (w *Workspace) State() WorkspaceState {
	state := WorkspaceState{Active: w.Active(), Lanes: make([]LaneState, len(w.tabs))}
	for i, t := range w.tabs {
		state.Lanes[i] = t.State()
	}
	return state
}

// StartAdvice seeds an advice article from a title and a theme and generates
// it in the background. An empty title is reported on the advice lane and
// nothing is started.
func (w *Workspace) StartAdvice(ctx context.Context, title, theme string, model domain.Model) error {
	seed, err := w.adviceSeed(title, theme)
	if err != nil {
		return w.advice.reject(err)
	}
	return w.advice.StartGenerate(ctx, []domain.AdviceSeed{seed}, model)
}

// GenerateAdvice is the blocking form of StartAdvice.
func (w *Workspace) GenerateAdvice(ctx context.Context, title, theme string, model domain.Model) (*domain.AdviceArticle, error) {
	seed, err := w.adviceSeed(title, theme)
	if err != nil {
		return nil, w.advice.reject(err)
	}
	articles, err := w.advice.Generate(ctx, []domain.AdviceSeed{seed}, model)
	if err != nil {
		return nil, err
	}
	return &articles[0], nil
}

func (w *Workspace) adviceSeed(title, theme string) (domain.AdviceSeed, error) {
	if strings.TrimSpace(theme) == "" {
		theme = w.defaultTheme
	}
	return catalog.NewAdviceSeed(title, theme, w.now())
}

// Wait blocks until every running batch has finished.
func (w *Workspace) Wait() {
	for _, t := range w.tabs {
		t.Wait()
	}
}
