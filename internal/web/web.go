// Package web serves the server-rendered workspace: one tab per vertical with
// its upload or title form, the lane status and the record cards.
package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"seogen/internal/catalog"
	"seogen/internal/domain"
	"seogen/internal/handler"
	"seogen/internal/render"
	"seogen/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	tpl, err := template.New("").Funcs(template.FuncMap{
		"dict": dict,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return tpl, nil
}

// dict builds a map from alternating keys and values, for passing several
// values to a nested template.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

// Handler serves the HTML pages.
type Handler struct {
	ws       *service.Workspace
	renderer *render.Renderer
	maxBytes int64
	logger   *zap.Logger
}

// NewHandler creates a new Handler.
func NewHandler(ws *service.Workspace, renderer *render.Renderer, maxBytes int64, logger *zap.Logger) *Handler {
	return &Handler{
		ws:       ws,
		renderer: renderer,
		maxBytes: maxBytes,
		logger:   logger.Named("web"),
	}
}

type navItem struct {
	Vertical domain.Vertical
	Label    string
	Accent   string
	Active   bool
}

type banner struct {
	Kind    string
	Message string
}

type modelOption struct {
	Value    domain.Model
	Label    string
	Selected bool
}

type tabPage struct {
	Nav          []navItem
	Vertical     domain.Vertical
	Copy         catalog.Copy
	Uploads      bool
	Busy         bool
	Banner       *banner
	Connection   *banner
	Models       []modelOption
	DefaultTheme string
	Cards        []catalog.Card
	Count        int
}

type detailPage struct {
	Nav         []navItem
	Vertical    domain.Vertical
	Copy        catalog.Copy
	Card        catalog.Card
	Body        template.HTML
	Outline     []render.Heading
	ReadingTime string
}

// Index handles GET /
func (h *Handler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, tabPath(h.ws.Active()))
}

// Tab handles GET /tabs/:vertical. Opening a tab other than the active one is
// a tab switch and resets every lane.
func (h *Handler) Tab(c *gin.Context) {
	tab, ok := h.tab(c)
	if !ok {
		return
	}
	h.activate(tab.Vertical())

	state := tab.State()
	cards := tab.Cards()
	page := tabPage{
		Nav:          h.nav(tab.Vertical()),
		Vertical:     tab.Vertical(),
		Copy:         tab.Copy(),
		Uploads:      tab.AcceptsUploads(),
		Busy:         state.Status == domain.StatusExtracting || state.Status == domain.StatusGenerating,
		Banner:       statusBanner(state, tab.Copy(), c.Query("error")),
		Connection:   connectionBanner(c.Query("db")),
		Models:       modelOptions(c.Query("model")),
		DefaultTheme: catalog.DefaultTheme,
		Cards:        cards,
		Count:        len(cards),
	}
	c.HTML(http.StatusOK, "tab.html", page)
}

// Record handles GET /tabs/:vertical/records/:id
func (h *Handler) Record(c *gin.Context) {
	tab, ok := h.tab(c)
	if !ok {
		return
	}
	card, err := tab.Card(c.Param("id"))
	if err != nil {
		h.notFound(c, "Élément introuvable.")
		return
	}

	doc, err := h.renderer.Render(card.Body)
	if err != nil {
		h.logger.Error("rendering record body", zap.String("id", card.ID), zap.Error(err))
		c.String(http.StatusInternalServerError, "Erreur d'affichage.")
		return
	}

	c.HTML(http.StatusOK, "record.html", detailPage{
		Nav:         h.nav(tab.Vertical()),
		Vertical:    tab.Vertical(),
		Copy:        tab.Copy(),
		Card:        card,
		Body:        doc.HTML,
		Outline:     doc.Outline,
		ReadingTime: doc.ReadingTime(),
	})
}

// Upload handles POST /tabs/:vertical/upload. An absent file leaves the lane
// untouched.
func (h *Handler) Upload(c *gin.Context) {
	tab, ok := h.tab(c)
	if !ok {
		return
	}
	model, err := domain.ParseModel(c.PostForm("model"))
	if err != nil {
		h.back(c, tab.Vertical(), model, err, tab.Messages())
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.back(c, tab.Vertical(), model, nil, tab.Messages())
		return
	}
	defer func() { _ = file.Close() }()

	h.activate(tab.Vertical())
	doc, err := handler.ReadUpload(file, header, h.maxBytes)
	if err == nil {
		err = tab.StartDocument(c.Request.Context(), doc, model)
	}
	h.back(c, tab.Vertical(), model, err, tab.Messages())
}

// Generate handles POST /tabs/conseils/generate
func (h *Handler) Generate(c *gin.Context) {
	tab, ok := h.tab(c)
	if !ok {
		return
	}
	if tab.AcceptsUploads() {
		h.notFound(c, "Onglet inconnu.")
		return
	}
	h.activate(tab.Vertical())
	model, err := domain.ParseModel(c.PostForm("model"))
	if err == nil {
		err = h.ws.StartAdvice(c.Request.Context(), c.PostForm("titre"), c.PostForm("thematique"), model)
	}
	// a missing title is already shown by the advice lane
	if errors.Is(err, domain.ErrMissingTitle) {
		err = nil
	}
	h.back(c, domain.VerticalConseils, model, err, catalog.Conseils.Messages)
}

// Connection handles POST /diagnostics/connection
func (h *Handler) Connection(c *gin.Context) {
	result := "fail"
	if h.ws.TestConnection(c.Request.Context()) {
		result = "ok"
	}
	c.Redirect(http.StatusSeeOther, tabPath(h.ws.Active())+"?db="+result)
}

func (h *Handler) tab(c *gin.Context) (service.Tab, bool) {
	v, err := domain.ParseVertical(c.Param("vertical"))
	if err != nil {
		h.notFound(c, "Onglet inconnu.")
		return nil, false
	}
	tab, err := h.ws.Tab(v)
	if err != nil {
		h.notFound(c, "Onglet inconnu.")
		return nil, false
	}
	return tab, true
}

// activate switches to v unless it is already the active tab, so that
// reloading a page never detaches its own running batch.
func (h *Handler) activate(v domain.Vertical) {
	if v != h.ws.Active() {
		_ = h.ws.Switch(v)
	}
}

func (h *Handler) notFound(c *gin.Context, msg string) {
	c.HTML(http.StatusNotFound, "notfound.html", gin.H{"Nav": h.nav(h.ws.Active()), "Message": msg})
}

// back redirects to the tab page, carrying err as a banner when the lane does
// not show it itself.
func (h *Handler) back(c *gin.Context, v domain.Vertical, model domain.Model, err error, msgs domain.Messages) {
	q := url.Values{}
	if model != "" {
		q.Set("model", string(model))
	}
	if err != nil {
		h.logger.Info("request refused", zap.String("vertical", string(v)), zap.Error(err))
		q.Set("error", domain.UserMessage(err, msgs))
	}
	target := tabPath(v)
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	c.Redirect(http.StatusSeeOther, target)
}

func (h *Handler) nav(active domain.Vertical) []navItem {
	tabs := h.ws.Tabs()
	items := make([]navItem, len(tabs))
	for i, t := range tabs {
		items[i] = navItem{
			Vertical: t.Vertical(),
			Label:    t.Copy().Label,
			Accent:   t.Copy().Accent,
			Active:   t.Vertical() == active,
		}
	}
	return items
}

func tabPath(v domain.Vertical) string {
	return "/tabs/" + string(v)
}

func statusBanner(state service.LaneState, tabCopy catalog.Copy, refused string) *banner {
	switch {
	case refused != "":
		return &banner{Kind: "error", Message: refused}
	case state.Error != "":
		return &banner{Kind: "error", Message: state.Error}
	case state.Status == domain.StatusExtracting:
		return &banner{Kind: "progress", Message: "Extraction des données..."}
	case state.Status == domain.StatusGenerating && state.Vertical == domain.VerticalConseils:
		return &banner{Kind: "progress", Message: "Rédaction de l'article en cours..."}
	case state.Status == domain.StatusGenerating:
		return &banner{Kind: "progress", Message: "Rédaction SEO IA..."}
	case state.Status == domain.StatusCompleted:
		return &banner{Kind: "success", Message: tabCopy.SuccessMessage}
	}
	return nil
}

func connectionBanner(result string) *banner {
	switch result {
	case "ok":
		return &banner{Kind: "success", Message: handler.ConnectionMessage(true)}
	case "fail":
		return &banner{Kind: "error", Message: handler.ConnectionMessage(false)}
	}
	return nil
}

func modelOptions(selected string) []modelOption {
	model, err := domain.ParseModel(selected)
	if err != nil {
		model = domain.ModelGemini
	}
	return []modelOption{
		{Value: domain.ModelGemini, Label: "Gemini", Selected: model == domain.ModelGemini},
		{Value: domain.ModelDeepSeek, Label: "DeepSeek", Selected: model == domain.ModelDeepSeek},
	}
}
