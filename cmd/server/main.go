// @title         seogen API
// @version       1.0
// @description   Turns uploaded documents into SEO-ready job offers, company and school profiles, and writes advice articles.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	_ "seogen/docs"
	"seogen/internal/catalog"
	"seogen/internal/config"
	"seogen/internal/domain"
	"seogen/internal/enrich"
	"seogen/internal/extract"
	"seogen/internal/handler"
	"seogen/internal/llm"
	"seogen/internal/llm/deepseek"
	"seogen/internal/llm/gemini"
	"seogen/internal/logger"
	"seogen/internal/port"
	"seogen/internal/render"
	"seogen/internal/repository/noop"
	"seogen/internal/repository/postgres"
	"seogen/internal/router"
	"seogen/internal/service"
	s3storage "seogen/internal/storage/s3"
	"seogen/internal/web"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// stores holds the record store of each vertical.
type stores struct {
	offres      port.RecordStore[domain.JobOffer]
	entreprises port.RecordStore[domain.Company]
	ecoles      port.RecordStore[domain.School]
	conseils    port.RecordStore[domain.AdviceArticle]
	prober      port.ConnectionProber
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zl, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Generation backends
	llm.RegisterProvider("gemini", gemini.New)
	llm.RegisterProvider("deepseek", deepseek.New)

	primary, err := llm.NewGenerator(&cfg.LLM.Primary, zl)
	if err != nil {
		return fmt.Errorf("failed to create primary generator: %w", err)
	}
	if !cfg.LLM.Primary.HasKey() {
		zl.Warn("primary model key missing, extraction and generation will fail until it is set",
			zap.String("provider", cfg.LLM.Primary.Provider))
	}

	var alternate llm.Generator
	if altCfg := cfg.LLM.AlternateConfig(); altCfg != nil {
		alt, err := llm.NewGenerator(altCfg, zl)
		if err != nil {
			return fmt.Errorf("failed to create alternate generator: %w", err)
		}
		alternate = llm.NewFallbackGenerator(
			[]llm.Generator{alt, primary},
			[]string{altCfg.Provider, cfg.LLM.Primary.Provider},
			zl.Named("fallback"),
		)
		zl.Info("alternate model enabled", zap.String("provider", altCfg.Provider), zap.Bool("key", altCfg.HasKey()))
	}

	// Record stores
	var db *sqlx.DB
	var st stores
	if cfg.DB.Enabled() {
		db, err = postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		postgres.Ping(ctx, db, zl)

		st = stores{
			offres:      postgres.NewRecordRepo[domain.JobOffer](db, catalog.Offres.Table, zl),
			entreprises: postgres.NewRecordRepo[domain.Company](db, catalog.Entreprises.Table, zl),
			ecoles:      postgres.NewRecordRepo[domain.School](db, catalog.Ecoles.Table, zl),
			conseils:    postgres.NewRecordRepo[domain.AdviceArticle](db, catalog.Conseils.Table, zl),
			prober:      postgres.NewProber(db, zl),
		}
	} else {
		zl.Warn("no database configured, records are kept in memory only")
		st = stores{
			offres:      noop.NewStore[domain.JobOffer](domain.VerticalOffres, zl),
			entreprises: noop.NewStore[domain.Company](domain.VerticalEntreprises, zl),
			ecoles:      noop.NewStore[domain.School](domain.VerticalEcoles, zl),
			conseils:    noop.NewStore[domain.AdviceArticle](domain.VerticalConseils, zl),
			prober:      noop.NewProber(zl),
		}
	}

	// Source document archive
	laneCfg := service.LaneConfig{CompletedReset: cfg.Pipeline.CompletedReset}
	if cfg.S3.Enabled() {
		s3Client, err := s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		laneCfg.Archive = &service.Archive{Storage: s3Client, Bucket: cfg.S3.Bucket, Prefix: cfg.S3.Prefix}
		zl.Info("source documents archived", zap.String("bucket", cfg.S3.Bucket))
	}

	// Pipelines
	offresEx, err := extract.New(catalog.Offres, primary, zl)
	if err != nil {
		return err
	}
	entreprisesEx, err := extract.New(catalog.Entreprises, primary, zl)
	if err != nil {
		return err
	}
	ecolesEx, err := extract.New(catalog.Ecoles, primary, zl)
	if err != nil {
		return err
	}

	ws := service.NewWorkspace(
		service.NewLane(catalog.Offres, offresEx,
			enrich.New(catalog.Offres, primary, alternate, zl), st.offres, laneCfg, zl),
		service.NewLane(catalog.Entreprises, entreprisesEx,
			enrich.New(catalog.Entreprises, primary, alternate, zl), st.entreprises, laneCfg, zl),
		service.NewLane(catalog.Ecoles, ecolesEx,
			enrich.New(catalog.Ecoles, primary, alternate, zl), st.ecoles, laneCfg, zl),
		service.NewLane[domain.AdviceSeed, domain.AdviceArticle](catalog.Conseils, nil,
			enrich.New(catalog.Conseils, primary, alternate, zl), st.conseils, laneCfg, zl),
		st.prober,
		cfg.Pipeline.DefaultTheme,
		zl,
	)
	if err := ws.ReloadAll(ctx); err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	// Initialize handlers
	maxBytes := cfg.Upload.MaxBytes()
	h := router.Handlers{
		Health:    handler.NewHealthHandler(db),
		Workspace: handler.NewWorkspaceHandler(ws, zl),
		Advice:    handler.NewAdviceHandler(ws, zl),
		Web:       web.NewHandler(ws, render.New(), maxBytes, zl),
	}
	for _, tab := range ws.Tabs() {
		h.Verticals = append(h.Verticals, router.VerticalHandlers{
			Vertical: tab.Vertical(),
			Records:  handler.NewRecordHandler(tab, maxBytes, zl),
			Exports:  handler.NewExportHandler(tab, zl),
		})
	}

	tpl, err := web.Templates()
	if err != nil {
		return err
	}
	r := router.Setup(h, tpl, cfg.CORS.AllowedOrigins, zl)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server starting", zap.String("addr", cfg.Server.Port), zap.String("env", cfg.Server.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	// let running batches save what they produced
	done := make(chan struct{})
	go func() {
		ws.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		zl.Warn("running batches abandoned at shutdown")
	}
	return nil
}
