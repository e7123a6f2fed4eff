// Command sitectl manages the landing-page content store: bulk imports,
// image uploads, content inspection, and viewer preference updates.
//
// Usage:
//
//	sitectl import <bundle.json>
//	sitectl upload <image-file>
//	sitectl show <profile|products|testimonials>
//	sitectl set-lang <language>
//	sitectl set-theme <light|dark|toggle>
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	cloudstorage "cloud.google.com/go/storage"
	"go.uber.org/zap"

	"github.com/launchpage/api/internal/i18n"
	"github.com/launchpage/api/internal/imaging"
	"github.com/launchpage/api/internal/platform/config"
	pfirestore "github.com/launchpage/api/internal/platform/firestore"
	"github.com/launchpage/api/internal/platform/observability"
	"github.com/launchpage/api/internal/platform/requestctx"
	"github.com/launchpage/api/internal/platform/secrets"
	"github.com/launchpage/api/internal/repositories"
	firestoreRepo "github.com/launchpage/api/internal/repositories/firestore"
	"github.com/launchpage/api/internal/services"
	"github.com/launchpage/api/internal/uploader"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()

	baseLogger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()

	logger := baseLogger.Named("sitectl")
	ctx = observability.WithLogger(ctx, logger)

	fetcher, err := secrets.NewFetcher(ctx,
		secrets.WithLogger(logger),
		secrets.WithDefaultProject(os.Getenv("SITE_SECRETS_PROJECT_ID")),
	)
	if err != nil {
		logger.Fatal("failed to initialise secret fetcher", zap.Error(err))
	}
	defer func() {
		if err := fetcher.Close(); err != nil {
			logger.Warn("secret fetcher close error", zap.Error(err))
		}
	}()

	cfg, err := config.Load(ctx,
		config.WithSecretResolver(config.SecretResolverFunc(fetcher.Resolve)),
	)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	app := &app{ctx: ctx, cfg: cfg, logger: logger}
	defer app.close()

	if err := app.run(os.Args[1], os.Args[2:]); err != nil {
		switch {
		case repositories.IsNotFound(err):
			logger.Fatal("document not found", zap.String("command", os.Args[1]), zap.Error(err))
		case repositories.IsUnavailable(err):
			logger.Fatal("backend unavailable, retry later", zap.String("command", os.Args[1]), zap.Error(err))
		default:
			logger.Fatal("command failed", zap.String("command", os.Args[1]), zap.Error(err))
		}
	}
}

type app struct {
	ctx    context.Context
	cfg    config.Config
	logger *zap.Logger

	firestoreProvider *pfirestore.Provider
	storageClient     *cloudstorage.Client
}

func (a *app) run(command string, args []string) error {
	a.ctx = requestctx.WithOperation(a.ctx, command)

	switch command {
	case "import":
		return a.runImport(args)
	case "upload":
		return a.runUpload(args)
	case "show":
		return a.runShow(args)
	case "set-lang":
		return a.runSetLang(args)
	case "set-theme":
		return a.runSetTheme(args)
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) close() {
	if a.firestoreProvider != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.firestoreProvider.Close(closeCtx); err != nil {
			a.logger.Warn("firestore close error", zap.Error(err))
		}
	}
	if a.storageClient != nil {
		if err := a.storageClient.Close(); err != nil {
			a.logger.Warn("storage close error", zap.Error(err))
		}
	}
}

func (a *app) siteService() (services.SiteService, error) {
	a.firestoreProvider = pfirestore.NewProvider(a.cfg.Firestore)
	store, err := firestoreRepo.NewDocumentStore(a.firestoreProvider, a.cfg.Client.ID)
	if err != nil {
		return nil, fmt.Errorf("initialise document store: %w", err)
	}
	return services.NewSiteService(services.SiteServiceDeps{Store: store})
}

func (a *app) imageHost() (uploader.Host, error) {
	switch a.cfg.Uploader.Mode {
	case "gcs":
		client, err := cloudstorage.NewClient(a.ctx)
		if err != nil {
			return nil, fmt.Errorf("initialise storage client: %w", err)
		}
		a.storageClient = client
		return uploader.NewGCSHost(client, a.cfg.Uploader.Bucket)
	default:
		return uploader.NewHTTPHost(a.cfg.Uploader.Endpoint, a.cfg.Uploader.UploadPreset)
	}
}

func (a *app) runImport(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: sitectl import <bundle.json>")
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read bundle: %w", err)
	}

	site, err := a.siteService()
	if err != nil {
		return err
	}
	importer, err := services.NewImportService(services.ImportServiceDeps{Site: site})
	if err != nil {
		return err
	}

	summary, err := importer.ImportJSON(a.ctx, raw)
	if err != nil {
		return err
	}
	fmt.Printf("imported: profile=%v products=%d testimonials=%d\n",
		summary.ProfileSaved, summary.Products, summary.Testimonials)
	return nil
}

func (a *app) runUpload(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: sitectl upload <image-file>")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	host, err := a.imageHost()
	if err != nil {
		return err
	}
	up, err := uploader.New(uploader.Deps{
		Host: host,
		Imaging: imaging.Options{
			MaxSizeBytes: a.cfg.Imaging.MaxSizeBytes,
			MaxDimension: a.cfg.Imaging.MaxDimension,
		},
	})
	if err != nil {
		return err
	}

	file := imaging.File{
		Name:        filepath.Base(args[0]),
		ContentType: http.DetectContentType(data),
		Data:        data,
	}
	url, err := up.Upload(a.ctx, file)
	if err != nil {
		return err
	}
	fmt.Println(url)
	return nil
}

func (a *app) runShow(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: sitectl show <profile|products|testimonials>")
	}

	site, err := a.siteService()
	if err != nil {
		return err
	}

	var payload any
	switch args[0] {
	case "profile":
		profile, ok, err := site.GetProfile(a.ctx)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no profile stored for client %q", a.cfg.Client.ID)
		}
		payload = profile
	case "products":
		products, err := site.ListProducts(a.ctx)
		if err != nil {
			return err
		}
		payload = products
	case "testimonials":
		testimonials, err := site.ListTestimonials(a.ctx)
		if err != nil {
			return err
		}
		payload = testimonials
	default:
		return fmt.Errorf("unknown collection %q", args[0])
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func (a *app) runSetLang(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: sitectl set-lang <language>")
	}

	store, err := i18n.NewPrefsStore(a.cfg.Prefs.Path)
	if err != nil {
		return err
	}
	prefs, err := store.SetLanguage(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("language=%s (%s)\n", prefs.Language, i18n.Translate("nav.home", prefs.Language))
	return nil
}

func (a *app) runSetTheme(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: sitectl set-theme <light|dark|toggle>")
	}

	store, err := i18n.NewPrefsStore(a.cfg.Prefs.Path)
	if err != nil {
		return err
	}

	var prefs i18n.Preferences
	if strings.EqualFold(args[0], "toggle") {
		prefs, err = store.ToggleTheme()
	} else {
		prefs, err = store.SetTheme(strings.ToLower(args[0]))
	}
	if err != nil {
		return err
	}
	fmt.Printf("theme=%s\n", prefs.Theme)
	return nil
}

func usage() {
	fmt.Fprint(os.Stderr, `sitectl - landing-page content manager

commands:
  import <bundle.json>                   seed profile, products, and testimonials
  upload <image-file>                    normalize an image and upload it to the host
  show <profile|products|testimonials>   print stored content as JSON
  set-lang <language>                    persist the viewer language preference
  set-theme <light|dark|toggle>          persist the viewer theme preference
`)
}
