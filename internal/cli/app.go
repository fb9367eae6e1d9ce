package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gmfgallery/internal/config"
	"github.com/dmitrijs2005/gmfgallery/internal/ingest"
	"github.com/dmitrijs2005/gmfgallery/internal/logging"
	"github.com/dmitrijs2005/gmfgallery/internal/models"
	"github.com/dmitrijs2005/gmfgallery/internal/repositories/repomanager"
	"github.com/dmitrijs2005/gmfgallery/internal/services"
)

// sessionGuard is the part of services.SessionService the console uses.
type sessionGuard interface {
	CheckCredential(ctx context.Context, candidate string) (bool, error)
	SetCredential(ctx context.Context, value string) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	IsAuthenticated(ctx context.Context) (bool, error)
}

// galleryStore is the part of services.GalleryService the console uses.
type galleryStore interface {
	ListImages(ctx context.Context) ([]models.GalleryImage, error)
	ListImagesOrEmpty(ctx context.Context) []models.GalleryImage
	FindImage(ctx context.Context, id string) (*models.GalleryImage, error)
	AddImage(ctx context.Context, payload models.ImagePayload, description string) (*models.GalleryImage, error)
	DeleteImageDetailed(ctx context.Context, image models.GalleryImage) (services.DeleteResult, error)
}

type App struct {
	config     *config.Config
	log        logging.Logger
	session    sessionGuard
	gallery    galleryStore
	normalizer *ingest.Normalizer
	repos      *repomanager.Repositories
	reader     *bufio.Reader
	out        io.Writer
}

var openRepositories = repomanager.Open

// NewApp opens the configured backends and builds the services on top.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	repos, err := openRepositories(ctx, c, log)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	session, err := services.NewSessionService(ctx, repos.LocalState, c.DefaultCredential, log)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	gallery := services.NewGalleryService(repos.Images, repos.Blobs, log)

	a := newApp(c, log, session, gallery, os.Stdin, os.Stdout)
	a.repos = repos
	return a, nil
}

func newApp(c *config.Config, log logging.Logger, session sessionGuard, gallery galleryStore, in io.Reader, out io.Writer) *App {
	return &App{
		config:     c,
		log:        log,
		session:    session,
		gallery:    gallery,
		normalizer: ingest.NewNormalizer(),
		reader:     bufio.NewReader(in),
		out:        out,
	}
}

// Run drives the REPL until exit or end of input, then releases the backends.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.repos != nil {
			if err := a.repos.Close(); err != nil {
				a.log.Error(ctx, "error closing storage", "error", err)
			}
		}
	}()

	fmt.Fprintln(a.out, "Welcome to the GMF gallery console (type 'help' for commands)")
	runREPL(ctx, a, a.reader, a.out)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	ok, err := a.session.IsAuthenticated(ctx)
	if err != nil {
		a.log.Error(ctx, "error reading admin session", "error", err)
		return false
	}
	return ok
}

func (a *App) prompt(ctx context.Context) string {
	if a.isLoggedIn(ctx) {
		return "gallery (admin)> "
	}
	return "gallery> "
}
