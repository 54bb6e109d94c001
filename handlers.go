package polysite

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/polything/polysite/content"
	"github.com/polything/polysite/head"
	"github.com/polything/polysite/logger"
	"github.com/polything/polysite/seo"
)

func (a *App) handleHome(c echo.Context) error {
	return a.renderEntry(c, content.Pages, content.HomeSlug)
}

func (a *App) handleEntry(col content.Collection) echo.HandlerFunc {
	return func(c echo.Context) error {
		return a.renderEntry(c, col, c.Param("slug"))
	}
}

func (a *App) renderEntry(c echo.Context, col content.Collection, slug string) error {
	e, ok, err := a.Cache.Lookup(col, slug)
	if err != nil {
		return err
	}
	if !ok {
		logger.Log.Debug("entry not found", "collection", col.Name, "slug", slug)
		return RenderStatus(c, http.StatusNotFound, head.Document(seo.MetadataFor(nil, col), nil, nil))
	}
	return Render(c, head.Document(seo.MetadataFor(e, col), seo.JSONLDFor(a.Config.URL, *e, col), e))
}

func (a *App) handleSEO(c echo.Context) error {
	col, ok := a.Config.Collection(c.Param("collection"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown collection")
	}
	e, found, err := a.Cache.Lookup(col, c.Param("slug"))
	if err != nil {
		return err
	}
	if !found {
		return c.JSON(http.StatusNotFound, NewSEOResponse(a.Config.URL, nil, col))
	}
	return c.JSON(http.StatusOK, NewSEOResponse(a.Config.URL, e, col))
}

func (a *App) handleParams(c echo.Context) error {
	col, ok := a.Config.Collection(c.Param("collection"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown collection")
	}
	snap, err := a.Cache.Snapshot()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, content.EnumerateSlugs(snap.ByKind(col.Kind), col.Filter))
}

func (a *App) handleSitemap(c echo.Context) error {
	snap, err := a.Cache.Snapshot()
	if err != nil {
		return err
	}
	return writeXML(c, "application/xml; charset=utf-8", NewSitemap(a.Config, snap))
}

func (a *App) handleFeed(c echo.Context) error {
	snap, err := a.Cache.Snapshot()
	if err != nil {
		return err
	}
	return writeXML(c, "application/rss+xml; charset=utf-8", NewFeed(a.Config, snap.Entries(content.Posts)))
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.String(http.StatusOK, RobotsTxt(a.Config))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}
	if code >= 500 {
		logger.Log.Error("server error",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Request().URL.Path),
			slog.Any("error", err),
		)
	}
	if code == http.StatusNotFound && !strings.HasPrefix(c.Request().URL.Path, "/api/") {
		_ = RenderStatus(c, http.StatusNotFound, head.Document(seo.MetadataFor(nil, content.Pages), nil, nil))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
