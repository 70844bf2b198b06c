// Command files-sandbox runs a local files-manager emulation backed by
// the in-memory mock store, so the seeder and client can be exercised
// without the real service. Latency and failure injection mirror the
// knobs a flaky deployment would exhibit.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/OluchukwuJoseph/alx-files-manager/pkg/filemanager"
	"github.com/OluchukwuJoseph/alx-files-manager/pkg/filemanager/mock"
)

type failConfig struct {
	rate float64
	code int
}

func main() {
	addr := flag.String("addr", ":5000", "listen address")
	seedPath := flag.String("seed", "", "path to JSON seed manifest")
	latency := flag.Duration("latency", 0, "artificial latency to inject per request")
	fail := flag.String("fail", "", "failure injection (rate=<float>,code=<httpStatus>)")
	flag.Parse()

	store := mock.New()
	if *seedPath != "" {
		entries, err := loadSeed(*seedPath)
		if err != nil {
			log.Fatalf("load seed manifest: %v", err)
		}
		if err := store.Seed(entries); err != nil {
			log.Fatalf("apply seed manifest: %v", err)
		}
	}
	failCfg, err := parseFailConfig(*fail)
	if err != nil {
		log.Fatalf("parse fail flag: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(injectMiddleware(*latency, failCfg))

	s := &sandbox{store: store}
	e.GET("/status", s.status)
	e.GET("/stats", s.stats)

	authed := e.Group("", requireToken)
	authed.POST("/files", s.createFile)
	authed.GET("/files", s.listFiles)
	authed.GET("/files/:id", s.getFile)
	authed.PUT("/files/:id/publish", s.publish(true))
	authed.PUT("/files/:id/unpublish", s.publish(false))
	authed.GET("/files/:id/data", s.fileData)

	host := *addr
	if strings.HasPrefix(host, ":") {
		host = "localhost" + host
	}
	log.Printf("files-sandbox listening on %s", *addr)
	fmt.Println()
	fmt.Printf("export FILES_API_URL=http://%s\n", host)
	fmt.Println()

	if err := e.Start(*addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server failed: %v", err)
	}
}

type sandbox struct {
	store *mock.Mock
}

func (s *sandbox) status(c echo.Context) error {
	status, err := s.store.Status(c.Request().Context())
	if err != nil {
		return sandboxError(c, err)
	}
	return c.JSON(http.StatusOK, status)
}

func (s *sandbox) stats(c echo.Context) error {
	stats, err := s.store.Stats(c.Request().Context())
	if err != nil {
		return sandboxError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (s *sandbox) createFile(c echo.Context) error {
	var req filemanager.FileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	}
	doc, err := s.store.CreateFile(c.Request().Context(), req)
	if err != nil {
		return sandboxError(c, err)
	}
	return c.JSON(http.StatusCreated, doc)
}

func (s *sandbox) getFile(c echo.Context) error {
	doc, err := s.store.GetFile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return sandboxError(c, err)
	}
	return c.JSON(http.StatusOK, doc)
}

func (s *sandbox) listFiles(c echo.Context) error {
	parentID := int64(0)
	if raw := c.QueryParam("parentId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorBody("invalid parentId"))
		}
		parentID = parsed
	}
	page := 0
	if raw := c.QueryParam("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return c.JSON(http.StatusBadRequest, errorBody("invalid page"))
		}
		page = parsed
	}
	docs, err := s.store.ListFiles(c.Request().Context(), parentID, page)
	if err != nil {
		return sandboxError(c, err)
	}
	return c.JSON(http.StatusOK, docs)
}

func (s *sandbox) publish(public bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		doc, err := s.store.SetPublic(c.Request().Context(), c.Param("id"), public)
		if err != nil {
			return sandboxError(c, err)
		}
		return c.JSON(http.StatusOK, doc)
	}
}

func (s *sandbox) fileData(c echo.Context) error {
	data, err := s.store.FileData(c.Request().Context(), c.Param("id"))
	if err != nil {
		return sandboxError(c, err)
	}
	return c.Blob(http.StatusOK, http.DetectContentType(data), data)
}

// requireToken rejects requests without an X-Token header the way the
// real service does. Any non-empty credential is accepted.
func requireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if strings.TrimSpace(c.Request().Header.Get("X-Token")) == "" {
			return c.JSON(http.StatusUnauthorized, errorBody("Unauthorized"))
		}
		return next(c)
	}
}

func injectMiddleware(delay time.Duration, failCfg failConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if delay > 0 {
				time.Sleep(delay)
			}
			if failCfg.rate > 0 && rand.Float64() < failCfg.rate {
				status := failCfg.code
				if status == 0 {
					status = http.StatusInternalServerError
				}
				return c.JSON(status, errorBody("failure injected"))
			}
			return next(c)
		}
	}
}

func sandboxError(c echo.Context, err error) error {
	var validation mock.ValidationError
	switch {
	case errors.As(err, &validation):
		return c.JSON(http.StatusBadRequest, errorBody(validation.Error()))
	case errors.Is(err, filemanager.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorBody("Not found"))
	default:
		return c.JSON(http.StatusInternalServerError, errorBody(err.Error()))
	}
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func loadSeed(path string) ([]mock.SeedEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []mock.SeedEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return entries, nil
}

func parseFailConfig(raw string) (failConfig, error) {
	if strings.TrimSpace(raw) == "" {
		return failConfig{}, nil
	}
	cfg := failConfig{code: http.StatusInternalServerError}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		keyVal := strings.SplitN(part, "=", 2)
		if len(keyVal) != 2 {
			return failConfig{}, fmt.Errorf("invalid fail segment %q", part)
		}
		switch strings.TrimSpace(keyVal[0]) {
		case "rate":
			val, err := strconv.ParseFloat(strings.TrimSpace(keyVal[1]), 64)
			if err != nil {
				return failConfig{}, err
			}
			cfg.rate = val
		case "code":
			val, err := strconv.Atoi(strings.TrimSpace(keyVal[1]))
			if err != nil {
				return failConfig{}, err
			}
			cfg.code = val
		default:
			return failConfig{}, fmt.Errorf("unknown fail key %q", keyVal[0])
		}
	}
	return cfg, nil
}
