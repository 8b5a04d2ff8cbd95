// Package web serves the portfolio page over HTTP.
package web

import (
	"bytes"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"

	"github.com/kyaoi/folio/internal/content"
)

// Options holds the page timings handed to the browser.
type Options struct {
	PreloadPeriod time.Duration
	RevealDelay   time.Duration
	TypingSpeed   time.Duration
	SkipPreloader bool
}

// Server renders the current site. The site can be swapped while serving.
type Server struct {
	site atomic.Pointer[content.Site]
	md   goldmark.Markdown
	opts Options
}

type sectionSummary struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Heading string `json:"heading"`
	Typed   string `json:"typed,omitempty"`
}

// NewServer returns a server for site.
func NewServer(site *content.Site, opts Options) *Server {
	s := &Server{md: newMarkdown(), opts: opts}
	s.site.Store(site)
	return s
}

// SetSite replaces the site served to subsequent requests.
func (s *Server) SetSite(site *content.Site) {
	s.site.Store(site)
}

// Site returns the site currently served.
func (s *Server) Site() *content.Site {
	return s.site.Load()
}

// Handler builds the HTTP routes.
func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogging())

	router.GET("/", s.handlePage)
	router.GET("/sections/:key", s.handleSection)
	router.GET("/api/sections", s.handleSections)
	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "not found")
	})
	return router
}

func (s *Server) handlePage(c *gin.Context) {
	site := s.Site()
	sections, err := renderSections(s.md, site)
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	var buf bytes.Buffer
	if err := pageNode(site, sections, s.opts).Render(&buf); err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// handleSection returns one section as an HTML fragment.
func (s *Server) handleSection(c *gin.Context) {
	site := s.Site()
	sec, ok := site.Section(c.Param("key"))
	if !ok {
		c.String(http.StatusNotFound, "unknown section %q", c.Param("key"))
		return
	}
	html, err := renderMarkdown(s.md, sec.Key, sec.Body)
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	headline, ok := site.Headline()
	rs := renderedSection{Section: sec, HTML: html, Headline: ok && headline.Key == sec.Key}

	var buf bytes.Buffer
	if err := sectionNode(rs).Render(&buf); err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleSections(c *gin.Context) {
	site := s.Site()
	out := make([]sectionSummary, 0, len(site.Sections))
	for _, sec := range site.Sections {
		out = append(out, sectionSummary{
			Key:     sec.Key,
			Label:   sec.Label,
			Heading: sec.Heading,
			Typed:   sec.Typed,
		})
	}
	c.JSON(http.StatusOK, out)
}
