package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kyaoi/folio/internal/content"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testSite(t *testing.T, variant string) *content.Site {
	t.Helper()
	v, ok := content.Builtin(variant)
	if !ok {
		t.Fatalf("no builtin variant %q", variant)
	}
	site, err := content.Assemble(v, []content.Section{
		{Key: "home", Typed: "Hello, I'm Your Name", Body: "Intro **text**."},
		{Key: "about", Heading: "About me", Body: "- one\n- two"},
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	return site
}

func testOptions() Options {
	return Options{
		PreloadPeriod: 500 * time.Millisecond,
		RevealDelay:   800 * time.Millisecond,
		TypingSpeed:   50 * time.Millisecond,
	}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	h.ServeHTTP(rec, req)
	return rec
}

func TestPageRendersSections(t *testing.T) {
	srv := NewServer(testSite(t, "noir"), testOptions())
	rec := get(t, srv.Handler(), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		`class="loading"`,
		`data-preload-period="500"`,
		`data-reveal-delay="800"`,
		`data-typing-speed="50"`,
		`data-skip-preloader="false"`,
		`<section id="home" data-tab="Home">`,
		`<section id="about" data-tab="About">`,
		`<section id="contact" data-tab="Contact">`,
		`data-typed="Hello, I&#39;m Your Name"`,
		"<strong>text</strong>",
		"<li>one</li>",
		"<h1>About me</h1>",
		`--bg:#171717;`,
		"yourname.dev",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Index(body, `id="home"`) > strings.Index(body, `id="about"`) {
		t.Fatalf("sections out of tab order")
	}
}

func TestPageFirstTabActive(t *testing.T) {
	srv := NewServer(testSite(t, "pastel"), testOptions())
	body := get(t, srv.Handler(), "/").Body.String()
	if !strings.Contains(body, `data-tab="Hi!" class="active"`) {
		t.Fatalf("first tab not active")
	}
	if strings.Count(body, `class="active"`) != 1 {
		t.Fatalf("expected exactly one active tab")
	}
	if !strings.Contains(body, "--header:linear-gradient(90deg,#aec6cf,#fce1e4,#fcd5ce);") {
		t.Fatalf("gradient header missing")
	}
}

func TestPageSkipPreloader(t *testing.T) {
	opts := testOptions()
	opts.SkipPreloader = true
	srv := NewServer(testSite(t, "noir"), opts)
	body := get(t, srv.Handler(), "/").Body.String()
	if strings.Contains(body, `class="loading"`) {
		t.Fatalf("body still loading")
	}
	if !strings.Contains(body, `data-skip-preloader="true"`) {
		t.Fatalf("skip flag missing")
	}
}

func TestHeadlineSpeedOverridesDefault(t *testing.T) {
	v, _ := content.Builtin("mono")
	site, err := content.Assemble(v, []content.Section{
		{Key: "home", Typed: "Hi", Speed: 120 * time.Millisecond},
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	body := get(t, NewServer(site, testOptions()).Handler(), "/").Body.String()
	if !strings.Contains(body, `data-typing-speed="120"`) {
		t.Fatalf("section speed not applied")
	}
}

func TestSectionFragment(t *testing.T) {
	srv := NewServer(testSite(t, "noir"), testOptions())
	rec := get(t, srv.Handler(), "/sections/about")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, `<section id="about"`) || !strings.Contains(body, "<li>two</li>") {
		t.Fatalf("unexpected fragment: %s", body)
	}

	rec = get(t, srv.Handler(), "/sections/nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown section status = %d", rec.Code)
	}
}

func TestSectionsAPI(t *testing.T) {
	srv := NewServer(testSite(t, "noir"), testOptions())
	rec := get(t, srv.Handler(), "/api/sections")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got []sectionSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 6 {
		t.Fatalf("sections = %d, want 6", len(got))
	}
	if got[0].Key != "home" || got[0].Typed == "" {
		t.Fatalf("first section = %+v", got[0])
	}
	if got[5].Key != "contact" || got[5].Heading != "Contact" {
		t.Fatalf("last section = %+v", got[5])
	}
}

func TestSetSiteSwapsContent(t *testing.T) {
	srv := NewServer(testSite(t, "noir"), testOptions())
	h := srv.Handler()

	v, _ := content.Builtin("noir")
	next, err := content.Assemble(v, []content.Section{{Key: "about", Body: "Rewritten."}})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	srv.SetSite(next)
	if srv.Site() != next {
		t.Fatalf("Site did not return the new site")
	}
	body := get(t, h, "/sections/about").Body.String()
	if !strings.Contains(body, "Rewritten.") {
		t.Fatalf("old content served: %s", body)
	}
}

func TestHealthAndNotFound(t *testing.T) {
	h := NewServer(testSite(t, "noir"), testOptions()).Handler()
	if rec := get(t, h, "/healthz"); rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthz = %d %q", rec.Code, rec.Body.String())
	}
	if rec := get(t, h, "/missing"); rec.Code != http.StatusNotFound {
		t.Fatalf("missing = %d", rec.Code)
	}
}

func TestThemeCSSFallbacks(t *testing.T) {
	css := themeCSS(content.Theme{Markdown: "notty"})
	for _, want := range []string{"--bg:#ffffff;", "--fg:#111111;", "--header:var(--bg);"} {
		if !strings.Contains(css, want) {
			t.Errorf("css missing %q: %s", want, css)
		}
	}
}

func TestPageScriptReleasesListeners(t *testing.T) {
	for _, want := range []string{
		`window.addEventListener("pointermove", onPointerMove)`,
		`window.removeEventListener("pointermove", onPointerMove)`,
		`window.removeEventListener("scroll", track)`,
		`window.removeEventListener("resize", track)`,
	} {
		if !strings.Contains(pageScript, want) {
			t.Errorf("script missing %q", want)
		}
	}
	if strings.Contains(pageScript, `"pointermove", function`) {
		t.Errorf("pointermove listener is anonymous")
	}
}
