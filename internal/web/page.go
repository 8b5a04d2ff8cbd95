package web

import (
	"strconv"
	"time"

	"github.com/yuin/goldmark"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/kyaoi/folio/internal/content"
	"github.com/kyaoi/folio/internal/page"
)

// renderedSection is a section with its body already converted to HTML.
type renderedSection struct {
	content.Section
	HTML     string
	Headline bool
}

func renderSections(md goldmark.Markdown, site *content.Site) ([]renderedSection, error) {
	headline, hasHeadline := site.Headline()
	out := make([]renderedSection, 0, len(site.Sections))
	for _, sec := range site.Sections {
		html, err := renderMarkdown(md, sec.Key, sec.Body)
		if err != nil {
			return nil, err
		}
		out = append(out, renderedSection{
			Section:  sec,
			HTML:     html,
			Headline: hasHeadline && sec.Key == headline.Key,
		})
	}
	return out, nil
}

func millis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10)
}

func pageNode(site *content.Site, sections []renderedSection, opts Options) g.Node {
	v := site.Variant
	bodyClass := "loading"
	if opts.SkipPreloader {
		bodyClass = ""
	}
	speed := opts.TypingSpeed
	for _, sec := range sections {
		if sec.Headline && sec.Speed > 0 {
			speed = sec.Speed
		}
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		g.El("html",
			g.Attr("lang", "en"),
			g.El("head",
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), g.Attr("content", "width=device-width, initial-scale=1")),
				g.El("title", g.Text(titleOf(v))),
				g.El("style", g.Raw(themeCSS(v.Theme)+baseCSS)),
			),
			g.El("body",
				g.If(bodyClass != "", Class(bodyClass)),
				g.Attr("data-preload-period", millis(opts.PreloadPeriod)),
				g.Attr("data-reveal-delay", millis(opts.RevealDelay)),
				g.Attr("data-typing-speed", millis(speed)),
				g.Attr("data-skip-preloader", strconv.FormatBool(opts.SkipPreloader)),
				preloaderNode(v.Monogram),
				Div(ID("glow"), Class("glow"), g.Attr("style", "background:"+page.Glow{}.Gradient())),
				headerNode(v),
				g.El("main", sectionNodes(sections)...),
				A(Class("top"), Href("#"+firstKey(sections)), g.Text("↑ Top")),
				g.El("script", g.Raw(pageScript)),
			),
		),
	})
}

func titleOf(v content.Variant) string {
	switch {
	case v.Domain != "":
		return v.Domain
	case v.Monogram != "":
		return v.Monogram
	default:
		return "folio"
	}
}

func firstKey(sections []renderedSection) string {
	if len(sections) == 0 {
		return ""
	}
	return sections[0].Key
}

func preloaderNode(monogram string) g.Node {
	return Div(Class("preloader"),
		Div(Class("ring"),
			Span(Class("seg seg-top")),
			Span(Class("seg seg-right")),
			Span(Class("seg seg-bottom")),
			Span(Class("seg seg-left")),
			Span(Class("monogram"), g.Text(monogram)),
		),
	)
}

func headerNode(v content.Variant) g.Node {
	links := make([]g.Node, 0, len(v.Tabs))
	for i, spec := range v.Tabs {
		links = append(links, A(
			Href("#"+spec.Key),
			g.Attr("data-tab", spec.Label),
			g.If(i == 0, Class("active")),
			g.Text(spec.Label),
		))
	}
	first := ""
	if len(v.Tabs) > 0 {
		first = v.Tabs[0].Key
	}
	return g.El("header",
		Div(
			A(Class("monogram"), Href("#"+first), g.Text(v.Monogram)),
			Span(Class("domain"), g.Text(v.Domain)),
		),
		g.El("nav", g.Attr("aria-label", "sections"), g.Group(links)),
	)
}

func sectionNodes(sections []renderedSection) []g.Node {
	nodes := make([]g.Node, 0, len(sections))
	for _, sec := range sections {
		nodes = append(nodes, sectionNode(sec))
	}
	return nodes
}

func sectionNode(sec renderedSection) g.Node {
	return g.El("section",
		ID(sec.Key),
		g.Attr("data-tab", sec.Label),
		H1(g.Text(sec.Heading)),
		g.If(sec.Headline, P(Class("typed"), g.Attr("data-typed", sec.Typed), g.Text(sec.Typed))),
		Div(Class("body"), g.Raw(sec.HTML)),
	)
}
