package web

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kyaoi/folio/internal/content"
	"github.com/kyaoi/folio/internal/page"
)

var (
	glowAlpha = strconv.FormatFloat(page.GlowAlpha, 'g', -1, 64)
	glowFade  = strconv.Itoa(int(page.GlowFade * 100))
)

// pageScript drives the page in the browser: the preloader ring, the
// typed headline, the scroll tracker and the pointer glow. Timings come
// from data attributes on <body>.
var pageScript = `(function () {
  var body = document.body;
  var period = +body.dataset.preloadPeriod, delay = +body.dataset.revealDelay;
  var speed = +body.dataset.typingSpeed, skip = body.dataset.skipPreloader === "true";
  var timers = [];

  function typeHeadline() {
    var el = document.querySelector("[data-typed]");
    if (!el) return;
    var text = Array.from(el.dataset.typed), shown = 0;
    el.textContent = "";
    var id = setInterval(function () {
      if (shown >= text.length) { clearInterval(id); el.classList.add("done"); return; }
      shown++;
      el.textContent = text.slice(0, shown).join("");
    }, speed);
    timers.push(function () { clearInterval(id); });
  }

  function reveal() {
    body.classList.remove("loading");
    typeHeadline();
    track();
  }

  if (skip) {
    reveal();
  } else {
    var filled = 0;
    var id = setInterval(function () {
      filled = Math.min(filled + 1, 4);
      body.dataset.phase = String(filled);
      if (filled === 4) {
        clearInterval(id);
        var t = setTimeout(reveal, delay);
        timers.push(function () { clearTimeout(t); });
      }
    }, period);
    timers.push(function () { clearInterval(id); });
  }

  var tabs = Array.from(document.querySelectorAll("nav [data-tab]"));
  var sections = Array.from(document.querySelectorAll("main section[data-tab]"));
  var active = tabs.length ? tabs[0].dataset.tab : "";

  function track() {
    var mid = window.innerHeight / 2;
    for (var i = 0; i < sections.length; i++) {
      var r = sections[i].getBoundingClientRect();
      if (mid >= r.top && mid < r.bottom) {
        active = sections[i].dataset.tab;
        break;
      }
    }
    tabs.forEach(function (t) { t.classList.toggle("active", t.dataset.tab === active); });
    document.querySelector(".top").classList.toggle("shown", window.scrollY > 0);
  }
  window.addEventListener("scroll", track);
  window.addEventListener("resize", track);

  var glow = document.getElementById("glow");
  function onPointerMove(e) {
    glow.style.background = "radial-gradient(circle at " + e.clientX + "px " + e.clientY +
      "px, rgba(255,255,255,` + glowAlpha + `), transparent ` + glowFade + `%)";
  }
  window.addEventListener("pointermove", onPointerMove);

  window.addEventListener("pagehide", function () {
    timers.forEach(function (stop) { stop(); });
    window.removeEventListener("scroll", track);
    window.removeEventListener("resize", track);
    window.removeEventListener("pointermove", onPointerMove);
  });
})();`

const baseCSS = `*{box-sizing:border-box}
html{scroll-behavior:smooth}
body{margin:0;font-family:ui-sans-serif,system-ui,sans-serif;background:var(--bg);color:var(--fg)}
body.loading main,body.loading header,body.loading .top{visibility:hidden}
body:not(.loading) .preloader{display:none}
.preloader{position:fixed;inset:0;display:flex;align-items:center;justify-content:center;z-index:50;background:var(--bg)}
.ring{position:relative;width:8rem;height:8rem;border-radius:50%;display:flex;align-items:center;justify-content:center;border:4px solid var(--border)}
.ring .seg{position:absolute;inset:-4px;border-radius:50%;border:4px solid transparent;transition:border-color .3s}
body[data-phase="1"] .seg-top,body[data-phase="2"] .seg-top,body[data-phase="3"] .seg-top,body[data-phase="4"] .seg-top{border-top-color:var(--accent)}
body[data-phase="2"] .seg-right,body[data-phase="3"] .seg-right,body[data-phase="4"] .seg-right{border-right-color:var(--accent)}
body[data-phase="3"] .seg-bottom,body[data-phase="4"] .seg-bottom{border-bottom-color:var(--accent)}
body[data-phase="4"] .seg-left{border-left-color:var(--accent)}
.monogram{font-weight:700;font-size:1.5rem;color:var(--accent);text-decoration:none}
.glow{position:fixed;inset:0;pointer-events:none;z-index:0}
header{position:sticky;top:0;z-index:10;display:flex;align-items:center;justify-content:space-between;padding:1rem 2rem;background:var(--header)}
header .domain{color:var(--muted);margin-left:.5rem}
nav a{color:var(--muted);text-decoration:none;margin-left:1.5rem;padding-bottom:.25rem;border-bottom:2px solid transparent}
nav a.active{color:var(--accent);border-bottom-color:var(--accent)}
main{position:relative;z-index:1}
section{min-height:100vh;padding:6rem 2rem 2rem;max-width:56rem;margin:0 auto}
section h1{color:var(--accent)}
.typed{font-size:2rem;font-weight:700;min-height:2.5rem}
.typed:not(.done)::after{content:"▌"}
.top{position:fixed;right:2rem;bottom:2rem;color:var(--accent);text-decoration:none;opacity:0;transition:opacity .3s}
.top.shown{opacity:1}
`

// themeCSS binds the variant colours to the CSS variables used by baseCSS.
func themeCSS(th content.Theme) string {
	vars := []struct{ name, value, fallback string }{
		{"bg", th.Background, "#ffffff"},
		{"fg", th.Foreground, "#111111"},
		{"muted", th.Muted, "#666666"},
		{"accent", th.Accent, "#000000"},
		{"border", th.Border, "#cccccc"},
		{"glow", th.Glow, "#ffffff"},
	}
	var b strings.Builder
	b.WriteString(":root{")
	for _, v := range vars {
		value := v.value
		if value == "" {
			value = v.fallback
		}
		fmt.Fprintf(&b, "--%s:%s;", v.name, value)
	}
	if len(th.Gradient) > 1 {
		fmt.Fprintf(&b, "--header:linear-gradient(90deg,%s);", strings.Join(th.Gradient, ","))
	} else {
		b.WriteString("--header:var(--bg);")
	}
	b.WriteString("}\n")
	return b.String()
}
