package innertube

import (
	"errors"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dop251/goja"

	"github.com/ytget/ytresolve/internal/logger"
)

// ytcfgTimeout bounds the total time spent evaluating page scripts.
var ytcfgTimeout = 2 * time.Second

const ytcfgMarker = "ytcfg.set("

// ytcfgPrelude stubs the globals the configuration scripts touch and records
// every ytcfg.set call into __cfg.
const ytcfgPrelude = `
var __cfg = {};
var window = this;
var self = this;
var document = { createElement: function() { return {}; }, querySelector: function() { return null; } };
var navigator = { userAgent: "" };
var ytcfg = {
	set: function(k, v) {
		if (k !== null && typeof k === "object") {
			for (var p in k) { __cfg[p] = k[p]; }
		} else {
			__cfg[k] = v;
		}
	},
	get: function(k, d) { return k in __cfg ? __cfg[k] : d; },
	d: function() { return __cfg; }
};
`

var errYtcfgTimeout = errors.New("ytcfg evaluation timed out")

// apiKeyFromYtcfg runs the page's ytcfg.set(...) scripts in a sandboxed VM and
// returns the INNERTUBE_API_KEY they configure.
func apiKeyFromYtcfg(page string) string {
	if !strings.Contains(page, ytcfgMarker) {
		return ""
	}
	log := logger.WithComponent(logger.ComponentInnerTube)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return ""
	}
	var scripts []string
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if src := s.Text(); strings.Contains(src, ytcfgMarker) {
			scripts = append(scripts, src)
		}
	})
	if len(scripts) == 0 {
		return ""
	}

	vm := goja.New()
	if _, err := vm.RunString(ytcfgPrelude); err != nil {
		return ""
	}
	timer := time.AfterFunc(ytcfgTimeout, func() { vm.Interrupt(errYtcfgTimeout) })

	interrupted := false
	for i, src := range scripts {
		if _, err := vm.RunString(src); err != nil {
			var ie *goja.InterruptedError
			if errors.As(err, &ie) {
				log.Warn("ytcfg evaluation interrupted", map[string]interface{}{"script": i})
				interrupted = true
				break
			}
			// Scripts often fail on browser APIs after their set calls ran.
			log.Trace("ytcfg script failed", map[string]interface{}{"script": i, "error": err.Error()})
		}
	}

	// The page may replace the stub with its own ytcfg, which keeps values
	// elsewhere; its get() sees them either way.
	var key string
	if !interrupted {
		if v, err := vm.RunString(ytcfgLookup); err == nil {
			key = stringValue(v)
		}
	}
	timer.Stop()
	vm.ClearInterrupt()

	if key == "" {
		key = stringValue(vm.Get("__cfg").ToObject(vm).Get("INNERTUBE_API_KEY"))
	}
	return key
}

// ytcfgLookup reads the key through whatever ytcfg is defined after the
// page scripts ran.
const ytcfgLookup = `(function() {
	if (typeof ytcfg === "object" && ytcfg !== null && typeof ytcfg.get === "function") {
		return ytcfg.get("INNERTUBE_API_KEY");
	}
})()`

func stringValue(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return ""
	}
	s, ok := v.Export().(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
