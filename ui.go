package restdoc

import (
	"html/template"
	"net/http"
	"net/url"
)

type uiPage struct {
	Title        string
	DiscoveryURL string
	APIKey       string
}

var uiTemplate = template.Must(template.New("swagger-ui").Parse(uiHTML))

// uiHandler renders a Swagger UI page pointed at the resource listing. The
// listing URL is made absolute against the request so the page works behind
// any host name.
func uiHandler(listing string, cfg serveConfig) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		page := uiPage{
			Title:        cfg.title,
			DiscoveryURL: cfg.requestURL(req).ResolveReference(&url.URL{Path: listing}).String(),
			APIKey:       cfg.apiKey,
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		//nolint:errcheck,gosec // best-effort template render
		uiTemplate.Execute(w, page)
	})
}

const uiHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui@2.2.10/dist/css/screen.css">
  <script src="https://unpkg.com/swagger-ui@2.2.10/dist/lib/object-assign-pollyfill.js"></script>
  <script src="https://unpkg.com/swagger-ui@2.2.10/dist/lib/jquery-1.8.0.min.js"></script>
  <script src="https://unpkg.com/swagger-ui@2.2.10/dist/lib/jquery.slideto.min.js"></script>
  <script src="https://unpkg.com/swagger-ui@2.2.10/dist/lib/jquery.wiggle.min.js"></script>
  <script src="https://unpkg.com/swagger-ui@2.2.10/dist/lib/jquery.ba-bbq.min.js"></script>
  <script src="https://unpkg.com/swagger-ui@2.2.10/dist/lib/handlebars-4.0.5.js"></script>
  <script src="https://unpkg.com/swagger-ui@2.2.10/dist/lib/lodash.min.js"></script>
  <script src="https://unpkg.com/swagger-ui@2.2.10/dist/lib/backbone-min.js"></script>
  <script src="https://unpkg.com/swagger-ui@2.2.10/dist/swagger-ui.min.js"></script>
  <script src="https://unpkg.com/swagger-ui@2.2.10/dist/lib/highlight.9.1.0.pack.js"></script>
  <script src="https://unpkg.com/swagger-ui@2.2.10/dist/lib/marked.js"></script>
</head>
<body class="swagger-section">
  <div id="swagger-ui-container" class="swagger-ui-wrap"></div>
  <script>
    window.swaggerUi = new SwaggerUi({
      url: {{.DiscoveryURL}},
      dom_id: "swagger-ui-container",
      supportedSubmitMethods: ["get", "post", "put", "delete", "patch"],
      onComplete: function() {
        var key = {{.APIKey}};
        if (key) {
          swaggerUi.api.clientAuthorizations.add("api_key",
            new SwaggerClient.ApiKeyAuthorization("api_key", key, "query"));
        }
      },
      docExpansion: "none"
    });
    window.swaggerUi.load();
  </script>
</body>
</html>`
