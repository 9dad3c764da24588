package httpx

import (
	"html/template"
	"net/http"
)

// Page shells for browser navigations. The SPA bundle takes over once
// loaded; these exist so direct navigations and gate redirects always land
// on a real document.

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} - Time Manager</title>
</head>
<body>
<div id="app" data-page="{{.Name}}"></div>
</body>
</html>
`))

type pageData struct {
	Name  string
	Title string
}

// PageHandler returns a handler that renders the shell for the named page.
func PageHandler(name, title string) http.HandlerFunc {
	data := pageData{Name: name, Title: title}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTemplate.Execute(w, data); err != nil {
			// Headers are already out; nothing more to do.
			return
		}
	}
}

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
