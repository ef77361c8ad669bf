package app

import (
	"html/template"
	"net/http"

	middlewareapi "github.com/leadmarket/leadmarket/pkg/apis/middleware"
	"github.com/leadmarket/leadmarket/pkg/logger"
)

// loginTemplate is the minimal login page. The message query parameter
// carries the reason the gate sent the user here.
var loginTemplate = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html lang="en">
<head><title>Lead Market - Sign In</title></head>
<body>
	{{- if .Message}}
	<p class="notice">{{.Message}}</p>
	{{- end}}
	<form method="POST" action="/api/auth/login">
		<input type="email" name="email" placeholder="Email" required>
		<input type="password" name="password" placeholder="Password" required>
		<button type="submit">Sign In</button>
	</form>
</body>
</html>
`))

// areaTemplate is the placeholder body for the gated page areas.
var areaTemplate = template.Must(template.New("area").Parse(`<!DOCTYPE html>
<html lang="en">
<head><title>Lead Market - {{.Title}}</title></head>
<body>
	<h1>{{.Title}}</h1>
	{{- if .Email}}
	<p>Signed in as {{.Email}}</p>
	{{- end}}
</body>
</html>
`))

// LoginPage renders the sign in form, surfacing the gate's redirect reason
// when one was attached.
func LoginPage(rw http.ResponseWriter, req *http.Request) {
	data := struct{ Message string }{
		Message: req.URL.Query().Get("message"),
	}

	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := loginTemplate.Execute(rw, data); err != nil {
		logger.Errorf("Error rendering login page: %v", err)
	}
}

// AreaPage renders a placeholder page for a gated area. Requests only reach
// it after the gate has allowed them.
func AreaPage(title string) http.HandlerFunc {
	return func(rw http.ResponseWriter, req *http.Request) {
		data := struct {
			Title string
			Email string
		}{Title: title}

		if scope := middlewareapi.GetRequestScope(req); scope != nil && scope.Identity != nil {
			data.Email = scope.Identity.Email
		}

		rw.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := areaTemplate.Execute(rw, data); err != nil {
			logger.Errorf("Error rendering %s page: %v", title, err)
		}
	}
}
