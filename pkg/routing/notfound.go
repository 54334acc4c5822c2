package routing

import (
	"context"
	"html/template"
	"io"
	"maps"
	"net/url"
	"strconv"
	"time"

	"github.com/a-h/templ"
)

// DefaultRetryDelay is how long the not-found page waits before retrying an alias URL.
const DefaultRetryDelay = 1500 * time.Millisecond

// retryParam marks a retried request so the page retries at most once.
const retryParam = "alias_retry"

var notFoundTemplate = template.Must(template.New("not_found").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Tenant not found</title>
{{- if .RetryURL}}
<meta http-equiv="refresh" content="{{.RetrySeconds}};url={{.RetryURL}}">
{{- end}}
</head>
<body>
<main>
<h1>Tenant not found</h1>
<p>No tenant matches <code>{{.Candidate}}</code>.</p>
{{- if .RetryURL}}
<p>Retrying the direct access link shortly&hellip;</p>
{{- end}}
<table>
<tr><th>Candidate</th><td>{{.Candidate}}</td></tr>
<tr><th>Canonical</th><td>{{.Diagnostics.Canonical}}</td></tr>
<tr><th>Source</th><td>{{.Diagnostics.Source}}</td></tr>
<tr><th>Host</th><td>{{.Host}}</td></tr>
<tr><th>Path</th><td>{{.Path}}</td></tr>
<tr><th>Environment</th><td>{{.Diagnostics.Environment}}</td></tr>
</table>
{{- with .Diagnostics.Trace}}
<h2>Resolution trace</h2>
<ol>
{{- range .}}
<li>{{.}}</li>
{{- end}}
</ol>
{{- end}}
<p><a href="/">Back to home</a></p>
</main>
</body>
</html>
`))

type notFoundView struct {
	Decision
	Candidate    string
	RetryURL     string
	RetrySeconds string
}

// NotFoundPage renders the tenant-not-found diagnostics for d. When the
// candidate was an alias and the request is not already a retry, the page
// reloads the alias URL once after delay.
func NotFoundPage(d Decision, query url.Values, delay time.Duration) templ.Component {
	view := notFoundView{Decision: d, Candidate: d.Diagnostics.Candidate}
	if d.Diagnostics.Aliased() && query.Get(retryParam) == "" && delay > 0 {
		q := maps.Clone(query)
		if q == nil {
			q = url.Values{}
		}
		q.Set(retryParam, "1")
		view.RetryURL = (&url.URL{Path: d.Path, RawQuery: q.Encode()}).String()
		view.RetrySeconds = formatSeconds(delay)
	}
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return notFoundTemplate.Execute(w, view)
	})
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}
