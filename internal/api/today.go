package api

import (
	"bytes"
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/pulse-app/pulse/internal/domain"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

var todayTmpl = template.Must(template.New("today").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Pulse — {{.Day}}</title>
<style>
body { font-family: -apple-system, sans-serif; max-width: 640px; margin: 2rem auto; padding: 0 1rem; color: #222; }
h1 { font-size: 1.4rem; }
h2 { font-size: 1.1rem; border-bottom: 1px solid #eee; padding-bottom: .25rem; }
.meta { color: #666; font-size: .9rem; }
.prompt { background: #fff8e1; padding: .75rem 1rem; border-radius: 6px; }
.empty { color: #999; font-style: italic; }
</style>
</head>
<body>
<h1>Pulse — {{.Day}}</h1>
<p class="meta">{{.Level}} · streak {{.Streak}} · {{.Minutes}} min today across {{.Sessions}} session(s)</p>
{{if .Prompt}}<div class="prompt"><strong>{{.Prompt.Title}}</strong><br>{{.Prompt.Message}}</div>{{end}}
<h2>Intention</h2>
{{if .Intention}}{{.Intention}}{{else}}<p class="empty">Nothing set this morning.</p>{{end}}
{{if .Commitment}}<h2>One commitment</h2>{{.Commitment}}{{end}}
<h2>Reflection</h2>
{{if .Reflection}}{{.Reflection}}{{if .Feeling}}<p class="meta">Feeling: {{.Feeling}}/5</p>{{end}}{{else}}<p class="empty">No reflection yet.</p>{{end}}
{{if .Intentions}}<h2>This week</h2><ul>
{{range .Intentions}}<li>{{if .Done}}&#9745;{{else}}&#9744;{{end}} {{.Text}}</li>{{end}}
</ul>{{end}}
</body>
</html>
`))

type todayView struct {
	Day        string
	Level      string
	Streak     int
	Minutes    int
	Sessions   int
	Prompt     *promptView
	Intention  template.HTML
	Commitment template.HTML
	Reflection template.HTML
	Feeling    int
	Intentions []domain.WeeklyIntention
}

type promptView struct {
	Title   string
	Message string
}

// handleTodayPage renders the day's journal as HTML. The markdown the user
// wrote in intention and reflection fields is rendered through goldmark.
func (s *Server) handleTodayPage(w http.ResponseWriter, r *http.Request) {
	snap, err := s.app.Refresh(s.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	view := todayView{
		Day:      snap.Day,
		Level:    string(snap.Engagement.Level),
		Streak:   snap.Engagement.CurrentStreak,
		Minutes:  snap.Today.TotalMinutes,
		Sessions: snap.Today.SessionCount,
	}
	if snap.Prompt != nil {
		view.Prompt = &promptView{Title: snap.Prompt.Title, Message: snap.Prompt.Message}
	}
	if snap.Log != nil {
		view.Intention = renderMarkdown(snap.Log.Intention)
		view.Commitment = renderMarkdown(snap.Log.Commitment)
		view.Reflection = renderMarkdown(snap.Log.Reflection)
		view.Feeling = snap.Log.FeelingRating
	}
	if intentions, err := s.app.CheckIn.Intentions(s.now()); err == nil {
		view.Intentions = intentions
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := todayTmpl.Execute(w, view); err != nil {
		log.Printf("[api] render today page: %v", err)
	}
}

// renderMarkdown converts user markdown to HTML. Goldmark escapes raw HTML
// by default, so user input cannot inject markup.
func renderMarkdown(src string) template.HTML {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}
