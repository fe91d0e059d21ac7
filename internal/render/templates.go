package render

import "html/template"

// fragmentTemplates holds the markup for every list-like page region.
const fragmentTemplates = `
{{define "interests"}}{{range .}}<div class="interest-tag">{{.}}</div>{{end}}{{end}}

{{define "news"}}{{range .}}<div class="news-item">
  <div class="news-date">{{.Date.Short}}</div>
  <div class="news-text">{{.Text}}</div>
</div>{{end}}{{end}}

{{define "card"}}<div class="publication-item">
  <h3 class="publication-title">{{.Title}}</h3>
  <div class="publication-authors">{{range $i, $a := .Authors}}{{if $i}}, {{end}}{{if $a.Owner}}<span class="publication-author-highlight">{{$a.Name}}</span>{{else}}{{$a.Name}}{{end}}{{end}}</div>
  <div class="publication-venue">{{.Venue}} {{.Year}}</div>
  {{- if .Links}}
  <div class="publication-links">{{range .Links}}<a href="{{.URL}}" class="publication-link" target="_blank" rel="noopener">{{.Label}}</a>{{end}}</div>
  {{- end}}
  {{- if .Tags}}
  <div class="publication-tags">{{range .Tags}}<span class="publication-tag">{{.}}</span>{{end}}</div>
  {{- end}}
  <button class="bibtex-copy" type="button">Copy BibTeX</button>
  {{- if .Abstract}}
  <button class="abstract-toggle" type="button">Show Abstract</button>
  <div class="publication-abstract">{{.Abstract}}</div>
  {{- end}}
</div>{{end}}

{{define "cards"}}{{range .}}{{template "card" .}}{{end}}{{end}}

{{define "message"}}<p class="text-center">{{.}}</p>{{end}}

{{define "toast"}}<div class="toast" id="{{.ID}}" role="status">{{.Message}}</div>{{end}}

{{define "options"}}<option value="">{{.All}}</option>{{range .Values}}<option value="{{.}}">{{.}}</option>{{end}}{{end}}
`

var fragments = template.Must(template.New("fragments").Parse(fragmentTemplates))
