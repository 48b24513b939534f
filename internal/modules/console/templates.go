package console

const pageHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Copydesk</title>
    <link rel="stylesheet" href="/static/app.css" />
  </head>
  <body>
    <main class="container">
      <header class="header">
        <h1 class="title">Copydesk</h1>
        <div class="subtitle">Product API: <span class="mono">{{if .View.APIBase}}{{.View.APIBase}}{{else}}same origin{{end}}</span></div>
      </header>

      {{with .Notice}}
      <div class="notice notice-{{.Kind}}" role="status">
        <span>{{.Message}}</span>
        <form method="post" action="/notice/dismiss"><button class="link" type="submit">Dismiss</button></form>
      </div>
      {{end}}

      <div class="grid">
        <section class="panel">
          <h2 class="panelTitle">{{if .View.EditingID}}Editing {{.View.EditingName}}{{else}}New product brief{{end}}</h2>
          {{$draft := .View.Draft}}
          <form class="form" method="post" action="{{if .View.EditingID}}/products/{{.View.EditingID}}/update{{else}}/products{{end}}">
            <label>Name <input name="name" value="{{$draft.Name}}" required /></label>
            <label>Category <input name="category" value="{{$draft.Category}}" /></label>
            <label>Brand <input name="brand" value="{{$draft.Brand}}" /></label>
            <label>Tagline <input name="tagline" value="{{$draft.Tagline}}" /></label>
            <label>Features (one per line) <textarea name="features" rows="4">{{$draft.Features}}</textarea></label>
            <label>SEO keywords (comma or newline separated) <textarea name="seo_keywords" rows="2">{{$draft.Keywords}}</textarea></label>
            <label>Tone <input name="tone" value="{{$draft.Tone}}" /></label>
            <label>Audience <input name="audience" value="{{$draft.Audience}}" /></label>
            <label>Language <input name="language" value="{{$draft.Language}}" /></label>
            <label>Length
              <select name="length">
                {{range .View.Lengths}}<option value="{{.}}"{{if eq . $draft.Length}} selected{{end}}>{{.}}</option>{{end}}
              </select>
            </label>
            <label>Additional notes <textarea name="additional_notes" rows="2">{{$draft.AdditionalNotes}}</textarea></label>
            <label>Description <textarea name="description" rows="10">{{.View.DraftDescription}}</textarea></label>
            {{if .View.EditingID}}
              <label class="check"><input type="checkbox" name="regenerate" /> Regenerate description from the brief</label>
            {{else}}
              <label class="check"><input type="checkbox" name="auto_generate" checked /> Generate description on save</label>
            {{end}}
            <div class="actions">
              <button type="submit">{{if .View.EditingID}}Save changes{{else}}Create product{{end}}</button>
              <button type="submit" formaction="/draft/generate" formnovalidate>Generate preview</button>
              <button type="submit" formaction="/draft/reset" formnovalidate class="secondary">{{if .View.EditingID}}Cancel edit{{else}}Clear{{end}}</button>
            </div>
          </form>
        </section>

        <section class="panel">
          <div class="panelHead">
            <h2 class="panelTitle">Products</h2>
            <form method="post" action="/products/refresh"><button class="link" type="submit">Refresh</button></form>
          </div>
          {{if .View.Items}}
            <ul class="list">
              {{range .View.Items}}
                <li class="row{{if .Selected}} selected{{end}}">
                  <form method="post" action="/products/{{.ID}}/select">
                    <button class="rowMain" type="submit">
                      <span class="rowName">{{.Name}}</span>
                      <span class="rowMeta">
                        {{if .Category}}<span>{{.Category}}</span>{{end}}
                        <span class="badge">{{.Length}}</span>
                        {{if .Editing}}<span class="badge">editing</span>{{end}}
                        <span>{{.Updated}}</span>
                      </span>
                    </button>
                  </form>
                </li>
              {{end}}
            </ul>
          {{else}}
            <div class="empty">No products yet. Refresh to load them from the API.</div>
          {{end}}
        </section>
      </div>

      {{with .View.Detail}}
      <section class="panel detail">
        <div class="panelHead">
          <h2 class="panelTitle">{{.Name}}</h2>
          <div class="actions">
            <form method="post" action="/products/{{.ID}}/edit"><button type="submit">Edit</button></form>
            <form method="post" action="/products/{{.ID}}/delete"><button type="submit" class="danger">Delete</button></form>
          </div>
        </div>
        <dl class="facts">
          {{if .Brand}}<dt>Brand</dt><dd>{{.Brand}}</dd>{{end}}
          {{if .Category}}<dt>Category</dt><dd>{{.Category}}</dd>{{end}}
          {{if .Tagline}}<dt>Tagline</dt><dd>{{.Tagline}}</dd>{{end}}
          {{if .Audience}}<dt>Audience</dt><dd>{{.Audience}}</dd>{{end}}
          {{if .Tone}}<dt>Tone</dt><dd>{{.Tone}}</dd>{{end}}
          {{if .Language}}<dt>Language</dt><dd>{{.Language}}</dd>{{end}}
          <dt>Length</dt><dd>{{.Length}}</dd>
          {{if .Features}}<dt>Features</dt><dd><ul>{{range .Features}}<li>{{.}}</li>{{end}}</ul></dd>{{end}}
          {{if .Keywords}}<dt>SEO keywords</dt><dd>{{range $i, $k := .Keywords}}{{if $i}}, {{end}}{{$k}}{{end}}</dd>{{end}}
          {{if .AdditionalNotes}}<dt>Notes</dt><dd>{{.AdditionalNotes}}</dd>{{end}}
          <dt>Updated</dt><dd>{{.Updated}} <span class="muted">(created {{.Created}})</span></dd>
        </dl>
        <article class="copy">
          {{if .HasDescription}}{{.DescriptionHTML}}{{else}}<p class="muted">No description yet.</p>{{end}}
        </article>
      </section>
      {{end}}
    </main>
  </body>
</html>
`

const appCSS = `
:root{
  --bg:#f4f6fb; --panel:#fff; --text:#111827; --muted:#4b5563;
  --line:rgba(17,24,39,0.12); --accent:#2563eb; --danger:#b91c1c;
  --mono: ui-monospace, SFMono-Regular, Menlo, Consolas, monospace;
  --sans: ui-sans-serif, system-ui, -apple-system, Segoe UI, Roboto, Helvetica, Arial;
}
*{box-sizing:border-box}
body{margin:0; font-family:var(--sans); background:var(--bg); color:var(--text)}
.container{max-width:1180px; margin:0 auto; padding:28px 20px 60px}
.title{margin:0; font-size:26px}
.subtitle{margin-top:6px; color:var(--muted); font-size:14px}
.header{margin-bottom:18px}
.grid{display:grid; grid-template-columns: 1fr 1fr; gap:18px; margin-bottom:18px}
.panel{background:var(--panel); border:1px solid var(--line); border-radius:12px; overflow:hidden}
.panelHead{display:flex; justify-content:space-between; align-items:center; border-bottom:1px solid var(--line)}
.panelHead .panelTitle{border-bottom:none}
.panelTitle{margin:0; padding:14px 16px; font-size:14px; text-transform:uppercase; letter-spacing:0.4px; color:var(--muted); border-bottom:1px solid var(--line)}
.form{display:flex; flex-direction:column; gap:10px; padding:16px}
.form label{display:flex; flex-direction:column; gap:4px; font-size:13px; color:var(--muted)}
.form label.check{flex-direction:row; align-items:center; gap:8px}
input,textarea,select{font:inherit; padding:8px; border:1px solid var(--line); border-radius:8px; color:var(--text)}
.actions{display:flex; gap:8px; padding:0 16px 0 0}
.form .actions{padding:0}
button{font:inherit; padding:8px 14px; border-radius:8px; border:1px solid var(--accent); background:var(--accent); color:#fff; cursor:pointer}
button.secondary{background:transparent; color:var(--accent)}
button.danger{background:var(--danger); border-color:var(--danger)}
button.link{background:none; border:none; color:var(--accent); padding:8px 16px}
.list{list-style:none; margin:0; padding:0}
.row{border-bottom:1px solid var(--line)}
.row.selected{background:rgba(37,99,235,0.08)}
.rowMain{display:block; width:100%; text-align:left; background:none; border:none; border-radius:0; color:var(--text); padding:12px 16px}
.rowName{display:block; font-size:16px; margin-bottom:4px}
.rowMeta{display:flex; gap:10px; color:var(--muted); font-size:12px}
.badge{padding:1px 8px; border-radius:999px; background:rgba(17,24,39,0.08)}
.empty{padding:16px; color:var(--muted)}
.muted{color:var(--muted)}
.mono{font-family:var(--mono)}
.facts{display:grid; grid-template-columns:140px 1fr; gap:6px 12px; padding:16px; margin:0}
.facts dt{color:var(--muted)}
.facts dd{margin:0}
.copy{padding:0 16px 16px; line-height:1.55}
.notice{display:flex; justify-content:space-between; align-items:center; padding:10px 16px; border-radius:10px; margin-bottom:18px; border:1px solid var(--line); background:var(--panel)}
.notice-error{border-color:var(--danger); color:var(--danger)}
.notice-success{border-color:#15803d; color:#15803d}
@media (max-width: 900px){ .grid{grid-template-columns:1fr} }
`
