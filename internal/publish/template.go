package publish

import "html/template"

// The markdown body is escaped into the page as-is; no markdown renderer
// ships with this service, readers get the article source styled for the
// browser plus the metadata header.
var pageTemplate = template.Must(template.New("article").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <meta name="description" content="{{.MetaDescription}}">
  <meta name="keywords" content="{{.Keywords}}">
  <meta property="og:title" content="{{.Title}}">
  <meta property="og:description" content="{{.MetaDescription}}">
  <meta property="og:type" content="article">
  <title>{{.Title}}</title>
  <style>
    body {
      font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
      line-height: 1.7;
      color: #2c3e50;
      background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
      min-height: 100vh;
      margin: 0;
    }
    .container {
      max-width: 900px;
      margin: 20px auto;
      background: white;
      border-radius: 20px;
      box-shadow: 0 25px 50px rgba(0,0,0,0.15);
      overflow: hidden;
    }
    .header {
      background: linear-gradient(45deg, #667eea, #764ba2);
      color: white;
      padding: 50px 40px;
      text-align: center;
    }
    .header h1 { font-size: 2.4em; margin: 0 0 10px; }
    .header .subtitle { font-size: 1.3em; opacity: 0.9; }
    .header .meta { margin-top: 20px; font-size: 1.05em; }
    .content { padding: 50px 40px; }
    .toc {
      background: #f8f9fa;
      border-left: 5px solid #667eea;
      border-radius: 15px;
      padding: 25px;
      margin-bottom: 40px;
    }
    .toc ul { list-style: none; padding-left: 0; }
    .toc a { color: #667eea; text-decoration: none; }
    .toc a:hover { text-decoration: underline; }
    .body {
      white-space: pre-wrap;
      font-size: 1.05em;
    }
    .footer {
      background: #2c3e50;
      color: white;
      text-align: center;
      padding: 30px;
    }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>{{.Title}}</h1>
      {{if .Subtitle}}<div class="subtitle">{{.Subtitle}}</div>{{end}}
      <div class="meta">{{.PublishDate}} &middot; {{.ReadTime}}</div>
    </div>
    <div class="content">
      {{if .TOC}}<div class="toc">
        <h3>Table of Contents</h3>
        <ul>
        {{range .TOC}}<li><a href="#{{.Anchor}}">{{.Title}}</a></li>
        {{end}}</ul>
      </div>{{end}}
      <article class="body" aria-label="{{.HeroAlt}}">{{.Body}}</article>
    </div>
    <div class="footer">
      <p>Generated by <strong>contentforge</strong></p>
    </div>
  </div>
</body>
</html>
`))
