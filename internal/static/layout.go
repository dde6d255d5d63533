package static

import (
	"context"
	"fmt"
	"html"
	"io"
	"path"

	"github.com/a-h/templ"
)

// NavItem is one sidebar navigation entry.
type NavItem struct {
	Name  string
	Title string
	Href  string
}

// pageData is everything the layout needs to render one doc page.
type pageData struct {
	SiteTitle   string
	Title       string
	Description string
	BaseURL     string
	Nav         []NavItem
	TOC         []Heading
	PreviewHTML string
}

// previewPage assembles the full document layout around a rendered
// component preview. The preview markup is trusted pipeline output and is
// embedded raw; everything else is escaped.
func previewPage(data pageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		assets := path.Join(data.BaseURL, "assets")

		fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s - %s</title>
<link rel="stylesheet" href="%s/rafters.css">
</head>
<body>
<div class="layout">
`, html.EscapeString(data.Title), html.EscapeString(data.SiteTitle), assets)

		fmt.Fprintf(w, `<aside class="sidebar">
<a class="nav-logo" href="%s">%s</a>
<ul class="nav-list">
`, data.BaseURL, html.EscapeString(data.SiteTitle))
		for _, item := range data.Nav {
			fmt.Fprintf(w, `<li class="nav-item"><a href="%s">%s</a></li>
`, item.Href, html.EscapeString(item.Title))
		}
		fmt.Fprint(w, "</ul>\n</aside>\n")

		fmt.Fprintf(w, `<main class="main">
<article class="doc">
<header><h1>%s</h1></header>
`, html.EscapeString(data.Title))
		if data.Description != "" {
			fmt.Fprintf(w, "<p>%s</p>\n", html.EscapeString(data.Description))
		}

		fmt.Fprint(w, `<div class="preview">`)
		if err := templ.Raw(data.PreviewHTML).Render(ctx, w); err != nil {
			return err
		}
		fmt.Fprint(w, "</div>\n</article>\n")

		if len(data.TOC) > 0 {
			fmt.Fprint(w, "<nav class=\"toc\">\n<h2>On this page</h2>\n<ul>\n")
			for _, heading := range data.TOC {
				fmt.Fprintf(w, `<li class="toc-level-%d"><a href="#%s">%s</a></li>
`, heading.Level, heading.ID, html.EscapeString(heading.Text))
			}
			fmt.Fprint(w, "</ul>\n</nav>\n")
		}

		fmt.Fprintf(w, `</main>
</div>
<script src="%s/rafters.js"></script>
</body>
</html>
`, assets)
		return nil
	})
}
