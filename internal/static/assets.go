package static

import (
	"regexp"
	"strings"
)

// GenerateCSS returns the main stylesheet for generated doc pages.
func GenerateCSS() string {
	return defaultCSS
}

// GenerateJS returns the main script for generated doc pages.
func GenerateJS() string {
	return defaultJS
}

var (
	cssCommentPattern    = regexp.MustCompile(`(?s)/\*.*?\*/`)
	cssWhitespacePattern = regexp.MustCompile(`\s+`)
	cssSeparatorPattern  = regexp.MustCompile(`\s*([{}:;,>])\s*`)
)

// MinifyCSS strips comments and collapses whitespace. It is intentionally
// conservative: selectors and values are left untouched beyond spacing, so
// the output is always valid if the input was.
func MinifyCSS(css string) string {
	out := cssCommentPattern.ReplaceAllString(css, "")
	out = cssWhitespacePattern.ReplaceAllString(out, " ")
	out = cssSeparatorPattern.ReplaceAllString(out, "$1")
	out = strings.ReplaceAll(out, ";}", "}")
	return strings.TrimSpace(out)
}

const defaultCSS = `/* Rafters Docs - Generated Styles */
:root {
  --color-bg: #ffffff;
  --color-bg-secondary: #f9fafb;
  --color-text: #111827;
  --color-text-secondary: #6b7280;
  --color-border: #e5e7eb;
  --color-primary: #3b82f6;
  --color-primary-hover: #2563eb;

  --sidebar-width: 280px;
  --toc-width: 200px;
  --content-max-width: 800px;

  --font-sans: system-ui, -apple-system, sans-serif;
  --font-mono: ui-monospace, monospace;
}

@media (prefers-color-scheme: dark) {
  :root {
    --color-bg: #111827;
    --color-bg-secondary: #1f2937;
    --color-text: #f9fafb;
    --color-text-secondary: #9ca3af;
    --color-border: #374151;
  }
}

* {
  box-sizing: border-box;
  margin: 0;
  padding: 0;
}

body {
  font-family: var(--font-sans);
  background: var(--color-bg);
  color: var(--color-text);
  line-height: 1.6;
}

.layout {
  display: grid;
  grid-template-columns: var(--sidebar-width) 1fr;
  min-height: 100vh;
}

.sidebar {
  background: var(--color-bg-secondary);
  border-right: 1px solid var(--color-border);
  padding: 1.5rem;
  position: sticky;
  top: 0;
  height: 100vh;
  overflow-y: auto;
}

.nav-logo {
  font-weight: 700;
  font-size: 1.25rem;
  color: var(--color-text);
  text-decoration: none;
}

.nav-list {
  list-style: none;
  margin-top: 1.5rem;
}

.nav-item a {
  display: block;
  padding: 0.5rem 0.75rem;
  color: var(--color-text-secondary);
  text-decoration: none;
  border-radius: 0.375rem;
  transition: background 0.15s, color 0.15s;
}

.nav-item a:hover {
  background: var(--color-bg);
  color: var(--color-text);
}

.nav-item.active > a {
  background: var(--color-primary);
  color: white;
}

.main {
  display: grid;
  grid-template-columns: 1fr var(--toc-width);
  gap: 2rem;
  padding: 2rem;
  max-width: calc(var(--content-max-width) + var(--toc-width) + 4rem);
}

.doc {
  max-width: var(--content-max-width);
}

.doc header h1 {
  font-size: 2.5rem;
  font-weight: 700;
  margin-bottom: 1.5rem;
}

.preview {
  background: var(--color-bg-secondary);
  border: 1px solid var(--color-border);
  border-radius: 0.5rem;
  padding: 2rem;
  margin-bottom: 1rem;
  display: flex;
  align-items: center;
  justify-content: center;
  gap: 1rem;
}

.toc {
  position: sticky;
  top: 2rem;
  align-self: start;
}

.toc h2 {
  font-size: 0.875rem;
  font-weight: 600;
  text-transform: uppercase;
  letter-spacing: 0.05em;
  color: var(--color-text-secondary);
  margin-bottom: 0.75rem;
}

.toc ul {
  list-style: none;
}

.toc a {
  font-size: 0.875rem;
  color: var(--color-text-secondary);
  text-decoration: none;
}

.toc a:hover {
  color: var(--color-text);
}

@media (max-width: 1024px) {
  .layout {
    grid-template-columns: 1fr;
  }

  .main {
    grid-template-columns: 1fr;
  }

  .toc {
    display: none;
  }
}
`

const defaultJS = `// Rafters Docs - Generated JavaScript
(function() {
  'use strict';

  // Highlight current nav item
  const currentPath = window.location.pathname;
  document.querySelectorAll('.nav-item a').forEach(link => {
    if (link.getAttribute('href') === currentPath) {
      link.parentElement.classList.add('active');
    }
  });

  // Live reload channel, present only when served by the dev server
  if (window.location.protocol !== 'file:') {
    try {
      const ws = new WebSocket('ws://' + window.location.host + '/ws');
      ws.onmessage = function(event) {
        if (event.data === 'reload') {
          window.location.reload();
        }
      };
    } catch (e) {
      // static hosting without a websocket endpoint
    }
  }
})();
`
