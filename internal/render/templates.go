package render

// pageTemplate is the html/template for the preview page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <style>{{.CSS}}</style>
</head>
<body>
  <article class="script-preview">
    {{.Content}}
  </article>
</body>
</html>`

// previewCSS is the fixed stylesheet for previews.
const previewCSS = `
:root {
  --bg: #ffffff;
  --fg: #1f2328;
  --muted: #59636e;
  --border: #d1d9e0;
  --code-bg: #f6f8fa;
  --accent: #c4302b;
}
* { box-sizing: border-box; }
body {
  margin: 0;
  background: var(--bg);
  color: var(--fg);
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Helvetica, Arial, sans-serif;
  font-size: 16px;
  line-height: 1.6;
}
.script-preview {
  max-width: 820px;
  margin: 0 auto;
  padding: 2rem 1.5rem 4rem;
}
.script-preview h1, .script-preview h2, .script-preview h3,
.script-preview h4, .script-preview h5, .script-preview h6 {
  line-height: 1.25;
  margin: 1.6em 0 0.6em;
}
.script-preview h1 { font-size: 1.9rem; border-bottom: 3px solid var(--accent); padding-bottom: 0.3em; }
.script-preview h2 { font-size: 1.45rem; border-bottom: 1px solid var(--border); padding-bottom: 0.25em; }
.script-preview h3 { font-size: 1.2rem; }
.script-preview p { margin: 0 0 1em; }
.script-preview ul, .script-preview ol { padding-left: 1.6em; }
.script-preview blockquote {
  margin: 0 0 1em;
  padding: 0 1em;
  color: var(--muted);
  border-left: 4px solid var(--border);
}
.script-preview code {
  font-family: ui-monospace, SFMono-Regular, Menlo, Consolas, monospace;
  font-size: 0.9em;
  background: var(--code-bg);
  padding: 0.15em 0.35em;
  border-radius: 4px;
}
.script-preview pre {
  background: var(--code-bg);
  padding: 1em;
  overflow-x: auto;
  border-radius: 6px;
}
.script-preview pre code { background: none; padding: 0; }
.script-preview table { border-collapse: collapse; margin: 0 0 1em; }
.script-preview th, .script-preview td { border: 1px solid var(--border); padding: 0.4em 0.75em; }
.script-preview hr { border: 0; border-top: 1px solid var(--border); margin: 2em 0; }
`
