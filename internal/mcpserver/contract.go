package mcpserver

// ProjectFormat describes the note layout the search index understands.
const ProjectFormat = `# Project Note Format

Project notes are plain Markdown files in one flat directory. Names are file
names only: folders are not supported and ".md" is appended when missing.

## Structure

` + "```" + `markdown
---
title: Homelab rebuild     # optional, falls back to the first "# " heading
tags: [infra, network]     # optional, a YAML list or "a, b" string
---

# Homelab rebuild

Body text in standard Markdown. Inline #hashtags are indexed as tags too.
` + "```" + `

## Rules

1. Frontmatter is optional. When present the ` + "`---`" + ` fence must open the file.
2. Malformed YAML is not rejected; the whole file is indexed as body text.
3. Saving a name that exists overwrites it. There is no history.
4. Search matches title, body and tags.
`
