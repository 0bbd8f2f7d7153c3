package mcpserver

// DailyFormatContract describes the canonical daily-note format that LLM
// consumers should follow when reading or capturing notes.
const DailyFormatContract = `# Dagaz Daily Note Format

One note file per calendar date, stored in a single journal directory.

## Naming

- The file basename is the date in zero-padded ` + "`YYYY-MM-DD`" + ` form, e.g.
  ` + "`2024-01-15.org`" + `.
- The same string is the note's title: the first line of every note is
  ` + "`#+title: YYYY-MM-DD`" + `.
- A file counts as a daily note only when basename and title agree. Files
  with other names (or mismatched titles) are ignored by navigation.

## Content

- Plain text with org-style headings. Captured entries are appended as
  top-level ` + "`*`" + ` headings.
- Templates may add structure below the title line; the title line itself
  must never be removed or edited.

## Rules

1. Never create two notes for the same date, regardless of extension.
2. Never rename a note file without updating its title line to match.
3. Hidden files, ` + "`name~`" + ` backups, and ` + "`#name#`" + ` autosave files are
   editor artifacts, not notes.
`
