// Package docs wraps the Google Docs v1 API.
//
// Besides the editing calls used by the tools (create, insert, append,
// replace, text style and paragraph style) the package renders documents as
// plain text, Markdown or raw JSON. Rendering covers both legacy documents
// that only carry a body and tabbed documents, including nested child tabs.
package docs
