// Package docs_tools provides the Google Docs tools. Character positions are
// the document indexes used by the Docs API: the body starts at index 1.
package docs_tools
