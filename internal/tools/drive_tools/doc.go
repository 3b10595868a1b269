// Package drive_tools provides the Google Drive tools: search, metadata,
// moving, folder creation, recursive copy and listing, revisions,
// permissions and export.
//
// Batch and recursive tools are best-effort. A failing item is reported in
// the result next to the ones that succeeded and never stops the others.
// Only a failure of the call's own precondition, such as an unknown source
// folder, fails the whole call.
package drive_tools
