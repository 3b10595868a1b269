// Package logging holds the slog conventions shared by the server.
//
// Attribute keys are fixed here so that tool, service and operation fields
// line up across the audit log, handler logs and the CLI. Document and file
// identifiers are hashed before logging and credentials are reduced to their
// length.
//
//	logger := logging.WithTool(slog.Default(), "drive_copy_folder")
//	logger.Warn("child copy failed", logging.File(child.ID), logging.Err(err))
//
// The stdio transport owns stdout, so loggers created by the serve command
// always write to stderr.
package logging
