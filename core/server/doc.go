// Package server holds the HTTP server configuration.
//
// The main application entry point handles the actual server startup; this
// package only defines the configuration structure and the validation rules
// for server settings, such as the destination label that tags all sync
// artifacts produced by this deployment.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by the start command to assemble the Fiber application.
package server
