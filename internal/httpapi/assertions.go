package httpapi

import (
	"github.com/tinoosan/workshop/internal/service/document"
	"github.com/tinoosan/workshop/internal/storage/memory"
	"github.com/tinoosan/workshop/internal/storage/postgres"
)

// Compile-time interface assertions for the stores against the service interfaces.
var (
	_ document.Repo   = (*memory.Store)(nil)
	_ document.Writer = (*memory.Store)(nil)
	_ document.Repo   = (*postgres.Store)(nil)
	_ document.Writer = (*postgres.Store)(nil)
	_ ReadyChecker    = (*postgres.Store)(nil)
)
