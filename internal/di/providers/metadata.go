package providers

import (
	"github.com/samber/do/v2"

	"github.com/cinemood/cinemood-server/internal/config"
	"github.com/cinemood/cinemood-server/internal/logger"
	"github.com/cinemood/cinemood-server/internal/metadata/omdb"
	"github.com/cinemood/cinemood-server/internal/service"
)

// OMDbClientHandle wraps the OMDb client with shutdown capability.
type OMDbClientHandle struct {
	*omdb.Client
}

// Shutdown implements do.Shutdownable.
func (h *OMDbClientHandle) Shutdown() error {
	h.Client.Close()
	return nil
}

// ProvideOMDbClient provides the OMDb API client.
func ProvideOMDbClient(i do.Injector) (*OMDbClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := omdb.New(omdb.Config{
		APIKey:            cfg.Metadata.OMDbAPIKey,
		BaseURL:           cfg.Metadata.OMDbBaseURL,
		Timeout:           cfg.Metadata.Timeout,
		RequestsPerSecond: cfg.Metadata.RequestsPerSecond,
		Logger:            log.WithComponent("omdb"),
	})

	if client.Enabled() {
		log.Info("OMDb client initialized")
	} else {
		log.Warn("OMDB_API_KEY not set, metadata enrichment disabled")
	}

	return &OMDbClientHandle{Client: client}, nil
}

// ProvideMetadataService provides the cached metadata service.
func ProvideMetadataService(i do.Injector) (*service.MetadataService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	clientHandle := do.MustInvoke[*OMDbClientHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	return service.NewMetadataService(clientHandle.Client, storeHandle.Store, log.WithComponent("metadata")), nil
}
