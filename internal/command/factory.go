package command

import (
	"vaulttx/internal/service"
	"vaulttx/internal/view"
)

// Factory creates commands with properly injected dependencies
type Factory struct {
	service  *service.Service
	renderer *view.TransactionRenderer
}

// NewFactory creates a new command factory
func NewFactory(svc *service.Service, renderer *view.TransactionRenderer) *Factory {
	return &Factory{
		service:  svc,
		renderer: renderer,
	}
}

// CreateSendCommand creates a send command
func (f *Factory) CreateSendCommand() Command {
	return &SendCommand{
		Svc:      f.service,
		Renderer: f.renderer,
	}
}

// CreateBulkCommand creates a bulk command
func (f *Factory) CreateBulkCommand() Command {
	return &BulkCommand{
		Svc:      f.service,
		Renderer: f.renderer,
	}
}

// CreateListCommand creates a list command
func (f *Factory) CreateListCommand() Command {
	return &ListCommand{
		Svc:      f.service,
		Renderer: f.renderer,
	}
}

// CreatePageCommand creates a page command
func (f *Factory) CreatePageCommand() Command {
	return &PageCommand{
		Svc:      f.service,
		Renderer: f.renderer,
	}
}

// CreatePurgeCommand creates a purge command
func (f *Factory) CreatePurgeCommand() Command {
	return &PurgeCommand{
		Svc: f.service,
	}
}

// CreateDbStatsCommand creates a db-stats command
func (f *Factory) CreateDbStatsCommand() Command {
	return &DbStatsCommand{
		Svc: f.service,
	}
}
