package endpoints

import (
	"github.com/odoma/benchdash/internal/api"
)

// All returns all endpoint instances.
func All() []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&ReadyEndpoint{},
		&StatusEndpoint{},
		&ReloadEndpoint{},

		// Document view endpoints
		&OptionsEndpoint{},
		&ListDocumentsEndpoint{},
		&ExportDocumentsEndpoint{},
		&DocumentPagesEndpoint{},

		// Page explorer endpoints
		&ListPagesEndpoint{},
		&ExportPagesEndpoint{},

		// Selection endpoints
		&SelectEndpoint{},
		&GetSelectionEndpoint{},
		&ClearSelectionEndpoint{},
		&SelectionPDFEndpoint{},
		&SelectionPDFInfoEndpoint{},
		&SelectionMarkdownEndpoint{},
		&SelectionCompareEndpoint{},

		// Chart endpoints
		&SummaryEndpoint{},
		&HistogramEndpoint{},
		&DisciplinesEndpoint{},
		&PageNumbersEndpoint{},

		// Swagger/OpenAPI endpoints
		&SwaggerEndpoint{},
		&SwaggerUIEndpoint{},
	}
}

// DocumentCommands returns the endpoints grouped under "documents".
func DocumentCommands() []api.Endpoint {
	return []api.Endpoint{
		&ListDocumentsEndpoint{},
		&ExportDocumentsEndpoint{},
		&DocumentPagesEndpoint{},
		&OptionsEndpoint{},
	}
}

// PageCommands returns the endpoints grouped under "pages".
func PageCommands() []api.Endpoint {
	return []api.Endpoint{
		&ListPagesEndpoint{},
		&ExportPagesEndpoint{},
	}
}

// SelectionCommands returns the endpoints grouped under "selection".
func SelectionCommands() []api.Endpoint {
	return []api.Endpoint{
		&SelectEndpoint{},
		&GetSelectionEndpoint{},
		&ClearSelectionEndpoint{},
		&SelectionPDFEndpoint{},
		&SelectionPDFInfoEndpoint{},
		&SelectionMarkdownEndpoint{},
		&SelectionCompareEndpoint{},
	}
}

// StatsCommands returns the endpoints grouped under "stats".
func StatsCommands() []api.Endpoint {
	return []api.Endpoint{
		&SummaryEndpoint{},
		&HistogramEndpoint{},
		&DisciplinesEndpoint{},
		&PageNumbersEndpoint{},
	}
}
