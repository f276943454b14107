package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "tags": [
                    "health"
                ],
                "summary": "Health check",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/endpoints.HealthResponse"
                        }
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "tags": [
                    "health"
                ],
                "summary": "Readiness check",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/endpoints.HealthResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/status": {
            "get": {
                "tags": [
                    "health"
                ],
                "summary": "Server status",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/endpoints.StatusResponse"
                        }
                    }
                }
            }
        },
        "/api/reload": {
            "post": {
                "tags": [
                    "dataset"
                ],
                "summary": "Reload dataset",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/endpoints.DatasetStatus"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/options": {
            "get": {
                "tags": [
                    "documents"
                ],
                "summary": "Filter options",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/view.Options"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/documents": {
            "get": {
                "tags": [
                    "documents"
                ],
                "summary": "List documents",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Discipline or All",
                        "name": "discipline",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Score column to filter on",
                        "name": "score_column",
                        "in": "query"
                    },
                    {
                        "type": "number",
                        "description": "Lower score bound",
                        "name": "score_min",
                        "in": "query"
                    },
                    {
                        "type": "number",
                        "description": "Upper score bound",
                        "name": "score_max",
                        "in": "query"
                    },
                    {
                        "type": "number",
                        "description": "Minimum word count on any tool",
                        "name": "min_words",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filename substring",
                        "name": "search",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Page number",
                        "name": "page",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Rows per page",
                        "name": "page_size",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Comma-separated columns",
                        "name": "columns",
                        "in": "query"
                    },
                    {
                        "type": "boolean",
                        "description": "Reset the view first",
                        "name": "reset",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/endpoints.DocumentsResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/documents/export": {
            "get": {
                "tags": [
                    "documents"
                ],
                "summary": "Export documents",
                "produces": [
                    "text/csv"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Discipline or All",
                        "name": "discipline",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Score column to filter on",
                        "name": "score_column",
                        "in": "query"
                    },
                    {
                        "type": "number",
                        "description": "Lower score bound",
                        "name": "score_min",
                        "in": "query"
                    },
                    {
                        "type": "number",
                        "description": "Upper score bound",
                        "name": "score_max",
                        "in": "query"
                    },
                    {
                        "type": "number",
                        "description": "Minimum word count on any tool",
                        "name": "min_words",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filename substring",
                        "name": "search",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Page number",
                        "name": "page",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Rows per page",
                        "name": "page_size",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Comma-separated columns",
                        "name": "columns",
                        "in": "query"
                    },
                    {
                        "type": "boolean",
                        "description": "Reset the view first",
                        "name": "reset",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/documents/{filename}/pages": {
            "get": {
                "tags": [
                    "documents"
                ],
                "summary": "Pages of a document",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Document filename",
                        "name": "filename",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/endpoints.TableResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/pages": {
            "get": {
                "tags": [
                    "pages"
                ],
                "summary": "Explore pages",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Discipline or All",
                        "name": "discipline",
                        "in": "query"
                    },
                    {
                        "type": "number",
                        "description": "Lowest page number",
                        "name": "page_min",
                        "in": "query"
                    },
                    {
                        "type": "number",
                        "description": "Highest page number",
                        "name": "page_max",
                        "in": "query"
                    },
                    {
                        "type": "number",
                        "description": "Minimum overall score on any tool",
                        "name": "min_overall",
                        "in": "query"
                    },
                    {
                        "type": "number",
                        "description": "Minimum word count on any tool",
                        "name": "min_words",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filename substring",
                        "name": "search",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Page number",
                        "name": "page",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Rows per page",
                        "name": "page_size",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Comma-separated columns",
                        "name": "columns",
                        "in": "query"
                    },
                    {
                        "type": "boolean",
                        "description": "Reset the explorer first",
                        "name": "reset",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/endpoints.PagesResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/pages/export": {
            "get": {
                "tags": [
                    "pages"
                ],
                "summary": "Export pages",
                "produces": [
                    "text/csv"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Discipline or All",
                        "name": "discipline",
                        "in": "query"
                    },
                    {
                        "type": "number",
                        "description": "Lowest page number",
                        "name": "page_min",
                        "in": "query"
                    },
                    {
                        "type": "number",
                        "description": "Highest page number",
                        "name": "page_max",
                        "in": "query"
                    },
                    {
                        "type": "number",
                        "description": "Minimum overall score on any tool",
                        "name": "min_overall",
                        "in": "query"
                    },
                    {
                        "type": "number",
                        "description": "Minimum word count on any tool",
                        "name": "min_words",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filename substring",
                        "name": "search",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Page number",
                        "name": "page",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Rows per page",
                        "name": "page_size",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Comma-separated columns",
                        "name": "columns",
                        "in": "query"
                    },
                    {
                        "type": "boolean",
                        "description": "Reset the explorer first",
                        "name": "reset",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/selection": {
            "get": {
                "tags": [
                    "selection"
                ],
                "summary": "Current selection",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/endpoints.SelectionResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "selection"
                ],
                "summary": "Select a document",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Row to select",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/endpoints.SelectRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/endpoints.SelectionResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            },
            "delete": {
                "tags": [
                    "selection"
                ],
                "summary": "Clear selection",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/api/selection/pdf": {
            "get": {
                "tags": [
                    "selection"
                ],
                "summary": "Selected PDF",
                "produces": [
                    "application/pdf"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/selection/pdf/info": {
            "get": {
                "tags": [
                    "selection"
                ],
                "summary": "Selected PDF info",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/assets.PDFInfo"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/selection/markdown/{tool}": {
            "get": {
                "tags": [
                    "selection"
                ],
                "summary": "Extracted markdown",
                "produces": [
                    "application/json",
                    "text/html"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Extraction tool",
                        "name": "tool",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "html for a rendered preview",
                        "name": "format",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/assets.Markdown"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/selection/compare": {
            "get": {
                "tags": [
                    "selection"
                ],
                "summary": "Compare tools",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/stats.Comparison"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/stats/summary": {
            "get": {
                "tags": [
                    "stats"
                ],
                "summary": "Summary figures",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Discipline or All",
                        "name": "discipline",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Score column to filter on",
                        "name": "score_column",
                        "in": "query"
                    },
                    {
                        "type": "number",
                        "description": "Lower score bound",
                        "name": "score_min",
                        "in": "query"
                    },
                    {
                        "type": "number",
                        "description": "Upper score bound",
                        "name": "score_max",
                        "in": "query"
                    },
                    {
                        "type": "number",
                        "description": "Minimum word count on any tool",
                        "name": "min_words",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filename substring",
                        "name": "search",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Page number",
                        "name": "page",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Rows per page",
                        "name": "page_size",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Comma-separated columns",
                        "name": "columns",
                        "in": "query"
                    },
                    {
                        "type": "boolean",
                        "description": "Reset the view first",
                        "name": "reset",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/stats.Summary"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/stats/histogram": {
            "get": {
                "tags": [
                    "stats"
                ],
                "summary": "Score histograms",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Number of bins",
                        "name": "bins",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/endpoints.HistogramResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/stats/disciplines": {
            "get": {
                "tags": [
                    "stats"
                ],
                "summary": "Scores by discipline",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Score column",
                        "name": "column",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/endpoints.GroupResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/stats/page-numbers": {
            "get": {
                "tags": [
                    "stats"
                ],
                "summary": "Scores by page number",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Score column",
                        "name": "column",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Minimum values per page number",
                        "name": "min_count",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/endpoints.PageNumberResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/endpoints.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "endpoints.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                }
            }
        },
        "endpoints.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "dataset": {
                    "type": "string"
                },
                "error": {
                    "type": "string"
                }
            }
        },
        "endpoints.DatasetStatus": {
            "type": "object",
            "properties": {
                "loaded": {
                    "type": "boolean"
                },
                "documents": {
                    "type": "integer"
                },
                "pages": {
                    "type": "integer"
                },
                "join": {
                    "type": "object"
                },
                "aggregate": {
                    "type": "object"
                },
                "loaded_at": {
                    "type": "string"
                },
                "duration_ms": {
                    "type": "integer"
                },
                "loads": {
                    "type": "integer"
                },
                "error": {
                    "type": "string"
                }
            }
        },
        "endpoints.StatusResponse": {
            "type": "object",
            "properties": {
                "server": {
                    "type": "string"
                },
                "sources": {
                    "type": "object"
                },
                "dataset": {
                    "$ref": "#/definitions/endpoints.DatasetStatus"
                },
                "sessions": {
                    "type": "integer"
                }
            }
        },
        "view.Page": {
            "type": "object",
            "properties": {
                "page": {
                    "type": "integer"
                },
                "page_size": {
                    "type": "integer"
                },
                "total_rows": {
                    "type": "integer"
                },
                "total_pages": {
                    "type": "integer"
                },
                "start": {
                    "type": "integer"
                },
                "end": {
                    "type": "integer"
                }
            }
        },
        "endpoints.TableResponse": {
            "type": "object",
            "properties": {
                "columns": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "rows": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "additionalProperties": true
                    }
                }
            }
        },
        "endpoints.DocumentsResponse": {
            "type": "object",
            "properties": {
                "session": {
                    "type": "string"
                },
                "state": {
                    "type": "object"
                },
                "score_column": {
                    "type": "string"
                },
                "page": {
                    "$ref": "#/definitions/view.Page"
                },
                "linked_pages": {
                    "type": "integer"
                },
                "columns": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "rows": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "additionalProperties": true
                    }
                }
            }
        },
        "endpoints.PagesResponse": {
            "type": "object",
            "properties": {
                "session": {
                    "type": "string"
                },
                "state": {
                    "type": "object"
                },
                "page": {
                    "$ref": "#/definitions/view.Page"
                },
                "columns": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "rows": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "additionalProperties": true
                    }
                }
            }
        },
        "endpoints.SelectRequest": {
            "type": "object",
            "properties": {
                "index": {
                    "type": "integer"
                },
                "page": {
                    "type": "integer"
                },
                "page_size": {
                    "type": "integer"
                },
                "filename": {
                    "type": "string"
                }
            }
        },
        "endpoints.SelectionResponse": {
            "type": "object",
            "properties": {
                "index": {
                    "type": "integer"
                },
                "filename": {
                    "type": "string"
                },
                "discipline": {
                    "type": "string"
                },
                "row": {
                    "type": "object",
                    "additionalProperties": true
                }
            }
        },
        "view.Options": {
            "type": "object",
            "properties": {
                "disciplines": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "score_columns": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "default_score_column": {
                    "type": "string"
                },
                "score_ranges": {
                    "type": "object"
                },
                "word_count_columns": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "page_range": {
                    "type": "object"
                },
                "page_sizes": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                },
                "default_page_size": {
                    "type": "integer"
                },
                "columns": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "default_columns": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "tools": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "assets.PDFInfo": {
            "type": "object",
            "properties": {
                "path": {
                    "type": "string"
                },
                "size": {
                    "type": "integer"
                },
                "modified": {
                    "type": "string"
                },
                "page_count": {
                    "type": "integer"
                },
                "page_count_error": {
                    "type": "string"
                }
            }
        },
        "assets.TextStats": {
            "type": "object",
            "properties": {
                "lines": {
                    "type": "integer"
                },
                "words": {
                    "type": "integer"
                },
                "characters": {
                    "type": "integer"
                },
                "language": {
                    "type": "string"
                },
                "language_code": {
                    "type": "string"
                }
            }
        },
        "assets.Markdown": {
            "type": "object",
            "properties": {
                "tool": {
                    "type": "string"
                },
                "path": {
                    "type": "string"
                },
                "content": {
                    "type": "string"
                },
                "stats": {
                    "$ref": "#/definitions/assets.TextStats"
                }
            }
        },
        "stats.Summary": {
            "type": "object",
            "properties": {
                "rows": {
                    "type": "integer"
                },
                "documents": {
                    "type": "integer"
                },
                "disciplines": {
                    "type": "integer"
                },
                "score_column": {
                    "type": "string"
                },
                "average_score": {
                    "type": "number"
                }
            }
        },
        "stats.Comparison": {
            "type": "object",
            "properties": {
                "tools": {
                    "type": "array",
                    "items": {
                        "type": "object"
                    }
                },
                "breakdown": {
                    "type": "array",
                    "items": {
                        "type": "object"
                    }
                }
            }
        },
        "stats.Histogram": {
            "type": "object",
            "properties": {
                "column": {
                    "type": "string"
                },
                "tool": {
                    "type": "string"
                },
                "count": {
                    "type": "integer"
                },
                "bins": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "low": {
                                "type": "number"
                            },
                            "high": {
                                "type": "number"
                            },
                            "count": {
                                "type": "integer"
                            }
                        }
                    }
                }
            }
        },
        "endpoints.HistogramResponse": {
            "type": "object",
            "properties": {
                "histograms": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/stats.Histogram"
                    }
                }
            }
        },
        "endpoints.GroupResponse": {
            "type": "object",
            "properties": {
                "column": {
                    "type": "string"
                },
                "groups": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "key": {
                                "type": "string"
                            },
                            "mean": {
                                "type": "number"
                            },
                            "count": {
                                "type": "integer"
                            }
                        }
                    }
                }
            }
        },
        "endpoints.PageNumberResponse": {
            "type": "object",
            "properties": {
                "column": {
                    "type": "string"
                },
                "min_count": {
                    "type": "integer"
                },
                "pages": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "page_number": {
                                "type": "number"
                            },
                            "mean": {
                                "type": "number"
                            },
                            "count": {
                                "type": "integer"
                            }
                        }
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Benchdash API",
	Description:      "Browse, filter and export PDF extraction benchmark results.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
