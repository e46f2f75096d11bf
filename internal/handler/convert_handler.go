package handler

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pwfconv/internal/domain"
	"pwfconv/internal/export"
	"pwfconv/internal/service"
)

// ConvertHandler handles case file conversion requests.
type ConvertHandler struct {
	svc           service.ConvertService
	defaultFormat string
}

// NewConvertHandler creates a new ConvertHandler.
func NewConvertHandler(svc service.ConvertService, defaultFormat string) *ConvertHandler {
	return &ConvertHandler{svc: svc, defaultFormat: defaultFormat}
}

// convertData is the JSON response payload for a conversion.
type convertData struct {
	Document *domain.Document `json:"document"`
	Warnings []string         `json:"warnings"`
}

// Convert handles POST /api/v1/convert. The case file comes as the "file"
// multipart field; the "format" form or query value selects the output.
// JSON responds with the standard envelope; dat and xlsx respond with the
// rendered output itself.
func (h *ConvertHandler) Convert(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "multipart field 'file' is required")
		return
	}
	defer func() { _ = file.Close() }()

	name := c.DefaultPostForm("format", c.DefaultQuery("format", h.defaultFormat))
	format, err := service.ParseFormat(name)
	if err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file")
		return
	}

	res, err := h.svc.ConvertBytes(data, header.Filename)
	if err != nil {
		log.Printf("ConvertHandler.Convert: %s: %v", header.Filename, err)
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}

	switch format {
	case service.FormatJSON:
		RespondOK(c, convertData{Document: res.Document, Warnings: res.Warnings})

	case service.FormatDAT:
		var buf bytes.Buffer
		if err := h.svc.Render(&buf, res.Document, format); err != nil {
			status, code, msg := MapDomainError(err)
			RespondError(c, status, code, msg)
			return
		}
		c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())

	case service.FormatXLSX:
		var buf bytes.Buffer
		if err := export.WriteXLSX(&buf, res.Document); err != nil {
			status, code, msg := MapDomainError(err)
			RespondError(c, status, code, msg)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q",
			export.BuildFilename(header.Filename, "xlsx")))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())

	default:
		// csv splits into multiple files and is CLI-only.
		RespondError(c, http.StatusBadRequest, "UNSUPPORTED_HTTP_FORMAT",
			"format not available over HTTP; allowed: json, dat, xlsx")
	}
}
