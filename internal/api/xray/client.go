package xray

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/devops-sherpas/jfrog-sagen/internal/api"
)

// Report types understood by the import/export commands.
const (
	TypeLicense         = "license"
	TypeVulnerability   = "vulnerability"
	TypeOperationalRisk = "operational_risk"
)

// pageSize is the number of report rows requested per page.
const pageSize = 10

// ReportSummary is one report as discovered in the paginated report listing.
// Definition preserves the raw JSON of the whole listing entry.
type ReportSummary struct {
	ID         int
	Name       string
	Type       string
	Definition json.RawMessage
}

type reportHeader struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"report_type"`
}

// Client talks to the Xray REST API of a single site.
type Client struct {
	client *api.Client
	logger zerolog.Logger
}

// NewClient creates a client authenticated with a bearer token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		client: api.NewClient(baseURL, nil, api.NewBearerAuthorizer(token)),
		logger: log.With().Str("component", "xray").Str("url", baseURL).Logger(),
	}
}

// ListReportPage fetches one page of report summaries, ordered by name.
// Pages are one-based; an empty result means the collection is exhausted.
func (c *Client) ListReportPage(ctx context.Context, page int) ([]ReportSummary, error) {
	query := url.Values{}
	query.Set("direction", "asc")
	query.Set("page_num", strconv.Itoa(page))
	query.Set("num_of_rows", strconv.Itoa(pageSize))
	query.Set("order_by", "name")

	var result struct {
		TotalReports int               `json:"total_reports"`
		Reports      []json.RawMessage `json:"reports"`
	}
	if err := c.client.PostJSON(ctx, "/xray/api/v1/reports", query, nil, &result); err != nil {
		return nil, fmt.Errorf("list reports page %d: %w", page, err)
	}
	c.logger.Debug().Int("page", page).Int("count", len(result.Reports)).Msg("Fetched report page")

	summaries := make([]ReportSummary, 0, len(result.Reports))
	for _, raw := range result.Reports {
		var header reportHeader
		if err := json.Unmarshal(raw, &header); err != nil {
			return nil, fmt.Errorf("decode report summary on page %d: %w", page, err)
		}
		summaries = append(summaries, ReportSummary{
			ID:         header.ID,
			Name:       header.Name,
			Type:       header.Type,
			Definition: raw,
		})
	}
	return summaries, nil
}

// GetReport fetches the full definition of a single report.
func (c *Client) GetReport(ctx context.Context, id int) (json.RawMessage, error) {
	var detail json.RawMessage
	if err := c.client.GetJSON(ctx, fmt.Sprintf("/xray/api/v1/reports/%d", id), nil, &detail); err != nil {
		return nil, fmt.Errorf("get report %d: %w", id, err)
	}
	return detail, nil
}

// SubmitReport creates a report from an exported definition. The definition's
// report_type tag selects the endpoint to submit to.
func (c *Client) SubmitReport(ctx context.Context, definition json.RawMessage) error {
	var header struct {
		Type *string `json:"report_type"`
	}
	if err := json.Unmarshal(definition, &header); err != nil {
		return fmt.Errorf("decode report definition: %w", err)
	}
	if header.Type == nil {
		return &MalformedResponseError{Field: "report_type"}
	}
	segment, err := reportTypeSegment(*header.Type)
	if err != nil {
		return err
	}
	if err := c.client.PostJSON(ctx, "/xray/api/v1/reports/"+segment, nil, definition, nil); err != nil {
		return fmt.Errorf("submit %s report: %w", *header.Type, err)
	}
	return nil
}

func reportTypeSegment(reportType string) (string, error) {
	switch reportType {
	case TypeLicense:
		return "licenses", nil
	case TypeVulnerability:
		return "vulnerabilities", nil
	case TypeOperationalRisk:
		return "operationalRisks", nil
	}
	return "", &UnsupportedKindError{Kind: reportType}
}

// ExportReport streams the generated contents of a report in the requested
// format (pdf, json or csv). The caller owns the returned stream.
func (c *Client) ExportReport(ctx context.Context, id int, name, format string) (io.ReadCloser, error) {
	query := url.Values{}
	query.Set("file_name", fmt.Sprintf("%d-%s", id, name))
	query.Set("format", format)
	stream, err := c.client.Stream(ctx, fmt.Sprintf("/xray/api/v1/reports/export/%d", id), query, "application/zip")
	if err != nil {
		return nil, fmt.Errorf("export report %d: %w", id, err)
	}
	return stream, nil
}
