// Package reports harvests Xray report resources: exporting definitions and
// generated contents, and importing definitions back into a site.
package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/devops-sherpas/jfrog-sagen/internal/api/xray"
	"github.com/devops-sherpas/jfrog-sagen/internal/pagination"
)

// Client is the Xray surface the harvesting services need.
type Client interface {
	ListReportPage(ctx context.Context, page int) ([]xray.ReportSummary, error)
	GetReport(ctx context.Context, id int) (json.RawMessage, error)
	SubmitReport(ctx context.Context, definition json.RawMessage) error
	ExportReport(ctx context.Context, id int, name, format string) (io.ReadCloser, error)
}

// DefinitionSink receives exported report definitions.
type DefinitionSink interface {
	WriteSummary(id int, name string, summary json.RawMessage) error
	WriteDetail(id int, name string, detail json.RawMessage) error
}

// ContentSink receives exported report contents as streams.
type ContentSink interface {
	Create(id int, name string) (io.WriteCloser, error)
}

// DefinitionSource yields report definitions to import. The origin passed to
// the callback identifies the definition in errors and logs.
type DefinitionSource interface {
	Each(fn func(origin string, definition json.RawMessage) error) error
}

// Service drives the report harvesting passes against one Xray instance.
type Service struct {
	client Client
	logger zerolog.Logger
}

// NewService creates a harvesting service.
func NewService(client Client) *Service {
	return &Service{
		client: client,
		logger: log.With().Str("component", "reports").Logger(),
	}
}

func (s *Service) summaries(ctx context.Context) *pagination.Enumerator[xray.ReportSummary] {
	return pagination.New(func(page int) ([]xray.ReportSummary, error) {
		return s.client.ListReportPage(ctx, page)
	})
}

// ExportDefinitions walks every report on the service in discovery order and
// hands its listing summary and full definition to the sink.
func (s *Service) ExportDefinitions(ctx context.Context, sink DefinitionSink) error {
	return s.summaries(ctx).ForEach(func(summary xray.ReportSummary) error {
		s.logger.Info().Int("id", summary.ID).Str("name", summary.Name).Msg("Exporting report summary")
		if err := sink.WriteSummary(summary.ID, summary.Name, summary.Definition); err != nil {
			return fmt.Errorf("write summary of report %d: %w", summary.ID, err)
		}
		detail, err := s.client.GetReport(ctx, summary.ID)
		if err != nil {
			return err
		}
		s.logger.Info().Int("id", summary.ID).Str("name", summary.Name).Msg("Exporting report definition")
		if err := sink.WriteDetail(summary.ID, summary.Name, detail); err != nil {
			return fmt.Errorf("write detail of report %d: %w", summary.ID, err)
		}
		return nil
	})
}

// ImportDefinitions submits every definition yielded by the source. The first
// failure aborts the run; definitions already submitted stay submitted.
func (s *Service) ImportDefinitions(ctx context.Context, source DefinitionSource) error {
	return source.Each(func(origin string, definition json.RawMessage) error {
		s.logger.Info().Str("definition", origin).Msg("Importing report definition")
		if err := s.client.SubmitReport(ctx, definition); err != nil {
			return fmt.Errorf("import definition %s: %w", origin, err)
		}
		return nil
	})
}

// ExportContents downloads the generated contents of every report in the
// given format. With verify set, each archive is checked for readability
// once its bytes are fully written.
func (s *Service) ExportContents(ctx context.Context, format string, sink ContentSink, verify bool) error {
	return s.summaries(ctx).ForEach(func(summary xray.ReportSummary) error {
		logger := s.logger.With().
			Int("id", summary.ID).
			Str("name", summary.Name).
			Str("format", format).
			Logger()
		logger.Info().Msg("Exporting report contents")

		stream, err := s.client.ExportReport(ctx, summary.ID, summary.Name, format)
		if err != nil {
			return err
		}
		defer stream.Close()

		out, err := sink.Create(summary.ID, summary.Name)
		if err != nil {
			return fmt.Errorf("create content sink for report %d: %w", summary.ID, err)
		}

		var copyErr error
		if verify {
			var entries int
			entries, copyErr = verifyCopy(out, stream)
			if copyErr == nil {
				logger.Info().Int("entries", entries).Msg("Verified exported archive")
			}
		} else {
			_, copyErr = io.Copy(out, stream)
		}
		closeErr := out.Close()
		if copyErr != nil {
			return fmt.Errorf("export contents of report %d: %w", summary.ID, copyErr)
		}
		if closeErr != nil {
			return fmt.Errorf("close content sink for report %d: %w", summary.ID, closeErr)
		}
		return nil
	})
}
