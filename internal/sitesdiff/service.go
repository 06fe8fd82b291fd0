// Package sitesdiff orchestrates a site differences analysis between two
// Artifactory sites.
package sitesdiff

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/devops-sherpas/jfrog-sagen/internal/api/artifactory"
	"github.com/devops-sherpas/jfrog-sagen/internal/diff"
)

// Site is the read-only view of one Artifactory site used by the comparison.
type Site interface {
	ListRepositories(ctx context.Context) (map[string]artifactory.Repository, error)
	ListItems(ctx context.Context, repository string) (map[string]artifactory.Item, error)
}

// Options tune a comparison run.
type Options struct {
	// ExcludeArtifacts restricts the comparison to repository-level diffs.
	ExcludeArtifacts bool
	// Concurrency bounds how many repositories are compared at once.
	// Zero or negative means one worker per CPU.
	Concurrency int
}

// Service compares the repositories and artifacts of two sites.
type Service struct {
	site1 Site
	site2 Site
	opts  Options
}

// NewService creates a comparison service over two sites.
func NewService(site1, site2 Site, opts Options) *Service {
	return &Service{site1: site1, site2: site2, opts: opts}
}

// Run fetches both sides and produces the diff report. Any remote failure
// aborts the whole run; no partial artifacts section is ever emitted.
func (s *Service) Run(ctx context.Context) (diff.Report, error) {
	runID := uuid.New().String()
	logger := log.With().Str("run_id", runID).Logger()
	logger.Info().Msg("Starting sites comparison")

	repos1, repos2, err := s.fetchSides(ctx)
	if err != nil {
		return diff.Report{}, err
	}

	classes1 := repositoryClasses(repos1)
	classes2 := repositoryClasses(repos2)
	repoReport, both := diff.CompareRepositories(classes1, classes2)
	for _, key := range repoReport.MissingIn1 {
		logger.Info().Str("repository", key).Msg("Repository exists in site 2 and missing in site 1")
	}
	for _, key := range repoReport.MissingIn2 {
		logger.Info().Str("repository", key).Msg("Repository exists in site 1 and missing in site 2")
	}
	for _, key := range repoReport.RclassMismatch {
		logger.Info().
			Str("repository", key).
			Str("rclass_1", classes1[key]).
			Str("rclass_2", classes2[key]).
			Msg("Repository class differs between sites")
	}

	if s.opts.ExcludeArtifacts {
		return diff.BuildReport(repoReport, nil, false), nil
	}

	artifacts, err := s.compareArtifacts(ctx, logger, classes1, both)
	if err != nil {
		return diff.Report{}, err
	}
	return diff.BuildReport(repoReport, artifacts, true), nil
}

// fetchSides lists the repositories of both sites. The two sides are
// independent and are fetched concurrently.
func (s *Service) fetchSides(ctx context.Context) (map[string]artifactory.Repository, map[string]artifactory.Repository, error) {
	var (
		wg             sync.WaitGroup
		repos1, repos2 map[string]artifactory.Repository
		err1, err2     error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		repos1, err1 = s.site1.ListRepositories(ctx)
	}()
	go func() {
		defer wg.Done()
		repos2, err2 = s.site2.ListRepositories(ctx)
	}()
	wg.Wait()
	if err := errors.Join(err1, err2); err != nil {
		return nil, nil, err
	}
	return repos1, repos2, nil
}

// compareArtifacts runs the per-repository artifact diffs on a bounded worker
// pool. The first failure cancels outstanding work and fails the run with the
// repository named.
func (s *Service) compareArtifacts(ctx context.Context, logger zerolog.Logger, classes map[string]string, both []string) (map[string]diff.ArtifactReport, error) {
	concurrency := s.opts.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, concurrency)
	errCh := make(chan error, len(both))
	results := make(map[string]diff.ArtifactReport, len(both))
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, key := range both {
		if diff.Aggregating(classes[key]) {
			continue
		}
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release
			if ctx.Err() != nil {
				return
			}
			repoLogger := logger.With().Str("repository", key).Logger()
			repoLogger.Info().Msg("Comparing repository")
			report, err := s.compareRepository(ctx, key)
			if err != nil {
				repoLogger.Error().Err(err).Msg("Repository comparison failed")
				errCh <- fmt.Errorf("repository %s: %w", key, err)
				cancel()
				return
			}
			mu.Lock()
			results[key] = report
			mu.Unlock()
		}(key)
	}
	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) compareRepository(ctx context.Context, key string) (diff.ArtifactReport, error) {
	items1, err := s.site1.ListItems(ctx, key)
	if err != nil {
		return diff.ArtifactReport{}, err
	}
	items2, err := s.site2.ListItems(ctx, key)
	if err != nil {
		return diff.ArtifactReport{}, err
	}
	return diff.CompareArtifacts(itemChecksums(items1), itemChecksums(items2)), nil
}

func repositoryClasses(repositories map[string]artifactory.Repository) map[string]string {
	classes := make(map[string]string, len(repositories))
	for key, repository := range repositories {
		classes[key] = repository.Type
	}
	return classes
}

func itemChecksums(items map[string]artifactory.Item) map[string]diff.Checksums {
	checksums := make(map[string]diff.Checksums, len(items))
	for uri, item := range items {
		checksums[uri] = diff.Checksums{SHA1: item.SHA1, SHA256: item.SHA2}
	}
	return checksums
}
