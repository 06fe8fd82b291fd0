// Package diff computes the two-level difference between two Artifactory
// sites: repositories keyed by repository key, then artifacts keyed by path
// within each repository present on both sides.
package diff

import "sort"

// Aggregating reports whether a repository class proxies or aggregates other
// repositories. Such repositories carry no content of their own and are
// skipped for artifact comparison.
func Aggregating(rclass string) bool {
	switch rclass {
	case "VIRTUAL", "REMOTE":
		return true
	}
	return false
}

// Checksums are the content-identity fields of one artifact. Two artifacts
// are identical only when both checksums match; either one differing counts
// as a content difference.
type Checksums struct {
	SHA1   string
	SHA256 string
}

// RepositoryReport is the repository-level part of the diff. The three sets
// are serialized sorted so a run is deterministic.
type RepositoryReport struct {
	MissingIn1     []string `json:"missing_in_1"`
	MissingIn2     []string `json:"missing_in_2"`
	RclassMismatch []string `json:"rclass_mismatch"`
}

// ArtifactReport is the artifact-level diff of a single repository. Empty
// fields are omitted from the serialized form.
type ArtifactReport struct {
	MissingIn1 []string `json:"missing_in_1,omitempty"`
	MissingIn2 []string `json:"missing_in_2,omitempty"`
	Diffs      []string `json:"diffs,omitempty"`
}

// Empty reports whether the artifact comparison found no difference at all.
func (r ArtifactReport) Empty() bool {
	return len(r.MissingIn1) == 0 && len(r.MissingIn2) == 0 && len(r.Diffs) == 0
}

// Report is the complete output of one comparison run. Artifacts is nil
// (serialized as null) when artifact comparison was not requested.
type Report struct {
	Repositories RepositoryReport          `json:"repositories"`
	Artifacts    map[string]ArtifactReport `json:"artifacts"`
}

// CompareRepositories diffs two repository collections mapping repository key
// to repository class. The second return value lists the keys present on both
// sides, sorted ascending.
func CompareRepositories(side1, side2 map[string]string) (RepositoryReport, []string) {
	report := RepositoryReport{
		MissingIn1:     []string{},
		MissingIn2:     []string{},
		RclassMismatch: []string{},
	}
	var both []string
	for key := range side2 {
		if _, ok := side1[key]; !ok {
			report.MissingIn1 = append(report.MissingIn1, key)
		}
	}
	for key, rclass1 := range side1 {
		rclass2, ok := side2[key]
		if !ok {
			report.MissingIn2 = append(report.MissingIn2, key)
			continue
		}
		both = append(both, key)
		if rclass1 != rclass2 {
			report.RclassMismatch = append(report.RclassMismatch, key)
		}
	}
	sort.Strings(report.MissingIn1)
	sort.Strings(report.MissingIn2)
	sort.Strings(report.RclassMismatch)
	sort.Strings(both)
	return report, both
}

// CompareArtifacts diffs the artifact collections of a single repository,
// keyed by artifact path.
func CompareArtifacts(side1, side2 map[string]Checksums) ArtifactReport {
	var report ArtifactReport
	for path := range side2 {
		if _, ok := side1[path]; !ok {
			report.MissingIn1 = append(report.MissingIn1, path)
		}
	}
	for path, sums1 := range side1 {
		sums2, ok := side2[path]
		if !ok {
			report.MissingIn2 = append(report.MissingIn2, path)
			continue
		}
		if sums1 != sums2 {
			report.Diffs = append(report.Diffs, path)
		}
	}
	sort.Strings(report.MissingIn1)
	sort.Strings(report.MissingIn2)
	sort.Strings(report.Diffs)
	return report
}

// BuildReport assembles the final report. Repositories whose artifact
// comparison found nothing are dropped. When artifact comparison was not
// requested the artifacts section is absent rather than empty.
func BuildReport(repositories RepositoryReport, artifacts map[string]ArtifactReport, withArtifacts bool) Report {
	report := Report{Repositories: repositories}
	if !withArtifacts {
		return report
	}
	report.Artifacts = make(map[string]ArtifactReport, len(artifacts))
	for key, artifactReport := range artifacts {
		if artifactReport.Empty() {
			continue
		}
		report.Artifacts[key] = artifactReport
	}
	return report
}
