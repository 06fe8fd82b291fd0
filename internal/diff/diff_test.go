package diff

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestCompareRepositories(t *testing.T) {
	tests := []struct {
		name     string
		side1    map[string]string
		side2    map[string]string
		want     RepositoryReport
		wantBoth []string
	}{
		{
			name:  "disjoint sides",
			side1: map[string]string{"a": "LOCAL"},
			side2: map[string]string{"b": "LOCAL"},
			want: RepositoryReport{
				MissingIn1:     []string{"b"},
				MissingIn2:     []string{"a"},
				RclassMismatch: []string{},
			},
			wantBoth: nil,
		},
		{
			name:  "identical sides produce empty report",
			side1: map[string]string{"a": "LOCAL", "b": "REMOTE"},
			side2: map[string]string{"a": "LOCAL", "b": "REMOTE"},
			want: RepositoryReport{
				MissingIn1:     []string{},
				MissingIn2:     []string{},
				RclassMismatch: []string{},
			},
			wantBoth: []string{"a", "b"},
		},
		{
			name:  "class mismatch only for shared keys",
			side1: map[string]string{"a": "LOCAL", "b": "LOCAL", "c": "LOCAL"},
			side2: map[string]string{"a": "REMOTE", "b": "LOCAL", "d": "VIRTUAL"},
			want: RepositoryReport{
				MissingIn1:     []string{"d"},
				MissingIn2:     []string{"c"},
				RclassMismatch: []string{"a"},
			},
			wantBoth: []string{"a", "b"},
		},
		{
			name:  "both empty",
			side1: map[string]string{},
			side2: map[string]string{},
			want: RepositoryReport{
				MissingIn1:     []string{},
				MissingIn2:     []string{},
				RclassMismatch: []string{},
			},
			wantBoth: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, both := CompareRepositories(tt.side1, tt.side2)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			if !reflect.DeepEqual(both, tt.wantBoth) {
				t.Errorf("got both %v, want %v", both, tt.wantBoth)
			}
		})
	}
}

func TestCompareRepositoriesSymmetry(t *testing.T) {
	side1 := map[string]string{"a": "LOCAL", "b": "VIRTUAL", "c": "REMOTE"}
	side2 := map[string]string{"b": "VIRTUAL", "c": "LOCAL", "d": "LOCAL"}

	forward, _ := CompareRepositories(side1, side2)
	backward, _ := CompareRepositories(side2, side1)

	if !reflect.DeepEqual(forward.MissingIn1, backward.MissingIn2) {
		t.Errorf("missing_in_1(A,B)=%v, missing_in_2(B,A)=%v", forward.MissingIn1, backward.MissingIn2)
	}
	if !reflect.DeepEqual(forward.MissingIn2, backward.MissingIn1) {
		t.Errorf("missing_in_2(A,B)=%v, missing_in_1(B,A)=%v", forward.MissingIn2, backward.MissingIn1)
	}
	if !reflect.DeepEqual(forward.RclassMismatch, backward.RclassMismatch) {
		t.Errorf("rclass_mismatch not symmetric: %v vs %v", forward.RclassMismatch, backward.RclassMismatch)
	}
}

func TestCompareArtifacts(t *testing.T) {
	tests := []struct {
		name  string
		side1 map[string]Checksums
		side2 map[string]Checksums
		want  ArtifactReport
	}{
		{
			name:  "identical",
			side1: map[string]Checksums{"/x.jar": {SHA1: "h1", SHA256: "h2"}},
			side2: map[string]Checksums{"/x.jar": {SHA1: "h1", SHA256: "h2"}},
			want:  ArtifactReport{},
		},
		{
			name:  "sha256 differs",
			side1: map[string]Checksums{"/x.jar": {SHA1: "h1", SHA256: "h2"}},
			side2: map[string]Checksums{"/x.jar": {SHA1: "h1", SHA256: "h3"}},
			want:  ArtifactReport{Diffs: []string{"/x.jar"}},
		},
		{
			name:  "sha1 differs",
			side1: map[string]Checksums{"/x.jar": {SHA1: "h1", SHA256: "h2"}},
			side2: map[string]Checksums{"/x.jar": {SHA1: "h9", SHA256: "h2"}},
			want:  ArtifactReport{Diffs: []string{"/x.jar"}},
		},
		{
			name: "missing on either side",
			side1: map[string]Checksums{
				"/only-1.jar": {SHA1: "a", SHA256: "b"},
				"/both.jar":   {SHA1: "a", SHA256: "b"},
			},
			side2: map[string]Checksums{
				"/only-2.jar": {SHA1: "a", SHA256: "b"},
				"/both.jar":   {SHA1: "a", SHA256: "b"},
			},
			want: ArtifactReport{
				MissingIn1: []string{"/only-2.jar"},
				MissingIn2: []string{"/only-1.jar"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompareArtifacts(tt.side1, tt.side2)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCompareArtifactsNoPathInBothDiffsAndMissing(t *testing.T) {
	side1 := map[string]Checksums{
		"/a": {SHA1: "1", SHA256: "1"},
		"/b": {SHA1: "x", SHA256: "x"},
	}
	side2 := map[string]Checksums{
		"/b": {SHA1: "y", SHA256: "y"},
		"/c": {SHA1: "2", SHA256: "2"},
	}
	report := CompareArtifacts(side1, side2)

	seen := map[string]int{}
	for _, path := range report.Diffs {
		seen[path]++
	}
	for _, path := range report.MissingIn1 {
		seen[path]++
	}
	for _, path := range report.MissingIn2 {
		seen[path]++
	}
	for path, count := range seen {
		if count > 1 {
			t.Errorf("path %s appears in %d sets", path, count)
		}
	}
}

func TestAggregating(t *testing.T) {
	for rclass, want := range map[string]bool{
		"VIRTUAL":   true,
		"REMOTE":    true,
		"LOCAL":     false,
		"FEDERATED": false,
	} {
		if got := Aggregating(rclass); got != want {
			t.Errorf("Aggregating(%s) = %v, want %v", rclass, got, want)
		}
	}
}

func TestBuildReport(t *testing.T) {
	repos := RepositoryReport{
		MissingIn1:     []string{},
		MissingIn2:     []string{},
		RclassMismatch: []string{},
	}

	t.Run("drops empty artifact entries", func(t *testing.T) {
		report := BuildReport(repos, map[string]ArtifactReport{
			"clean": {},
			"dirty": {Diffs: []string{"/x.jar"}},
		}, true)
		if _, ok := report.Artifacts["clean"]; ok {
			t.Error("fully identical repository should be omitted")
		}
		if _, ok := report.Artifacts["dirty"]; !ok {
			t.Error("differing repository missing from artifacts")
		}
	})

	t.Run("artifacts null when not requested", func(t *testing.T) {
		report := BuildReport(repos, nil, false)
		data, err := json.Marshal(report)
		if err != nil {
			t.Fatal(err)
		}
		want := `{"repositories":{"missing_in_1":[],"missing_in_2":[],"rclass_mismatch":[]},"artifacts":null}`
		if string(data) != want {
			t.Errorf("got %s, want %s", data, want)
		}
	})

	t.Run("artifacts empty object when requested with no diffs", func(t *testing.T) {
		report := BuildReport(repos, nil, true)
		data, err := json.Marshal(report)
		if err != nil {
			t.Fatal(err)
		}
		want := `{"repositories":{"missing_in_1":[],"missing_in_2":[],"rclass_mismatch":[]},"artifacts":{}}`
		if string(data) != want {
			t.Errorf("got %s, want %s", data, want)
		}
	})
}
