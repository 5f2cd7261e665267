package storage

import (
	"errors"
	"testing"
	"time"

	"rts/internal/config"
	"rts/internal/domain"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.Flags.ProjectsPath = t.TempDir()
	return cfg
}

func TestJSONStorage_SaveAndLoad(t *testing.T) {
	cfg := testConfig(t)
	st := NewJSONStorage(cfg)

	results := []domain.ProjectResult{
		{Project: domain.Project{Name: "unitAnnotation"}, Expected: 1, Selected: 1, Matched: true},
		{Project: domain.Project{Name: "unitEnum"}, Expected: 2, Selected: 1},
		{Project: domain.Project{Name: "unitBroken"}, Stage: domain.StageCompileV2, Err: errors.New("javac failed")},
	}
	mismatches := []domain.Mismatch{
		{ProjectName: "unitEnum", Expected: 2, Selected: 1, Message: "expected 2 selected test(s), agent ran 1"},
		{ProjectName: "unitBroken", Stage: domain.StageCompileV2, Message: "javac failed"},
	}

	if err := st.Save(results, mismatches, 3*time.Second, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output, err := st.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	meta := output.Meta
	if meta.TotalProjects != 3 {
		t.Errorf("expected 3 total projects, got %d", meta.TotalProjects)
	}
	if meta.MatchedProjects != 1 {
		t.Errorf("expected 1 matched project, got %d", meta.MatchedProjects)
	}
	if meta.MismatchedProjects != 1 {
		t.Errorf("expected 1 mismatched project, got %d", meta.MismatchedProjects)
	}
	if meta.ErroredProjects != 1 {
		t.Errorf("expected 1 errored project, got %d", meta.ErroredProjects)
	}
	if meta.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", meta.Workers)
	}
	if meta.DurationSeconds != 3 {
		t.Errorf("expected 3 duration seconds, got %f", meta.DurationSeconds)
	}

	if len(output.Details) != 2 {
		t.Fatalf("expected 2 mismatches, got %d", len(output.Details))
	}
	if output.Details[0].ProjectName != "unitEnum" {
		t.Errorf("expected unitEnum, got %s", output.Details[0].ProjectName)
	}
	if output.Details[1].Stage != domain.StageCompileV2 {
		t.Errorf("expected stage %s, got %s", domain.StageCompileV2, output.Details[1].Stage)
	}
}

func TestJSONStorage_SaveOutput_RoundTrip(t *testing.T) {
	cfg := testConfig(t)
	st := NewJSONStorage(cfg)

	output := &domain.ResultsOutput{
		Meta: domain.ResultsMeta{TotalProjects: 1, MismatchedProjects: 1, Workers: 1},
		Details: []domain.Mismatch{
			{ProjectName: "unitSuite", Expected: 3, Selected: 0, Resolved: true},
		},
	}

	if err := st.SaveOutput(output); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := st.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded.Details) != 1 || !loaded.Details[0].Resolved {
		t.Error("resolved flag lost in round trip")
	}
}

func TestJSONStorage_Load_MissingFile(t *testing.T) {
	st := NewJSONStorage(testConfig(t))
	if _, err := st.Load(); err == nil {
		t.Error("expected error when no results file exists")
	}
}
