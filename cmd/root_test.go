package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"europarl-tamv/pkg/db"
	"europarl-tamv/pkg/model"
	"europarl-tamv/pkg/service"
)

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	if cmd.Use != "europarl-tamv" {
		t.Errorf("Use = %q, want %q", cmd.Use, "europarl-tamv")
	}
	if cmd.PersistentFlags().Lookup("config") == nil {
		t.Error("missing --config flag")
	}
	for _, name := range []string{"convert", "version"} {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
			}
		}
		if !found {
			t.Errorf("missing %q subcommand", name)
		}
	}
}

// setupDataDir 写入输入文件和指向它的配置文件
func setupDataDir(t *testing.T, input string) (configPath, dataDir string) {
	t.Helper()
	dir := t.TempDir()
	dataDir = filepath.Join(dir, "data")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, "europarl_expected.tsv"), []byte(input), 0644); err != nil {
		t.Fatal(err)
	}
	configPath = filepath.Join(dir, "config.yaml")
	content := "convert:\n  dataDir: " + dataDir + "\nlog:\n  level: error\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return configPath, dataDir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand_RunsConversion(t *testing.T) {
	configPath, dataDir := setupDataDir(t, "3\tworked\tworked\tyes\twork\tpres\tindicative\tactive\tno\tno\n")

	for _, args := range [][]string{
		{"--config", configPath},
		{"convert", "--config", configPath},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			out, err := execute(t, args...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if !strings.Contains(out, "Converted 1 verb annotations") {
				t.Errorf("output missing count:\n%s", out)
			}
			if !strings.Contains(out, "  work: PRESENT-SIMPLE-INDICATIVE-ACTIVE") {
				t.Errorf("output missing sample:\n%s", out)
			}
			if !strings.Contains(out, "Mood distribution: {INDICATIVE: 1}") {
				t.Errorf("output missing distribution:\n%s", out)
			}

			data, err := os.ReadFile(filepath.Join(dataDir, "europarl_tamv.tsv"))
			if err != nil {
				t.Fatalf("read output: %v", err)
			}
			want := "index\tverb\ttense\taspect\tmood\tvoice\tcategory\tsource\n" +
				"3\twork\tPRESENT\tSIMPLE\tINDICATIVE\tACTIVE\ttense_present\tRamm et al. (Europarl)\n"
			if string(data) != want {
				t.Errorf("output file = %q, want %q", data, want)
			}
		})
	}
}

func TestRootCommand_MissingInput(t *testing.T) {
	configPath, dataDir := setupDataDir(t, "")
	if err := os.Remove(filepath.Join(dataDir, "europarl_expected.tsv")); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "--config", configPath); err == nil {
		t.Fatal("Execute() error = nil, want error for missing input")
	}
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("log:\n  level: loud\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "--config", configPath); err == nil {
		t.Fatal("Execute() error = nil, want validation error")
	}
}

func TestRootCommand_RejectsArgs(t *testing.T) {
	if _, err := execute(t, "extra"); err == nil {
		t.Fatal("Execute() error = nil, want error for positional args")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	var info map[string]string
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("version output is not JSON: %v\n%s", err, out)
	}
	if info["version"] == "" {
		t.Errorf("version missing: %v", info)
	}
}

func TestReportExport(t *testing.T) {
	conn, err := db.OpenDuckDB("")
	if err != nil {
		t.Fatalf("OpenDuckDB() error = %v", err)
	}
	defer conn.Close()

	c := service.NewRecordConverter()
	records := make([]*model.NormalizedRecord, 0)
	for _, l := range []string{
		"1\t3\tworks\tyes\twork\tpres\tindicative\tactive\tno\tno",
		"2\t1\twould say\tyes\tsay\tcondI\tsubjunctive\tactive\tno\tno",
		"3\t1\tis running\tyes\trun\tpres\tindicative\tactive\tyes\tno",
		"4\t1\twould go\tyes\tgo\tcondI\tsubjunctive\tactive\tno\tno",
	} {
		rec, err := c.ParseLine(l)
		if err != nil || rec == nil {
			t.Fatalf("ParseLine(%q) = %v, %v", l, rec, err)
		}
		records = append(records, rec)
	}

	ctx := context.Background()
	exportService := service.NewExportService(conn, "tamv_annotations")
	runID, err := exportService.Export(ctx, records)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	stats := reportExport(ctx, exportService, runID)
	if stats.Count != 4 {
		t.Errorf("Count = %d, want 4", stats.Count)
	}
	want := map[string]int64{"tense_present": 1, "mood_subjunctive": 2, "aspect_progressive": 1}
	if len(stats.Categories) != len(want) {
		t.Fatalf("Categories = %v, want %v", stats.Categories, want)
	}
	for k, v := range want {
		if stats.Categories[k] != v {
			t.Errorf("Categories[%q] = %d, want %d", k, stats.Categories[k], v)
		}
	}
}

func TestRootCommand_ExportsToDuckDB(t *testing.T) {
	configPath, dataDir := setupDataDir(t, "3\tworked\tworked\tyes\twork\tpres\tindicative\tactive\tno\tno\n")
	dbPath := filepath.Join(dataDir, "tamv.duckdb")
	content := "convert:\n  dataDir: " + dataDir + "\nduckdb:\n  enabled: true\n  dbPath: " + dbPath + "\nlog:\n  level: error\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "--config", configPath); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("duckdb file not created: %v", err)
	}
}
