package service

import (
	"context"
	"testing"

	"europarl-tamv/pkg/db"
	"europarl-tamv/pkg/model"
)

func TestExportService(t *testing.T) {
	conn, err := db.OpenDuckDB("")
	if err != nil {
		t.Fatalf("OpenDuckDB() error = %v", err)
	}
	defer conn.Close()

	c := NewRecordConverter()
	records := make([]*model.NormalizedRecord, 0)
	for _, l := range []string{
		"1\t3\tworks\tyes\twork\tpres\tindicative\tactive\tno\tno",
		"2\t1\twould have been done\tyes\tdo\tcondII\tsubjunctive\tpassive\tno\tno",
		"3\t1\twould say\tyes\tsay\tcondI\tsubjunctive\tactive\tno\tno",
	} {
		rec, err := c.ParseLine(l)
		if err != nil || rec == nil {
			t.Fatalf("ParseLine(%q) = %v, %v", l, rec, err)
		}
		records = append(records, rec)
	}

	ctx := context.Background()
	svc := NewExportService(conn, "tamv_annotations")

	firstRun, err := svc.Export(ctx, records)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	secondRun, err := svc.Export(ctx, records[:1])
	if err != nil {
		t.Fatalf("second Export() error = %v", err)
	}
	if firstRun == secondRun {
		t.Errorf("run ids not unique: %s", firstRun)
	}

	count, err := svc.CountRun(ctx, firstRun)
	if err != nil {
		t.Fatalf("CountRun() error = %v", err)
	}
	if count != 3 {
		t.Errorf("CountRun() = %d, want 3", count)
	}

	counts, err := svc.CategoryCounts(ctx, firstRun)
	if err != nil {
		t.Fatalf("CategoryCounts() error = %v", err)
	}
	if counts["mood_subjunctive"] != 2 || counts["tense_present"] != 1 {
		t.Errorf("CategoryCounts() = %v", counts)
	}
}

func TestExportService_NoConnection(t *testing.T) {
	svc := NewExportService(nil, "tamv_annotations")
	if _, err := svc.Export(context.Background(), nil); err == nil {
		t.Error("Export() error = nil, want error without connection")
	}
	if _, err := svc.CountRun(context.Background(), "x"); err == nil {
		t.Error("CountRun() error = nil, want error without connection")
	}
}
