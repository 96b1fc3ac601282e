package pipeline

import (
	"testing"

	"infla/internal/model"
)

func TestSubtree(t *testing.T) {
	date := monthOf(2023, 12)
	records := []model.InflationRecord{
		infl("DE", "CP00", date, 3.0),
		infl("DE", "CP01", date, 5.0),
		infl("DE", "CP011", date, 6.0),
		infl("DE", "CP0111", date, 7.0),
		infl("DE", "CP012", date, 4.0),
		infl("DE", "CP04", date, 9.0),
		infl("DE", "CP045", date, 12.0),
	}

	food := Subtree(records, "CP01")
	if len(food) != 4 {
		t.Fatalf("len(Subtree CP01) = %d, want 4", len(food))
	}
	for _, r := range food {
		switch r.ProductCode {
		case "CP01", "CP011", "CP0111", "CP012":
		default:
			t.Errorf("Subtree CP01 contains %s", r.ProductCode)
		}
	}

	housing := Subtree(records, "CP04")
	if len(housing) != 2 {
		t.Fatalf("len(Subtree CP04) = %d, want 2", len(housing))
	}

	if got := Subtree(records, ""); got != nil {
		t.Errorf("Subtree with empty code = %d records, want nil", len(got))
	}
}
