package workflow

import (
	"testing"

	"github.com/mkglobal/bizportal/internal/models"
)

func TestEveryStatusHasLabel(t *testing.T) {
	for _, table := range Transitions {
		for st := range table {
			label := LabelFor(st)
			if label == unknownLabel {
				t.Errorf("status %q falls through to the unknown label", st)
			}
			if label.Label == "" || label.Color == "" {
				t.Errorf("status %q has an incomplete label: %+v", st, label)
			}
		}
	}
}

func TestUnknownStatusFallsBack(t *testing.T) {
	label := LabelFor(models.TaskStatus("SOMETHING_NEW"))
	if label != unknownLabel {
		t.Errorf("expected unknown fallback, got %+v", label)
	}
}
