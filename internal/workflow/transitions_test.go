package workflow

import (
	"testing"

	"github.com/mkglobal/bizportal/internal/models"
)

func TestApplyFollowsLifecycles(t *testing.T) {
	tests := []struct {
		name    string
		wt      models.WorkflowType
		from    models.TaskStatus
		action  Action
		want    models.TaskStatus
		wantErr bool
	}{
		// Outbound forward path
		{"sales submit to shipping order", models.WorkflowSales, models.StatusErpSubmitted, ActionNext, models.StatusShippingOrder, false},
		{"sales shipping order to picking", models.WorkflowSales, models.StatusShippingOrder, ActionNext, models.StatusPicking, false},
		{"sales picking to shipped", models.WorkflowSales, models.StatusPicking, ActionNext, models.StatusShipped, false},
		{"sales shipped to delivered", models.WorkflowSales, models.StatusShipped, ActionNext, models.StatusDelivered, false},

		// Outbound backward path
		{"sales picking back to shipping order", models.WorkflowSales, models.StatusPicking, ActionPrev, models.StatusShippingOrder, false},
		{"sales shipped back to picking", models.WorkflowSales, models.StatusShipped, ActionPrev, models.StatusPicking, false},

		// Inbound forward path
		{"purchase submit to receiving", models.WorkflowPurchase, models.StatusErpSubmitted, ActionNext, models.StatusReceivingScheduled, false},
		{"purchase receiving to inspecting", models.WorkflowPurchase, models.StatusReceivingScheduled, ActionNext, models.StatusInspecting, false},
		{"purchase inspecting to received", models.WorkflowPurchase, models.StatusInspecting, ActionNext, models.StatusReceived, false},
		{"purchase received to stocked", models.WorkflowPurchase, models.StatusReceived, ActionNext, models.StatusStocked, false},

		// Inbound backward path
		{"purchase inspecting back to receiving", models.WorkflowPurchase, models.StatusInspecting, ActionPrev, models.StatusReceivingScheduled, false},
		{"purchase received back to inspecting", models.WorkflowPurchase, models.StatusReceived, ActionPrev, models.StatusInspecting, false},

		// Illegal moves
		{"delivered is final", models.WorkflowSales, models.StatusDelivered, ActionNext, "", true},
		{"stocked is final", models.WorkflowPurchase, models.StatusStocked, ActionNext, "", true},
		{"cannot revert initial status", models.WorkflowSales, models.StatusErpSubmitted, ActionPrev, "", true},
		{"cannot revert shipping order", models.WorkflowSales, models.StatusShippingOrder, ActionPrev, "", true},
		{"cannot revert delivered", models.WorkflowSales, models.StatusDelivered, ActionPrev, "", true},
		{"cross-lifecycle status rejected", models.WorkflowSales, models.StatusInspecting, ActionNext, "", true},
		{"unknown status rejected", models.WorkflowPurchase, "TELEPORTED", ActionNext, "", true},
		{"unknown workflow type rejected", "TRANSFER", models.StatusPicking, ActionNext, "", true},
		{"unknown action rejected", models.WorkflowSales, models.StatusPicking, "sideways", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.wt, tt.from, tt.action)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got transition to %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLifecyclesNeverCross(t *testing.T) {
	// Walk every reachable status per type; none may belong to the
	// other type's lifecycle.
	salesOnly := map[models.TaskStatus]bool{
		models.StatusShippingOrder: true,
		models.StatusPicking:       true,
		models.StatusShipped:       true,
		models.StatusDelivered:     true,
	}
	purchaseOnly := map[models.TaskStatus]bool{
		models.StatusReceivingScheduled: true,
		models.StatusInspecting:         true,
		models.StatusReceived:           true,
		models.StatusStocked:            true,
	}

	for st := range Transitions[models.WorkflowSales] {
		if purchaseOnly[st] {
			t.Errorf("purchase status %q reachable in sales lifecycle", st)
		}
	}
	for st := range Transitions[models.WorkflowPurchase] {
		if salesOnly[st] {
			t.Errorf("sales status %q reachable in purchase lifecycle", st)
		}
	}
}

func TestTerminalStatusesAreDeadEnds(t *testing.T) {
	for st := range TerminalStatuses {
		for wt, table := range Transitions {
			tr, ok := table[st]
			if !ok {
				continue
			}
			if tr.Next != nil || tr.Prev != nil {
				t.Errorf("terminal status %q has outgoing transitions in %s lifecycle", st, wt)
			}
		}
	}
}

func TestAllowedActions(t *testing.T) {
	tests := []struct {
		wt   models.WorkflowType
		st   models.TaskStatus
		want []Action
	}{
		{models.WorkflowSales, models.StatusErpSubmitted, []Action{ActionNext}},
		{models.WorkflowSales, models.StatusPicking, []Action{ActionNext, ActionPrev}},
		{models.WorkflowSales, models.StatusDelivered, nil},
		{models.WorkflowPurchase, models.StatusStocked, nil},
		{models.WorkflowPurchase, "NONSENSE", nil},
	}
	for _, tt := range tests {
		got := AllowedActions(tt.wt, tt.st)
		if len(got) != len(tt.want) {
			t.Errorf("%s/%s: expected %v, got %v", tt.wt, tt.st, tt.want, got)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s/%s: expected %v, got %v", tt.wt, tt.st, tt.want, got)
			}
		}
	}
}

func TestCompletedStatuses(t *testing.T) {
	completed := []models.TaskStatus{
		models.StatusShipped, models.StatusDelivered,
		models.StatusReceived, models.StatusStocked,
	}
	for _, st := range completed {
		if !CompletedStatuses[st] {
			t.Errorf("%q should count as completed", st)
		}
	}
	active := []models.TaskStatus{
		models.StatusErpSubmitted, models.StatusShippingOrder,
		models.StatusPicking, models.StatusReceivingScheduled,
		models.StatusInspecting,
	}
	for _, st := range active {
		if CompletedStatuses[st] {
			t.Errorf("%q should not count as completed", st)
		}
	}
}
