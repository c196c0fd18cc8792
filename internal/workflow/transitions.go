package workflow

import (
	"fmt"

	"github.com/mkglobal/bizportal/internal/models"
)

// Action is a requested status move
type Action string

const (
	ActionNext Action = "next"
	ActionPrev Action = "prev"
)

// Transition describes where a (workflowType, status) pair may go.
// Both the HTTP handler and any rendering layer consult this table, so
// transition legality lives in exactly one place.
type Transition struct {
	Next *models.TaskStatus
	Prev *models.TaskStatus
}

func status(s models.TaskStatus) *models.TaskStatus { return &s }

// Transitions is the complete fulfillment state machine.
//
// SALES:    ERP_SUBMITTED → SHIPPING_ORDER → PICKING → SHIPPED → DELIVERED
// PURCHASE: ERP_SUBMITTED → RECEIVING_SCHEDULED → INSPECTING → RECEIVED → STOCKED
//
// prev steps one stage back; ERP_SUBMITTED cannot be re-entered and
// the terminal stages (DELIVERED, STOCKED) cannot be reverted.
var Transitions = map[models.WorkflowType]map[models.TaskStatus]Transition{
	models.WorkflowSales: {
		models.StatusErpSubmitted:  {Next: status(models.StatusShippingOrder)},
		models.StatusShippingOrder: {Next: status(models.StatusPicking)},
		models.StatusPicking:       {Next: status(models.StatusShipped), Prev: status(models.StatusShippingOrder)},
		models.StatusShipped:       {Next: status(models.StatusDelivered), Prev: status(models.StatusPicking)},
		models.StatusDelivered:     {},
	},
	models.WorkflowPurchase: {
		models.StatusErpSubmitted:       {Next: status(models.StatusReceivingScheduled)},
		models.StatusReceivingScheduled: {Next: status(models.StatusInspecting)},
		models.StatusInspecting:         {Next: status(models.StatusReceived), Prev: status(models.StatusReceivingScheduled)},
		models.StatusReceived:           {Next: status(models.StatusStocked), Prev: status(models.StatusInspecting)},
		models.StatusStocked:            {},
	},
}

// CompletedStatuses are shown in the history view instead of the active list
var CompletedStatuses = map[models.TaskStatus]bool{
	models.StatusShipped:   true,
	models.StatusDelivered: true,
	models.StatusReceived:  true,
	models.StatusStocked:   true,
}

// TerminalStatuses end the lifecycle; no further next is possible
var TerminalStatuses = map[models.TaskStatus]bool{
	models.StatusDelivered: true,
	models.StatusStocked:   true,
}

// IsValidStatus reports whether the status belongs to the given
// workflow type's lifecycle (ERP_SUBMITTED belongs to both).
func IsValidStatus(wt models.WorkflowType, st models.TaskStatus) bool {
	table, ok := Transitions[wt]
	if !ok {
		return false
	}
	_, ok = table[st]
	return ok
}

// AllowedActions returns the actions legal for the pair, in a stable order
func AllowedActions(wt models.WorkflowType, st models.TaskStatus) []Action {
	tr, ok := Transitions[wt][st]
	if !ok {
		return nil
	}
	var actions []Action
	if tr.Next != nil {
		actions = append(actions, ActionNext)
	}
	if tr.Prev != nil {
		actions = append(actions, ActionPrev)
	}
	return actions
}

// Apply resolves the action against the table and returns the resulting
// status. The caller persists the result; Apply itself mutates nothing.
func Apply(wt models.WorkflowType, st models.TaskStatus, action Action) (models.TaskStatus, error) {
	table, ok := Transitions[wt]
	if !ok {
		return "", fmt.Errorf("unknown workflow type %q", wt)
	}
	tr, ok := table[st]
	if !ok {
		return "", fmt.Errorf("unknown status %q for workflow type %q", st, wt)
	}

	switch action {
	case ActionNext:
		if tr.Next == nil {
			return "", fmt.Errorf("status %q is final, cannot advance", st)
		}
		return *tr.Next, nil
	case ActionPrev:
		if tr.Prev == nil {
			return "", fmt.Errorf("status %q cannot be reverted", st)
		}
		return *tr.Prev, nil
	default:
		return "", fmt.Errorf("unknown action %q", action)
	}
}
