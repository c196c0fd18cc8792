package workflow

import "github.com/mkglobal/bizportal/internal/models"

// StatusLabel is the display descriptor for a task status
type StatusLabel struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// statusLabels covers every status of both lifecycles
var statusLabels = map[models.TaskStatus]StatusLabel{
	models.StatusErpSubmitted:       {Label: "ERP 전송완료", Color: "gray"},
	models.StatusShippingOrder:      {Label: "출고지시", Color: "blue"},
	models.StatusPicking:            {Label: "피킹중", Color: "yellow"},
	models.StatusShipped:            {Label: "출고완료", Color: "green"},
	models.StatusDelivered:          {Label: "배송완료", Color: "green"},
	models.StatusReceivingScheduled: {Label: "입고예정", Color: "blue"},
	models.StatusInspecting:         {Label: "검수중", Color: "yellow"},
	models.StatusReceived:           {Label: "입고완료", Color: "green"},
	models.StatusStocked:            {Label: "적치완료", Color: "green"},
}

// unknownLabel keeps an unrecognized server value rendering gracefully
var unknownLabel = StatusLabel{Label: "알 수 없음", Color: "gray"}

// LabelFor returns the display descriptor for a status, falling back to
// a neutral label for values this build does not know about.
func LabelFor(st models.TaskStatus) StatusLabel {
	if l, ok := statusLabels[st]; ok {
		return l
	}
	return unknownLabel
}
