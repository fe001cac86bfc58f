package models

// StatusMeta carries the display metadata every client renders for a
// lifecycle stage, so the badge labels and legend colors stay consistent
// across consumers.
type StatusMeta struct {
	Label string
	Color string
}

var statusMeta = map[SessionStatus]StatusMeta{
	StatusScheduled: {Label: "Scheduled", Color: "#60A5FA"},
	StatusCompleted: {Label: "Finished", Color: "#FBBF24"},
	StatusPaid:      {Label: "Paid", Color: "#34D399"},
}

func MetaForStatus(status SessionStatus) StatusMeta {
	return statusMeta[status]
}
