// Package jobs defines the asynq task names and payloads shared by the API
// and the worker.
package jobs

// Task names.
const (
	// TaskReminderTick runs every minute from the scheduler and fans out
	// TaskReminderSend for each due user.
	TaskReminderTick = "reminder:tick"

	// TaskReminderSend delivers one reminder message to one user.
	TaskReminderSend = "reminder:send"

	// TaskWeeklyReportFanout runs weekly and fans out TaskWeeklyReport.
	TaskWeeklyReportFanout = "report:weekly_fanout"

	// TaskWeeklyReport renders and delivers one user's weekly report.
	TaskWeeklyReport = "report:weekly"
)

// ReminderSendPayload carries one rendered reminder.
type ReminderSendPayload struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

// WeeklyReportPayload identifies the user to report on.
type WeeklyReportPayload struct {
	ChatID int64 `json:"chat_id"`
}
