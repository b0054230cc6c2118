package mutate

type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
	NotifyInfo    NotificationKind = "info"
	NotifyWarning NotificationKind = "warning"
)

// Notification is a transient user-facing message (snackbar, minibuffer, stderr).
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
}

// Notifier shows notifications. Calls are fire-and-forget.
type Notifier interface {
	Notify(Notification)
}

type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Recorder collects notifications in order.
type Recorder struct {
	Notes []Notification
}

func (r *Recorder) Notify(n Notification) { r.Notes = append(r.Notes, n) }

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	if len(r.Notes) == 0 {
		return Notification{}, false
	}
	return r.Notes[len(r.Notes)-1], true
}
