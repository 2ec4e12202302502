package ui

// Feedback holds at most one pending error and one pending success message.
type Feedback struct {
	errMsg     string
	successMsg string
}

func (f *Feedback) SetError(msg string)   { f.errMsg = msg }
func (f *Feedback) SetSuccess(msg string) { f.successMsg = msg }

func (f *Feedback) Clear() {
	f.errMsg = ""
	f.successMsg = ""
}

// Pending returns the message to draw this cycle. An error wins over a
// success message.
func (f *Feedback) Pending() (msg string, isErr bool) {
	if f.errMsg != "" {
		return f.errMsg, true
	}
	return f.successMsg, false
}
