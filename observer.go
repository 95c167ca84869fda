package pdflayout

import "github.com/tsawler/pdflayout/model"

// Observer is notified as a document is processed. Calls are serialized but
// pages are reported in completion order, not page order. Observers never
// influence the returned results.
type Observer interface {
	// OnPage is called once for every page that finished processing.
	OnPage(page model.PageResult)

	// OnDone is called once after all pages succeeded.
	OnDone(pageCount int)
}

// ObserverFuncs adapts plain functions to the Observer interface. Nil fields
// are skipped.
type ObserverFuncs struct {
	Page func(page model.PageResult)
	Done func(pageCount int)
}

// OnPage calls f.Page if set.
func (f ObserverFuncs) OnPage(page model.PageResult) {
	if f.Page != nil {
		f.Page(page)
	}
}

// OnDone calls f.Done if set.
func (f ObserverFuncs) OnDone(pageCount int) {
	if f.Done != nil {
		f.Done(pageCount)
	}
}
