// Package uploadflow drives the two-phase template upload from the client
// side: validate locally, request presigned destinations, transfer blobs,
// then finalize. It mirrors the server's validation rules so a flow that
// passes locally is not rejected at request time for rule violations.
package uploadflow

import (
	"errors"
	"fmt"

	"framecanvas-backend/internal/domains/upload/model"
)

type State string

const (
	StateDraft                State = "draft"
	StateValidating           State = "validating"
	StateRequestingUpload     State = "requesting_upload"
	StateAwaitingBlobTransfer State = "awaiting_blob_transfer"
	StateFinalizing           State = "finalizing"
	StateComplete             State = "complete"
	StateFailed               State = "failed"
)

var (
	ErrWrongState          = errors.New("operation not allowed in current state")
	ErrIndexOutOfRange     = errors.New("media index out of range")
	ErrTargetCountMismatch = errors.New("target count does not match media count")
	ErrTransfersPending    = errors.New("not all blob transfers have completed")
)

// MediaItem is one queued carousel image with its transfer bookkeeping.
type MediaItem struct {
	Meta        model.MediaItemMeta
	Target      *model.UploadTarget
	Transferred bool
	TransferErr error
}

// Flow is the state machine for one template submission. It is not safe
// for concurrent use; callers drive it from a single goroutine.
type Flow struct {
	state State
	err   error

	template       model.TemplateUploadRequest
	templateTarget *model.UploadTarget
	templateDone   bool
	templateErr    error

	media []MediaItem
}

func New(template model.TemplateUploadRequest) *Flow {
	return &Flow{state: StateDraft, template: template}
}

func (f *Flow) State() State { return f.state }

// Err returns the failure cause when the flow is in StateFailed.
func (f *Flow) Err() error { return f.err }

func (f *Flow) Template() model.TemplateUploadRequest { return f.template }

// Media returns the queued items in display order.
func (f *Flow) Media() []MediaItem {
	out := make([]MediaItem, len(f.media))
	copy(out, f.media)
	return out
}

func (f *Flow) SetTemplate(template model.TemplateUploadRequest) error {
	if f.state != StateDraft {
		return ErrWrongState
	}
	f.template = template
	return nil
}

// AddMedia appends an image to the carousel queue.
func (f *Flow) AddMedia(meta model.MediaItemMeta) error {
	if f.state != StateDraft {
		return ErrWrongState
	}
	if len(f.media) >= model.MaxMediaItems {
		return model.ErrTooManyImages
	}
	f.media = append(f.media, MediaItem{Meta: meta})
	return nil
}

func (f *Flow) RemoveMedia(index int) error {
	if f.state != StateDraft {
		return ErrWrongState
	}
	if index < 0 || index >= len(f.media) {
		return ErrIndexOutOfRange
	}
	f.media = append(f.media[:index], f.media[index+1:]...)
	return nil
}

// Reorder moves the item at from to position to, shifting the items in
// between. The semantics are remove-then-insert: to addresses the slice
// after the removal.
func (f *Flow) Reorder(from, to int) error {
	if f.state != StateDraft {
		return ErrWrongState
	}
	if from < 0 || from >= len(f.media) {
		return ErrIndexOutOfRange
	}
	item := f.media[from]
	rest := append(f.media[:from:from], f.media[from+1:]...)
	if to < 0 || to > len(rest) {
		return ErrIndexOutOfRange
	}
	f.media = append(rest[:to:to], append([]MediaItem{item}, rest[to:]...)...)
	return nil
}

// Begin validates the draft locally and, on success, moves the flow to
// RequestingUpload. A rule violation moves it to Failed.
func (f *Flow) Begin() error {
	if f.state != StateDraft {
		return ErrWrongState
	}
	f.state = StateValidating

	if err := f.template.Validate(); err != nil {
		return f.fail(err)
	}
	metas := make([]model.MediaItemMeta, len(f.media))
	for i, m := range f.media {
		metas[i] = m.Meta
	}
	if err := model.CheckMediaItems(metas); err != nil {
		return f.fail(err)
	}

	f.state = StateRequestingUpload
	return nil
}

// SetTargets records the presigned destinations the server handed back.
// Media targets must be index-aligned with the queued items.
func (f *Flow) SetTargets(template model.UploadTarget, media []model.UploadTarget) error {
	if f.state != StateRequestingUpload {
		return ErrWrongState
	}
	if len(media) != len(f.media) {
		return f.fail(fmt.Errorf("%w: got %d targets for %d items", ErrTargetCountMismatch, len(media), len(f.media)))
	}

	f.templateTarget = &template
	for i := range f.media {
		target := media[i]
		f.media[i].Target = &target
	}
	f.state = StateAwaitingBlobTransfer
	return nil
}

// MarkTemplateTransferred records the result of the template file PUT.
func (f *Flow) MarkTemplateTransferred(err error) error {
	if f.state != StateAwaitingBlobTransfer {
		return ErrWrongState
	}
	f.templateDone = err == nil
	f.templateErr = err
	return nil
}

// MarkMediaTransferred records the result of one image PUT.
func (f *Flow) MarkMediaTransferred(index int, err error) error {
	if f.state != StateAwaitingBlobTransfer {
		return ErrWrongState
	}
	if index < 0 || index >= len(f.media) {
		return ErrIndexOutOfRange
	}
	f.media[index].Transferred = err == nil
	f.media[index].TransferErr = err
	return nil
}

// TransfersComplete reports whether every blob PUT has succeeded.
func (f *Flow) TransfersComplete() bool {
	if !f.templateDone {
		return false
	}
	for _, m := range f.media {
		if !m.Transferred {
			return false
		}
	}
	return true
}

// Finalize gates on all transfers having succeeded, then moves the flow to
// Finalizing so the caller can issue the finalize requests.
func (f *Flow) Finalize() error {
	if f.state != StateAwaitingBlobTransfer {
		return ErrWrongState
	}
	if !f.TransfersComplete() {
		return ErrTransfersPending
	}
	f.state = StateFinalizing
	return nil
}

// Complete marks the flow done after both finalize calls succeeded.
func (f *Flow) Complete() error {
	if f.state != StateFinalizing {
		return ErrWrongState
	}
	f.state = StateComplete
	return nil
}

// Fail moves the flow to the terminal failed state with a cause.
func (f *Flow) Fail(err error) {
	f.fail(err)
}

func (f *Flow) fail(err error) error {
	f.state = StateFailed
	f.err = err
	return err
}

// Reset returns a failed or completed flow to Draft, keeping the metadata
// and the media queue but clearing all transfer bookkeeping.
func (f *Flow) Reset() error {
	if f.state != StateFailed && f.state != StateComplete {
		return ErrWrongState
	}
	f.state = StateDraft
	f.err = nil
	f.templateTarget = nil
	f.templateDone = false
	f.templateErr = nil
	for i := range f.media {
		f.media[i].Target = nil
		f.media[i].Transferred = false
		f.media[i].TransferErr = nil
	}
	return nil
}
