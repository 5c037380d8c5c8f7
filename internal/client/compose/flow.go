// Package compose implements the compose-post flow: collecting images and
// text, tracking the address of the current position, and saving the post.
//
// A Flow lives as long as one compose screen. It subscribes to the location
// provider on creation and releases everything on Close; results of
// geocoding or saving that complete after Close are discarded.
package compose

import (
	"context"
	"errors"
	"image"
	"sync"

	"github.com/dmitrijs2005/world/internal/client/camera"
	"github.com/dmitrijs2005/world/internal/client/geocode"
	"github.com/dmitrijs2005/world/internal/client/location"
	"github.com/dmitrijs2005/world/internal/client/models"
	"github.com/dmitrijs2005/world/internal/client/photolib"
	"github.com/dmitrijs2005/world/internal/client/services"
	"github.com/dmitrijs2005/world/internal/logging"
)

// LocationSource is the part of location.Provider the flow needs.
type LocationSource interface {
	Coordinate() (models.Coordinate, bool)
	ErrorMessage() (string, bool)
	Subscribe() (<-chan location.State, func())
}

// Deps are the collaborators of a Flow.
type Deps struct {
	Location LocationSource
	Camera   camera.Camera
	Library  photolib.Library
	Geocoder geocode.Geocoder
	Storage  services.PostStorageService
}

type Flow struct {
	deps Deps
	log  logging.Logger

	ctx         context.Context
	cancel      context.CancelFunc
	unsubscribe func()
	wg          sync.WaitGroup

	mu        sync.Mutex
	images    []image.Image
	text      string
	saving    bool
	closed    bool
	coord     models.Coordinate
	hasCoord  bool
	address   string
	resolving bool
	seq       uint64
}

// NewFlow starts a compose session. The flow is bound to parent: cancelling
// it has the same effect as Close on in-flight work.
func NewFlow(parent context.Context, deps Deps, log logging.Logger) *Flow {
	ctx, cancel := context.WithCancel(parent)
	f := &Flow{
		deps:   deps,
		log:    log.With("component", "compose"),
		ctx:    ctx,
		cancel: cancel,
	}

	ch, unsubscribe := deps.Location.Subscribe()
	f.unsubscribe = unsubscribe
	f.wg.Add(1)
	go f.watch(ch)

	return f
}

func (f *Flow) watch(ch <-chan location.State) {
	defer f.wg.Done()
	for st := range ch {
		f.onLocation(st)
	}
}

func (f *Flow) onLocation(st location.State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}

	if st.Kind != location.Available {
		if f.hasCoord {
			f.hasCoord = false
			f.coord = models.Coordinate{}
			f.address = ""
			f.resolving = false
			f.seq++
		}
		return
	}

	if f.hasCoord && f.coord == st.Coordinate {
		return
	}

	f.coord = st.Coordinate
	f.hasCoord = true
	f.address = ""
	f.resolving = true
	f.seq++

	f.wg.Add(1)
	go f.resolve(f.seq, st.Coordinate)
}

// resolve geocodes c and applies the label only if c is still the latest
// requested coordinate.
func (f *Flow) resolve(seq uint64, c models.Coordinate) {
	defer f.wg.Done()

	label := geocode.Label(f.ctx, f.deps.Geocoder, c)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed || seq != f.seq {
		f.log.Debug(f.ctx, "dropping stale address", "seq", seq, "latest", f.seq)
		return
	}
	f.address = label
	f.resolving = false
}

// Capture takes one image from the camera and appends it. A cancelled
// capture changes nothing.
func (f *Flow) Capture(ctx context.Context) error {
	if f.Closed() {
		return ErrClosed
	}

	ctx, cancel := f.bind(ctx)
	defer cancel()

	img, err := f.deps.Camera.Capture(ctx)
	if errors.Is(err, camera.ErrCancelled) {
		return nil
	}
	if err != nil {
		return err
	}
	return f.AddImage(img)
}

func (f *Flow) AddImage(img image.Image) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	f.images = append(f.images, img)
	return nil
}

// RemoveImage removes the i-th image (0-based).
func (f *Flow) RemoveImage(i int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	if i < 0 || i >= len(f.images) {
		return ErrNoSuchImage
	}
	f.images = append(f.images[:i], f.images[i+1:]...)
	return nil
}

// Images returns the number of captured images.
func (f *Flow) Images() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.images)
}

func (f *Flow) SetText(s string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	f.text = s
	return nil
}

func (f *Flow) Text() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.text
}

// CanSave reports whether the save action is enabled.
func (f *Flow) CanSave() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.canSaveLocked()
}

func (f *Flow) canSaveLocked() bool {
	return !f.closed && !f.saving && (f.text != "" || len(f.images) > 0)
}

// Saving reports whether a save is in flight.
func (f *Flow) Saving() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saving
}

// LocationLabel describes the post's location for display.
func (f *Flow) LocationLabel() string {
	f.mu.Lock()
	address, resolving := f.address, f.resolving
	f.mu.Unlock()

	if address != "" {
		return address
	}
	if resolving {
		return LabelResolving
	}
	if _, ok := f.deps.Location.ErrorMessage(); ok {
		return LabelNotAuthorized
	}
	if _, ok := f.deps.Location.Coordinate(); ok {
		return LabelResolving
	}
	return LabelLocating
}

// Save persists the images and the post. On success the flow is closed and
// the stored record returned. On failure the draft is kept so the user can
// retry; photos already written by the failed attempt are deleted.
func (f *Flow) Save(ctx context.Context) (models.PostRecord, error) {
	f.mu.Lock()
	switch {
	case f.closed:
		f.mu.Unlock()
		return models.PostRecord{}, ErrClosed
	case f.saving:
		f.mu.Unlock()
		return models.PostRecord{}, ErrSaveInProgress
	case !f.canSaveLocked():
		f.mu.Unlock()
		return models.PostRecord{}, ErrNothingToSave
	}
	f.saving = true
	images := append([]image.Image(nil), f.images...)
	text := f.text
	f.mu.Unlock()

	ctx, cancel := f.bind(ctx)
	defer cancel()

	record, err := f.save(ctx, images, text)

	f.mu.Lock()
	f.saving = false
	f.mu.Unlock()

	if err != nil {
		f.log.Warn(ctx, "save failed", "err", err, "images", len(images))
		return models.PostRecord{}, err
	}

	f.log.Info(ctx, "post saved", "id", record.ID, "images", len(images))
	f.Close()
	return record, nil
}

func (f *Flow) save(ctx context.Context, images []image.Image, text string) (models.PostRecord, error) {
	var refs []string

	if len(images) > 0 {
		auth, err := f.deps.Library.RequestWriteAuthorization(ctx)
		if err != nil {
			return models.PostRecord{}, fail(ErrPhotoPermissionDenied, err)
		}
		if !auth.CanWrite() {
			return models.PostRecord{}, ErrPhotoPermissionDenied
		}

		for i, img := range images {
			ref, err := f.deps.Library.Persist(ctx, img)
			if err != nil {
				f.compensate(ctx, refs)
				f.log.Debug(ctx, "photo persist failed", "index", i, "err", err)
				return models.PostRecord{}, fail(ErrPhotoSaveFailed, err)
			}
			refs = append(refs, ref)
		}
	}

	coord, ok := f.deps.Location.Coordinate()
	if !ok {
		f.compensate(ctx, refs)
		return models.PostRecord{}, ErrLocationUnavailable
	}

	record := models.NewPostRecord(text, refs, coord)
	if err := f.deps.Storage.Save(ctx, record); err != nil {
		f.compensate(ctx, refs)
		return models.PostRecord{}, fail(ErrPersistenceFailed, err)
	}
	return record, nil
}

// compensate deletes photos written by a failed save attempt. Failures are
// only logged.
func (f *Flow) compensate(ctx context.Context, refs []string) {
	ctx = context.WithoutCancel(ctx)
	for _, ref := range refs {
		if err := f.deps.Library.Delete(ctx, ref); err != nil {
			f.log.Warn(ctx, "failed to delete orphaned photo", "ref", ref, "err", err)
		}
	}
}

// bind derives a context that is also cancelled when the flow closes.
func (f *Flow) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(f.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// Close ends the session: in-flight geocoding and saves are cancelled and
// the location subscription is released. Close is idempotent.
func (f *Flow) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	f.mu.Unlock()

	f.cancel()
	f.unsubscribe()
	f.wg.Wait()
}

func (f *Flow) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
