package location

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/world/internal/client/models"
	"github.com/dmitrijs2005/world/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var beijing = models.Coordinate{Latitude: 39.9, Longitude: 116.4}

type fakeSource struct {
	status    AuthorizationStatus
	answer    AuthorizationStatus
	answerErr error
	fix       models.Coordinate
	fixErr    error

	prompts int
	locates int
}

func (f *fakeSource) AuthorizationStatus() AuthorizationStatus { return f.status }
func (f *fakeSource) RequestAuthorization(ctx context.Context) (AuthorizationStatus, error) {
	f.prompts++
	if f.answerErr != nil {
		return NotDetermined, f.answerErr
	}
	f.status = f.answer
	return f.answer, nil
}
func (f *fakeSource) Locate(ctx context.Context) (models.Coordinate, error) {
	f.locates++
	return f.fix, f.fixErr
}

func recvState(t *testing.T, ch <-chan State) State {
	t.Helper()
	select {
	case s, ok := <-ch:
		require.True(t, ok, "channel closed")
		return s
	case <-time.After(time.Second):
		t.Fatal("no state published")
		return State{}
	}
}

func TestProvider_InitialStateUnknown(t *testing.T) {
	p := NewProvider(&fakeSource{}, logging.Nop{})

	s := p.State()
	assert.Equal(t, Unknown, s.Kind)
	_, ok := p.Coordinate()
	assert.False(t, ok)
	_, ok = p.ErrorMessage()
	assert.False(t, ok)
	assert.Equal(t, NotDetermined, p.AuthorizationStatus())
}

func TestRequestLocation_PromptsThenLocates(t *testing.T) {
	src := &fakeSource{status: NotDetermined, answer: Authorized, fix: beijing}
	p := NewProvider(src, logging.Nop{})

	s := p.RequestLocation(context.Background())

	assert.Equal(t, 1, src.prompts)
	assert.Equal(t, 1, src.locates)
	assert.Equal(t, Available, s.Kind)
	assert.Equal(t, Authorized, s.Status)
	c, ok := p.Coordinate()
	require.True(t, ok)
	assert.Equal(t, beijing, c)
}

func TestRequestLocation_AlreadyAuthorized(t *testing.T) {
	src := &fakeSource{status: Authorized, fix: beijing}
	p := NewProvider(src, logging.Nop{})

	s := p.RequestLocation(context.Background())

	assert.Equal(t, 0, src.prompts)
	assert.Equal(t, Available, s.Kind)
}

func TestRequestLocation_DeniedAndRestricted(t *testing.T) {
	for _, st := range []AuthorizationStatus{Denied, Restricted} {
		t.Run(st.String(), func(t *testing.T) {
			src := &fakeSource{status: st}
			p := NewProvider(src, logging.Nop{})

			s := p.RequestLocation(context.Background())

			assert.Equal(t, 0, src.locates)
			assert.Equal(t, Unavailable, s.Kind)
			assert.Equal(t, MessageLocationDenied, s.Message)
			assert.Equal(t, st, p.AuthorizationStatus())
		})
	}
}

func TestRequestLocation_PromptRefused(t *testing.T) {
	src := &fakeSource{status: NotDetermined, answer: Denied}
	p := NewProvider(src, logging.Nop{})

	s := p.RequestLocation(context.Background())

	assert.Equal(t, Unavailable, s.Kind)
	assert.Equal(t, MessageLocationDeniedChange, s.Message)
	assert.Equal(t, 0, src.locates)
}

func TestRequestLocation_PromptError(t *testing.T) {
	src := &fakeSource{status: NotDetermined, answerErr: errors.New("prompt failed")}
	p := NewProvider(src, logging.Nop{})

	s := p.RequestLocation(context.Background())

	assert.Equal(t, Unavailable, s.Kind)
	assert.Equal(t, "prompt failed", s.Message)
}

func TestRequestLocation_FixError(t *testing.T) {
	src := &fakeSource{status: Authorized, fixErr: ErrNoFix}
	p := NewProvider(src, logging.Nop{})

	s := p.RequestLocation(context.Background())

	assert.Equal(t, Unavailable, s.Kind)
	msg, ok := p.ErrorMessage()
	require.True(t, ok)
	assert.Equal(t, ErrNoFix.Error(), msg)
}

func TestHandleAuthorizationChange_GrantClearsErrorAndLocates(t *testing.T) {
	src := &fakeSource{status: Denied, fix: beijing}
	p := NewProvider(src, logging.Nop{})
	p.RequestLocation(context.Background())
	require.Equal(t, Unavailable, p.State().Kind)

	p.HandleAuthorizationChange(context.Background(), Authorized)

	s := p.State()
	assert.Equal(t, Available, s.Kind)
	assert.Empty(t, s.Message)
	assert.Equal(t, beijing, s.Coordinate)
}

func TestHandleAuthorizationChange_RevokeDropsCoordinate(t *testing.T) {
	p := NewProvider(&fakeSource{status: Authorized, fix: beijing}, logging.Nop{})
	p.RequestLocation(context.Background())

	p.HandleAuthorizationChange(context.Background(), Restricted)

	_, ok := p.Coordinate()
	assert.False(t, ok)
	assert.Equal(t, Unavailable, p.State().Kind)
}

func TestHandleLocation_KeepsOnlyLatest(t *testing.T) {
	p := NewProvider(&fakeSource{}, logging.Nop{})

	p.HandleLocation(beijing)
	p.HandleLocation(models.Coordinate{Latitude: 31.23, Longitude: 121.47})

	c, ok := p.Coordinate()
	require.True(t, ok)
	assert.Equal(t, 31.23, c.Latitude)
}

func TestSubscribe_ReceivesCurrentThenChanges(t *testing.T) {
	p := NewProvider(&fakeSource{}, logging.Nop{})
	ch, cancel := p.Subscribe()
	defer cancel()

	assert.Equal(t, Unknown, recvState(t, ch).Kind)

	p.HandleLocation(beijing)
	s := recvState(t, ch)
	assert.Equal(t, Available, s.Kind)
	assert.Equal(t, beijing, s.Coordinate)
}

func TestSubscribe_SlowSubscriberSeesLatest(t *testing.T) {
	p := NewProvider(&fakeSource{}, logging.Nop{})
	ch, cancel := p.Subscribe()
	defer cancel()

	p.HandleLocation(beijing)
	p.HandleLocation(models.Coordinate{Latitude: 1, Longitude: 2})
	p.HandleError(errors.New("lost"))

	s := recvState(t, ch)
	assert.Equal(t, Unavailable, s.Kind)
	assert.Equal(t, "lost", s.Message)

	select {
	case extra := <-ch:
		t.Fatalf("unexpected extra state %+v", extra)
	default:
	}
}

func TestSubscribe_UnsubscribeClosesChannel(t *testing.T) {
	p := NewProvider(&fakeSource{}, logging.Nop{})
	ch, cancel := p.Subscribe()
	<-ch

	cancel()
	cancel()

	_, ok := <-ch
	assert.False(t, ok)

	p.HandleLocation(beijing)
}

func TestClose_ClosesSubscribersAndStopsUpdates(t *testing.T) {
	p := NewProvider(&fakeSource{}, logging.Nop{})
	ch, cancel := p.Subscribe()
	<-ch

	p.Close()
	p.Close()
	cancel()

	_, ok := <-ch
	assert.False(t, ok)

	p.HandleLocation(beijing)
	assert.Equal(t, Unknown, p.State().Kind)

	late, _ := p.Subscribe()
	_, ok = <-late
	assert.False(t, ok)
}

func TestStaticSource(t *testing.T) {
	ctx := context.Background()
	src := NewStaticSource(Authorized, &beijing)
	assert.Equal(t, NotDetermined, src.AuthorizationStatus())

	st, err := src.RequestAuthorization(ctx)
	require.NoError(t, err)
	assert.Equal(t, Authorized, st)
	assert.Equal(t, Authorized, src.AuthorizationStatus())

	c, err := src.Locate(ctx)
	require.NoError(t, err)
	assert.Equal(t, beijing, c)

	src.Move(nil)
	_, err = src.Locate(ctx)
	require.ErrorIs(t, err, ErrNoFix)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = src.Locate(cctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestStaticSource_WithProvider(t *testing.T) {
	p := NewProvider(NewStaticSource(Denied, &beijing), logging.Nop{})

	s := p.RequestLocation(context.Background())

	assert.Equal(t, Unavailable, s.Kind)
	assert.Equal(t, Denied, s.Status)
}

func TestParseAuthorizationStatus(t *testing.T) {
	for _, st := range []AuthorizationStatus{NotDetermined, Authorized, Denied, Restricted} {
		got, err := ParseAuthorizationStatus(st.String())
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}
	_, err := ParseAuthorizationStatus("maybe")
	require.ErrorIs(t, err, ErrUnknownStatus)
}
