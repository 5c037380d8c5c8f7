package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/dmitrijs2005/world/internal/client/location"
	"github.com/dmitrijs2005/world/internal/client/models"
)

// DefaultCenter is shown while there is no position.
var DefaultCenter = models.Coordinate{Latitude: 39.9, Longitude: 116.4}

const MessageLocating = "Locating your position…"

// Viewport is the visible map region.
type Viewport struct {
	Center         models.Coordinate
	LatitudeDelta  float64
	LongitudeDelta float64
}

// ViewportFor centers on the position when there is one and on
// DefaultCenter otherwise.
func ViewportFor(c models.Coordinate, ok bool) Viewport {
	if !ok {
		return Viewport{Center: DefaultCenter, LatitudeDelta: 0.05, LongitudeDelta: 0.05}
	}
	return Viewport{Center: c, LatitudeDelta: 0.2, LongitudeDelta: 0.3}
}

func renderMap(w io.Writer, st location.State) {
	vp := ViewportFor(st.Coordinate, st.Kind == location.Available)

	fmt.Fprintf(w, "Map: center %s, span %.2f° x %.2f°\n", vp.Center, vp.LatitudeDelta, vp.LongitudeDelta)
	switch st.Kind {
	case location.Available:
		fmt.Fprintf(w, "You are here: %s\n", st.Coordinate)
	case location.Unavailable:
		fmt.Fprintf(w, "! %s\n", st.Message)
	default:
		fmt.Fprintln(w, MessageLocating)
	}
}

func (a *App) ShowMap(ctx context.Context) error {
	renderMap(a.out, a.provider.State())
	return nil
}

// Locate asks for a fresh fix and re-centers the map.
func (a *App) Locate(ctx context.Context) error {
	renderMap(a.out, a.provider.RequestLocation(ctx))
	return nil
}

// Move relocates the simulated device and takes a new fix.
func (a *App) Move(ctx context.Context, args []string) error {
	if len(args) == 1 && args[0] == "off" {
		a.source.Move(nil)
		return a.Locate(ctx)
	}
	if len(args) != 2 {
		a.println("Usage: move <lat> <lon> | move off")
		return errUsage
	}

	lat, err1 := strconv.ParseFloat(args[0], 64)
	lon, err2 := strconv.ParseFloat(args[1], 64)
	c := models.Coordinate{Latitude: lat, Longitude: lon}
	if err1 != nil || err2 != nil || !c.Valid() {
		a.println("Invalid coordinate:", args[0], args[1])
		return errUsage
	}

	a.source.Move(&c)
	return a.Locate(ctx)
}

func (a *App) status() string {
	st := a.provider.State()
	switch st.Kind {
	case location.Available:
		return "(" + st.Coordinate.String() + ")"
	case location.Unavailable:
		return "(no location)"
	default:
		return "(locating)"
	}
}
