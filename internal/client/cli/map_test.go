package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/world/internal/client/location"
	"github.com/dmitrijs2005/world/internal/client/models"
)

func TestViewportFor(t *testing.T) {
	c := models.Coordinate{Latitude: 31.23, Longitude: 121.47}

	assert.Equal(t, Viewport{Center: c, LatitudeDelta: 0.2, LongitudeDelta: 0.3}, ViewportFor(c, true))
	assert.Equal(t, Viewport{Center: DefaultCenter, LatitudeDelta: 0.05, LongitudeDelta: 0.05}, ViewportFor(c, false))
}

func TestRenderMap(t *testing.T) {
	tests := []struct {
		name  string
		state location.State
		want  []string
	}{
		{
			name:  "locating",
			state: location.State{Kind: location.Unknown},
			want:  []string{"center 39.900000°, 116.400000°, span 0.05° x 0.05°", MessageLocating},
		},
		{
			name:  "available",
			state: location.State{Kind: location.Available, Coordinate: models.Coordinate{Latitude: 1, Longitude: 2}},
			want:  []string{"center 1.000000°, 2.000000°, span 0.20° x 0.30°", "You are here: 1.000000°, 2.000000°"},
		},
		{
			name:  "unavailable",
			state: location.State{Kind: location.Unavailable, Message: location.MessageLocationDenied},
			want:  []string{"span 0.05° x 0.05°", "! " + location.MessageLocationDenied},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			renderMap(&buf, tt.state)
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}
