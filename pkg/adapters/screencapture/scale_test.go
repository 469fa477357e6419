package screencapture

import (
	"image"
	"testing"
)

func TestMonitorScale(t *testing.T) {
	tests := []struct {
		name     string
		physical int
		logical  image.Rectangle
		want     float64
	}{
		{"unscaled", 1920, image.Rect(0, 0, 1920, 1080), 1},
		{"125 percent", 2400, image.Rect(0, 0, 1920, 1200), 1.25},
		{"150 percent on secondary monitor", 3840, image.Rect(1920, 0, 4480, 1440), 1.5},
		{"200 percent", 3840, image.Rect(0, 0, 1920, 1080), 2},
		{"unknown physical width", 0, image.Rect(0, 0, 1920, 1080), 1},
		{"empty monitor rect", 1920, image.Rectangle{}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := monitorScale(tt.physical, tt.logical); got != tt.want {
				t.Errorf("monitorScale(%d, %v) = %v, want %v", tt.physical, tt.logical, got, tt.want)
			}
		})
	}
}
