package rtdprovider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviceFromPayload(t *testing.T) {
	tests := []struct {
		name         string
		data         map[string]interface{}
		expectDevice *Device
	}{
		{
			name:         "nil_payload",
			data:         nil,
			expectDevice: nil,
		},
		{
			name:         "no_device",
			data:         map[string]interface{}{"location": map[string]interface{}{}},
			expectDevice: nil,
		},
		{
			name:         "device_not_an_object",
			data:         map[string]interface{}{"device": "Phone"},
			expectDevice: nil,
		},
		{
			name: "typed_values",
			data: map[string]interface{}{"device": map[string]interface{}{
				"deviceid":           "1-2-3",
				"devicetype":         "SmartPhone",
				"hardwarevendor":     "Google",
				"hardwaremodel":      "Pixel 7",
				"hardwarename":       []interface{}{"Pixel 7", "GVU6C"},
				"platformname":       "Android",
				"platformversion":    "14",
				"screenpixelsheight": float64(2400),
				"screenpixelswidth":  float64(1080),
				"screeninchesheight": 6.1,
				"pixelratio":         2.625,
			}},
			expectDevice: &Device{
				DeviceID:           "1-2-3",
				DeviceType:         "SmartPhone",
				HardwareVendor:     "Google",
				HardwareModel:      "Pixel 7",
				HardwareName:       []string{"Pixel 7", "GVU6C"},
				PlatformName:       "Android",
				PlatformVersion:    "14",
				ScreenPixelsHeight: 2400,
				ScreenPixelsWidth:  1080,
				ScreenInchesHeight: 6.1,
				PixelRatio:         2.625,
			},
		},
		{
			name: "loose_values",
			data: map[string]interface{}{"device": map[string]interface{}{
				"screenpixelsheight": "1920",
				"screeninchesheight": "4.8",
				"hardwarename":       "Desktop",
				"platformversion":    nil,
			}},
			expectDevice: &Device{
				ScreenPixelsHeight: 1920,
				ScreenInchesHeight: 4.8,
				HardwareName:       []string{"Desktop"},
			},
		},
		{
			name: "fractional_pixels_rounded",
			data: map[string]interface{}{"device": map[string]interface{}{
				"screenpixelsheight": 2000.6,
				"screenpixelswidth":  "1080.5",
			}},
			expectDevice: &Device{
				ScreenPixelsHeight: 2001,
				ScreenPixelsWidth:  1081,
			},
		},
		{
			name: "unparseable_pixels",
			data: map[string]interface{}{"device": map[string]interface{}{
				"screenpixelsheight": "tall",
			}},
			expectDevice: &Device{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expectDevice, deviceFromPayload(test.data))
		})
	}
}
