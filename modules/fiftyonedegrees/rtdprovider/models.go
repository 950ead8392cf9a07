package rtdprovider

import (
	"math"

	"github.com/spf13/cast"
)

// Device is the device description published by the 51Degrees script.
// Every field is optional; zero values mean the property was not detected.
type Device struct {
	DeviceID           string
	DeviceType         string
	HardwareVendor     string
	HardwareModel      string
	HardwareName       []string
	PlatformName       string
	PlatformVersion    string
	ScreenPixelsHeight int64
	ScreenPixelsWidth  int64
	ScreenInchesHeight float64
	PixelRatio         float64
}

// deviceFromPayload reads data.device from a completion payload. The vendor payload is loosely
// typed (numbers may be strings, unknown values null), so every field is converted leniently.
func deviceFromPayload(data map[string]interface{}) *Device {
	raw, ok := data["device"].(map[string]interface{})
	if !ok || raw == nil {
		return nil
	}

	return &Device{
		DeviceID:           cast.ToString(raw["deviceid"]),
		DeviceType:         cast.ToString(raw["devicetype"]),
		HardwareVendor:     cast.ToString(raw["hardwarevendor"]),
		HardwareModel:      cast.ToString(raw["hardwaremodel"]),
		HardwareName:       toStringSlice(raw["hardwarename"]),
		PlatformName:       cast.ToString(raw["platformname"]),
		PlatformVersion:    cast.ToString(raw["platformversion"]),
		ScreenPixelsHeight: toPixels(raw["screenpixelsheight"]),
		ScreenPixelsWidth:  toPixels(raw["screenpixelswidth"]),
		ScreenInchesHeight: cast.ToFloat64(raw["screeninchesheight"]),
		PixelRatio:         cast.ToFloat64(raw["pixelratio"]),
	}
}

// toPixels reads a pixel count, rounding fractional values to the nearest pixel.
func toPixels(v interface{}) int64 {
	return int64(math.Round(cast.ToFloat64(v)))
}

func toStringSlice(v interface{}) []string {
	switch values := v.(type) {
	case nil:
		return nil
	case []string:
		return values
	case []interface{}:
		res := make([]string, len(values))
		for i, value := range values {
			res[i] = cast.ToString(value)
		}
		return res
	default:
		if s := cast.ToString(values); s != "" {
			return []string{s}
		}
		return nil
	}
}
