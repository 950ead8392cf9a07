package rtdprovider

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/prebid/openrtb/v20/openrtb2"
)

const deviceIDExtKey = "fiftyonedegrees_deviceId"

// convertDeviceToOrtb2 maps a 51Degrees device to an ortb device. Only detected values are set;
// every openrtb2.Device field used here is omitempty, so undetected ones never reach the request.
func convertDeviceToOrtb2(device *Device) openrtb2.Device {
	var ortb2Device openrtb2.Device
	if device == nil {
		return ortb2Device
	}

	ortb2Device.DeviceType = fiftyOneDtToRTB(device.DeviceType)
	ortb2Device.Make = device.HardwareVendor
	ortb2Device.Model = deviceModel(device)
	ortb2Device.OS = device.PlatformName
	ortb2Device.OSV = device.PlatformVersion
	ortb2Device.H = device.ScreenPixelsHeight
	ortb2Device.W = device.ScreenPixelsWidth
	ortb2Device.PxRatio = device.PixelRatio
	ortb2Device.PPI = devicePPI(device)

	if device.DeviceID != "" {
		// marshaling a map of strings cannot fail
		ext, _ := json.Marshal(map[string]string{deviceIDExtKey: device.DeviceID})
		ortb2Device.Ext = ext
	}

	return ortb2Device
}

func deviceModel(device *Device) string {
	if device.HardwareModel != "" {
		return device.HardwareModel
	}
	if len(device.HardwareName) > 0 {
		return strings.Join(device.HardwareName, ",")
	}
	return ""
}

func devicePPI(device *Device) int64 {
	if device.ScreenPixelsHeight == 0 || device.ScreenInchesHeight == 0 {
		return 0
	}
	return int64(math.Round(float64(device.ScreenPixelsHeight) / device.ScreenInchesHeight))
}

// deviceFragment renders device as the {"device": {...}} fragment merged into the global ortb2 object.
func deviceFragment(device openrtb2.Device) (map[string]interface{}, error) {
	raw, err := json.Marshal(device)
	if err != nil {
		return nil, err
	}

	var deviceMap map[string]interface{}
	if err := json.Unmarshal(raw, &deviceMap); err != nil {
		return nil, err
	}

	return map[string]interface{}{"device": deviceMap}, nil
}
