package rtdprovider

import (
	"github.com/prebid/openrtb/v20/adcom1"
)

const (
	deviceTypePhone          = "Phone"
	deviceTypeConsole        = "Console"
	deviceTypeDesktop        = "Desktop"
	deviceTypeEReader        = "EReader"
	deviceTypeIoT            = "IoT"
	deviceTypeKiosk          = "Kiosk"
	deviceTypeMediaHub       = "MediaHub"
	deviceTypeMobile         = "Mobile"
	deviceTypeRouter         = "Router"
	deviceTypeSmallScreen    = "SmallScreen"
	deviceTypeSmartPhone     = "SmartPhone"
	deviceTypeSmartSpeaker   = "SmartSpeaker"
	deviceTypeSmartWatch     = "SmartWatch"
	deviceTypeTablet         = "Tablet"
	deviceTypeTv             = "Tv"
	deviceTypeVehicleDisplay = "Vehicle Display"
)

// deviceTypeUnknown is the ortb device type for an undetected device. The lookup never
// produces it: unknown categories are left out of the request instead.
const deviceTypeUnknown adcom1.DeviceType = 0

var fiftyOneDeviceTypes = map[string]adcom1.DeviceType{
	deviceTypePhone:          adcom1.DevicePhone,
	deviceTypeConsole:        adcom1.DeviceSetTopBox,
	deviceTypeDesktop:        adcom1.DevicePC,
	deviceTypeEReader:        adcom1.DevicePC,
	deviceTypeIoT:            adcom1.DeviceConnected,
	deviceTypeKiosk:          adcom1.DeviceOOH,
	deviceTypeMediaHub:       adcom1.DeviceSetTopBox,
	deviceTypeMobile:         adcom1.DeviceMobile,
	deviceTypeRouter:         adcom1.DeviceConnected,
	deviceTypeSmallScreen:    adcom1.DeviceConnected,
	deviceTypeSmartPhone:     adcom1.DeviceMobile,
	deviceTypeSmartSpeaker:   adcom1.DeviceConnected,
	deviceTypeSmartWatch:     adcom1.DeviceConnected,
	deviceTypeTablet:         adcom1.DeviceTablet,
	deviceTypeTv:             adcom1.DeviceTV,
	deviceTypeVehicleDisplay: adcom1.DevicePC,
}

// fiftyOneDtToRTB maps a 51Degrees device type name to its ortb device type.
// Names outside the table map to deviceTypeUnknown.
func fiftyOneDtToRTB(val string) adcom1.DeviceType {
	if dt, ok := fiftyOneDeviceTypes[val]; ok {
		return dt
	}
	return deviceTypeUnknown
}
